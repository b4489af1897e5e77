package stampboard

// BoardEventType identifies a board-level event.
type BoardEventType uint8

const (
	EventStampLoaded     BoardEventType = iota // a stamp texture resolved and the stamp is on the board
	EventStampLoadFailed                       // a stamp texture failed; the stamp is omitted
	EventStampPressed                          // a stamp was grabbed
	EventStampMoved                            // a drag ended with the stamp at a new position
	EventModalOpened                           // a stamp was opened in the modal viewer
	EventModalClosed                           // the modal finished closing
)

func (t BoardEventType) String() string {
	switch t {
	case EventStampLoaded:
		return "stamp-loaded"
	case EventStampLoadFailed:
		return "stamp-load-failed"
	case EventStampPressed:
		return "stamp-pressed"
	case EventStampMoved:
		return "stamp-moved"
	case EventModalOpened:
		return "modal-opened"
	case EventModalClosed:
		return "modal-closed"
	default:
		return "unknown"
	}
}

// BoardEvent carries board activity to an EventSink. X and Y are the stamp's
// world position at the time of the event.
type BoardEvent struct {
	Type    BoardEventType
	StampID string
	X, Y    float64
}

// EventSink receives board events. Set one with Board.SetEventSink; see the
// ecs module for a Donburi-backed implementation.
type EventSink interface {
	EmitEvent(event BoardEvent)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(BoardEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event BoardEvent) { f(event) }

func (b *Board) emit(t BoardEventType, stampID string, x, y float64) {
	logDebug("event %s stamp=%q at (%.1f, %.1f)", t, stampID, x, y)
	if b.sink == nil {
		return
	}
	b.sink.EmitEvent(BoardEvent{Type: t, StampID: stampID, X: x, Y: y})
}
