package stampboard

// ResizeFunc receives the new logical screen size.
type ResizeFunc func(w, h float64)

type resizeHandler struct {
	id uint32
	fn ResizeFunc
}

type resizeBus struct {
	handlers []resizeHandler
	nextID   uint32
}

// Subscription allows removing a registered resize listener.
type Subscription struct {
	id  uint32
	bus *resizeBus
}

// Unsubscribe removes the listener. Safe to call more than once, and safe to
// call from inside a resize callback.
func (s Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	hs := s.bus.handlers
	for i := range hs {
		if hs[i].id == s.id {
			// Copy instead of shifting in place so an in-flight publish keeps
			// iterating its own snapshot.
			next := make([]resizeHandler, 0, len(hs)-1)
			next = append(next, hs[:i]...)
			next = append(next, hs[i+1:]...)
			s.bus.handlers = next
			return
		}
	}
}

func (r *resizeBus) subscribe(fn ResizeFunc) Subscription {
	r.nextID++
	r.handlers = append(r.handlers, resizeHandler{id: r.nextID, fn: fn})
	return Subscription{id: r.nextID, bus: r}
}

func (r *resizeBus) publish(w, h float64) {
	for _, h2 := range r.handlers {
		h2.fn(w, h)
	}
}

func (r *resizeBus) len() int {
	return len(r.handlers)
}

// OnResize registers fn to run whenever the logical screen size changes.
func (b *Board) OnResize(fn ResizeFunc) Subscription {
	return b.resize.subscribe(fn)
}
