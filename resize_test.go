package stampboard

import "testing"

func TestResizeBusPublish(t *testing.T) {
	var bus resizeBus
	var got []float64
	bus.subscribe(func(w, h float64) { got = append(got, w, h) })
	bus.publish(800, 600)
	if len(got) != 2 || got[0] != 800 || got[1] != 600 {
		t.Errorf("got %v", got)
	}
}

func TestResizeBusUnsubscribe(t *testing.T) {
	var bus resizeBus
	calls := 0
	sub := bus.subscribe(func(w, h float64) { calls++ })
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	bus.publish(1, 1)
	if calls != 0 || bus.len() != 0 {
		t.Errorf("calls=%d handlers=%d, want 0 and 0", calls, bus.len())
	}
	Subscription{}.Unsubscribe() // zero value is safe
}

func TestResizeBusUnsubscribeDuringPublish(t *testing.T) {
	var bus resizeBus
	var order []int
	var first Subscription
	first = bus.subscribe(func(w, h float64) {
		order = append(order, 1)
		first.Unsubscribe()
	})
	bus.subscribe(func(w, h float64) { order = append(order, 2) })

	bus.publish(1, 1)
	bus.publish(1, 1)
	want := []int{1, 2, 2}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
