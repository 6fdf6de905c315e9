package eventbus

import "testing"

func TestPublishFanOut(t *testing.T) {
	bus := New[int](4)
	a := bus.Subscribe()
	b := bus.Subscribe()

	if got := bus.Publish(7); got != 2 {
		t.Fatalf("delivered = %d, want 2", got)
	}
	if v := <-a; v != 7 {
		t.Fatalf("subscriber a got %d", v)
	}
	if v := <-b; v != 7 {
		t.Fatalf("subscriber b got %d", v)
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	bus := New[int](1)
	sub := bus.Subscribe()

	if got := bus.Publish(1); got != 1 {
		t.Fatalf("first publish delivered = %d", got)
	}
	// Buffer is full and nobody is draining: the event is dropped, not
	// blocked on.
	if got := bus.Publish(2); got != 0 {
		t.Fatalf("second publish delivered = %d, want 0", got)
	}
	if v := <-sub; v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New[string](2)
	sub := bus.Subscribe()
	bus.Unsubscribe(sub)

	if _, ok := <-sub; ok {
		t.Fatal("channel must be closed after unsubscribe")
	}
	if got := bus.Publish("x"); got != 0 {
		t.Fatalf("delivered to removed subscriber: %d", got)
	}
}

func TestCloseStopsEverything(t *testing.T) {
	bus := New[int](2)
	sub := bus.Subscribe()
	bus.Close()

	if _, ok := <-sub; ok {
		t.Fatal("channel must be closed after bus close")
	}
	if got := bus.Publish(1); got != 0 {
		t.Fatal("publishing after close must be a no-op")
	}
	if late := bus.Subscribe(); late == nil {
		t.Fatal("late subscribe must still return a closed channel")
	} else if _, ok := <-late; ok {
		t.Fatal("late subscriber channel must be closed")
	}
	bus.Close() // idempotent
}

func TestDefaultBuffer(t *testing.T) {
	bus := New[int](0)
	sub := bus.Subscribe()
	for i := 0; i < 16; i++ {
		if got := bus.Publish(i); got != 1 {
			t.Fatalf("publish %d dropped with default buffer", i)
		}
	}
	if len(sub) != 16 {
		t.Fatalf("buffered = %d, want 16", len(sub))
	}
}
