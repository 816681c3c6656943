package audio

import (
	"context"
	"testing"
)

func TestEventBufferStop(t *testing.T) {
	buf := newEventBuffer(8)
	buf.push(event{kind: evPress, key: 2})
	buf.push(event{kind: evRelease, key: 2})

	var events []event
	buf.iter(func(ev event) bool {
		if ev.kind == evRelease {
			return false
		}
		events = append(events, ev)
		return true
	})
	if want, got := 1, len(events); want != got {
		t.Errorf("expected %v events, got %v", want, got)
	}
	if want, got := 1, buf.len(); want != got {
		t.Errorf("expected %v event left in buffer, got %v", want, got)
	}

	buf.iter(func(ev event) bool {
		events = append(events, ev)
		return true
	})
	if want, got := 2, len(events); want != got {
		t.Errorf("expected %v events, got %v", want, got)
	}
	if events[1].kind != evRelease {
		t.Errorf("expected release to be delivered second, got %v", events[1])
	}
}

func TestEventBuffer(t *testing.T) {
	buf := newEventBuffer(8)

	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	all := func(events *[]event) func(event) bool {
		return func(ev event) bool {
			*events = append(*events, ev)
			return true
		}
	}

	var events []event
	go func() {
		for {
			select {
			case <-ctx.Done():
				buf.iter(all(&events))
				done <- struct{}{}
				return
			default:
				buf.iter(all(&events))
			}
		}
	}()

	const numEvents = 1_000_000
	for n := 0; n < numEvents; n++ {
		buf.push(event{key: n})
	}

	cancel()
	<-done

	if len(events) != numEvents {
		t.Errorf("wrong number of events: want %v, got %v", numEvents, len(events))
	}

	prev := -1
	for _, ev := range events {
		if want, got := prev+1, ev.key; want != got {
			t.Errorf("discontinuous event key: want: %v, got %v", want, ev.key)
		}
		prev++
	}
}

func TestEventBufferSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for size that is not a power of 2")
		}
	}()
	newEventBuffer(12)
}
