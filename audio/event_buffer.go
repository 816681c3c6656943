package audio

import (
	"runtime"
	"sync/atomic"
)

type eventKind int

const (
	evPress eventKind = iota
	evRelease
	evKill
)

type event struct {
	kind eventKind
	key  int
}

// eventBuffer is a lock-free spsc queue.
type eventBuffer struct {
	events      []event
	read, write *uint32
}

func newEventBuffer(size int) *eventBuffer {
	if size <= 0 || size&(size-1) != 0 {
		panic("event buffer size must be a power of 2")
	}
	return &eventBuffer{
		events: make([]event, size),
		read:   new(uint32),
		write:  new(uint32),
	}
}

func (b *eventBuffer) push(ev event) {
	for atomic.LoadUint32(b.write)-atomic.LoadUint32(b.read) == uint32(len(b.events)) {
		runtime.Gosched()
	}
	write := atomic.LoadUint32(b.write)
	b.events[write%uint32(len(b.events))] = ev
	atomic.StoreUint32(b.write, write+1)
}

// iter consumes events in order until f returns false. The event f refused
// stays in the buffer.
func (b *eventBuffer) iter(f func(event) bool) {
	read := atomic.LoadUint32(b.read)
	write := atomic.LoadUint32(b.write)
	if read == write {
		return
	}
	for read != write {
		event := b.events[read%uint32(len(b.events))]
		if !f(event) {
			break
		}
		read++
	}
	atomic.StoreUint32(b.read, read)
}

func (b *eventBuffer) len() int {
	return int(atomic.LoadUint32(b.write) - atomic.LoadUint32(b.read))
}
