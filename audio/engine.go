package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// DefaultTickRate is the envelope clock in ticks per second, one display refresh.
const DefaultTickRate = 60

const (
	PropEnvAttack  = "env.attack"
	PropEnvDecay   = "env.decay"
	PropEnvSustain = "env.sustain"
	PropEnvRelease = "env.release"
	PropOctave     = "octave"
	PropPitch      = "pitch"
)

// Engine runs the envelope clock. Once per tick it snapshots the envelope
// levels, recomputes the checkpoints, takes in pending key input and advances
// every voice.
type Engine struct {
	*Props
	envAttack  *atomic.Value
	envDecay   *atomic.Value
	envSustain *atomic.Value
	envRelease *atomic.Value
	octave     *atomic.Value
	pitch      *atomic.Value

	pushMu sync.Mutex // serializes producers of the spsc event buffer
	events *eventBuffer

	mu      sync.Mutex
	env     *Envelope
	bank    *VoiceBank
	scanner keyScanner
	pressed [NumKeys]bool
	clock   *clock
	ticks   uint64
	lastErr error

	// events held back to the next tick, and a buffer to swap with
	deferred []event
	spare    []event
}

func NewEngine(props *Props, out Sounder, sampleRate, tickRate float64) *Engine {
	return &Engine{
		Props:      props,
		envAttack:  props.MustRegister(PropEnvAttack, setEnvLevel, 0),
		envDecay:   props.MustRegister(PropEnvDecay, setEnvLevel, 0),
		envSustain: props.MustRegister(PropEnvSustain, setEnvLevel, MaxLevel),
		envRelease: props.MustRegister(PropEnvRelease, setEnvLevel, 0),
		octave:     props.MustRegister(PropOctave, setInt, 5),
		pitch:      props.MustRegister(PropPitch, setInt, 3),
		events:     newEventBuffer(256),
		env:        NewEnvelope(Levels{Sustain: MaxLevel}, DefaultSensitivity),
		bank:       NewVoiceBank(out),
		clock:      newClock(sampleRate, tickRate),
	}
}

// Press queues a key down. It takes effect on the next tick.
func (e *Engine) Press(key int) error {
	if key < 0 || key >= NumKeys {
		return fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	e.push(event{kind: evPress, key: key})
	return nil
}

// Release queues a key up. It takes effect on the next tick.
func (e *Engine) Release(key int) error {
	if key < 0 || key >= NumKeys {
		return fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	e.push(event{kind: evRelease, key: key})
	return nil
}

// KillAll queues a panic: all keys are considered released and every voice stops.
func (e *Engine) KillAll() {
	e.push(event{kind: evKill})
}

func (e *Engine) push(ev event) {
	e.pushMu.Lock()
	e.events.push(ev)
	e.pushMu.Unlock()
}

// Tick is called from the audio callback for every buffer and runs as many
// envelope steps as the buffer spans.
func (e *Engine) Tick(numSamples int) {
	for n := e.clock.advance(numSamples); n > 0; n-- {
		if err := e.Step(); err != nil {
			log.Printf("engine: %v", err)
		}
	}
}

// Step runs a single envelope tick.
func (e *Engine) Step() error {
	levels := e.Levels()
	base := BaseIndex(e.octave.Load().(int), e.pitch.Load().(int))

	e.mu.Lock()
	defer e.mu.Unlock()

	e.env.Set(levels)

	// A key changes state at most once per tick so that every press and
	// release shows up as an edge. Events for a key that already changed wait
	// for the next tick, in order, behind the first one held back.
	var kill bool
	var changed, blocked [NumKeys]bool
	apply := func(ev event) {
		if ev.kind == evKill {
			kill = true
			e.pressed = [NumKeys]bool{}
			changed = [NumKeys]bool{}
			blocked = [NumKeys]bool{}
			e.deferred = e.deferred[:0]
			return
		}
		if blocked[ev.key] || changed[ev.key] {
			blocked[ev.key] = true
			e.deferred = append(e.deferred, ev)
			return
		}
		down := ev.kind == evPress
		if e.pressed[ev.key] != down {
			e.pressed[ev.key] = down
			changed[ev.key] = true
		}
	}
	waiting := e.deferred
	e.deferred = e.spare[:0]
	for _, ev := range waiting {
		apply(ev)
	}
	e.events.iter(func(ev event) bool {
		apply(ev)
		return true
	})
	e.spare = waiting[:0]

	if kill {
		e.bank.KillAll()
		// keys pressed after the panic in this same tick must still go down
		e.scanner.reset()
	}

	edges := e.scanner.scan(e.pressed)
	err := e.bank.Advance(e.env, edges, base)
	e.ticks++
	e.lastErr = err
	return err
}

// Levels returns a copy of the envelope controls. Step takes one copy per
// tick; a concurrent preset load may be seen half applied until the next tick.
func (e *Engine) Levels() Levels {
	return Levels{
		Attack:  e.envAttack.Load().(int),
		Decay:   e.envDecay.Load().(int),
		Sustain: e.envSustain.Load().(int),
		Release: e.envRelease.Load().(int),
	}
}

// SetLevels stores all four controls.
func (e *Engine) SetLevels(l Levels) {
	l = l.clamped()
	e.envAttack.Store(l.Attack)
	e.envDecay.Store(l.Decay)
	e.envSustain.Store(l.Sustain)
	e.envRelease.Store(l.Release)
}

type Status struct {
	Ticks    uint64
	Octave   int
	Pitch    int
	Envelope Envelope
	Voices   [NumKeys]VoiceStatus
	Err      error
}

// Status reports the state as of the last completed tick.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		Ticks:    e.ticks,
		Octave:   e.octave.Load().(int),
		Pitch:    e.pitch.Load().(int),
		Envelope: *e.env,
		Voices:   e.bank.Status(),
		Err:      e.lastErr,
	}
}

// TickRate returns the envelope clock rate in ticks per second.
func (e *Engine) TickRate() float64 {
	return e.clock.tickRate
}
