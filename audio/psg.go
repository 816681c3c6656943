package audio

import (
	"errors"
	"log"
	"math"
	"sync"
	"sync/atomic"
)

var ErrNoChannel = errors.New("no free channel")

const (
	PropLevel   = "level"
	PropPSGDuty = "psg.duty"
)

// DefaultChannels gives every key its own channel.
const DefaultChannels = NumKeys

// PSG is a programmable sound generator: a fixed set of pulse wave channels
// addressed through handles. It implements Sounder and Source.
type PSG struct {
	*Props
	level *atomic.Value
	duty  *atomic.Value

	mu         sync.Mutex
	sampleRate float64
	channels   []psgChannel
	nextHandle int
}

type psgChannel struct {
	handle int // 0 when free
	freq   float64
	phase  float64
	volume int
}

func NewPSG(props *Props, sampleRate float64, numChannels int) *PSG {
	if numChannels <= 0 {
		numChannels = DefaultChannels
	}
	return &PSG{
		Props:      props,
		level:      props.MustRegister(PropLevel, setLevel, 0.),
		duty:       props.MustRegister(PropPSGDuty, setFloat64(0.125, 0.875), 0.25),
		sampleRate: sampleRate,
		channels:   make([]psgChannel, numChannels),
		nextHandle: 1,
	}
}

func (p *PSG) StartVoice(freq, volume int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := p.findFreeChannel()
	if ch == nil {
		log.Printf("psg: no free channel for %d Hz", freq)
		return 0, ErrNoChannel
	}
	handle := p.nextHandle
	p.nextHandle++
	*ch = psgChannel{
		handle: handle,
		freq:   float64(freq),
		volume: ClampLevel(volume),
	}
	return handle, nil
}

func (p *PSG) SetVolume(handle, volume int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ch := p.find(handle); ch != nil {
		ch.volume = ClampLevel(volume)
	}
}

func (p *PSG) StopVoice(handle int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ch := p.find(handle); ch != nil {
		*ch = psgChannel{}
	}
}

// Active returns the number of channels in use.
func (p *PSG) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int
	for i := range p.channels {
		if p.channels[i].handle != 0 {
			n++
		}
	}
	return n
}

func (p *PSG) find(handle int) *psgChannel {
	if handle == 0 {
		return nil
	}
	for i := range p.channels {
		if p.channels[i].handle == handle {
			return &p.channels[i]
		}
	}
	return nil
}

func (p *PSG) findFreeChannel() *psgChannel {
	for i := range p.channels {
		if p.channels[i].handle == 0 {
			return &p.channels[i]
		}
	}
	return nil
}

// Process adds the output of every active channel to all output channels,
// which places each voice in the centre of the stereo field.
func (p *PSG) Process(samples [][]float32) {
	db := p.level.Load().(float64)
	gain := 0.1 * math.Pow(10, db/20.0)
	duty := p.duty.Load().(float64)

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.channels {
		ch := &p.channels[i]
		if ch.handle == 0 {
			continue
		}
		amp := gain * float64(ch.volume) / MaxLevel
		delta := ch.freq / p.sampleRate
		for n := range samples[0] {
			v := -1.0
			if ch.phase < duty {
				v = 1.0
			}
			sample := float32(amp * v)
			for c := range samples {
				samples[c][n] += sample
			}
			ch.phase += delta
			if ch.phase >= 1 {
				ch.phase -= 1
			}
		}
	}
}
