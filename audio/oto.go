package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoSink plays through oto. oto pulls interleaved float32 frames from Read.
type OtoSink struct {
	mixer
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	buf     [][]float32
	started bool
}

func NewOtoSink(sampleRate, bufferSize int) (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: numOutputs,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	s := &OtoSink{ctx: ctx, buf: make([][]float32, numOutputs)}
	for i := range s.buf {
		s.buf[i] = make([]float32, bufferSize)
	}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

const bytesPerSample = 4

// Read implements io.Reader for the oto player.
func (s *OtoSink) Read(p []byte) (int, error) {
	frameSize := numOutputs * bytesPerSample
	frames := len(p) / frameSize
	var written int
	for frames > 0 {
		n := len(s.buf[0])
		if frames < n {
			n = frames
		}
		chunk := make([][]float32, numOutputs)
		for i := range chunk {
			chunk[i] = s.buf[i][:n]
		}
		s.Process(chunk)
		for f := 0; f < n; f++ {
			for c := range chunk {
				binary.LittleEndian.PutUint32(p[written:], math.Float32bits(chunk[c][f]))
				written += bytesPerSample
			}
		}
		frames -= n
	}
	return written, nil
}

func (s *OtoSink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.player.Play()
		s.started = true
	}
	return nil
}

func (s *OtoSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	s.started = false
	return err
}
