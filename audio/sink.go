package audio

import (
	"github.com/gordonklaus/portaudio"
)

const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 512
	numOutputs        = 2
)

type Source interface {
	Process([][]float32)
}

type Ticker interface {
	Tick(numSamples int)
}

// Output is an audio device that pulls from tickers and sources.
type Output interface {
	AddSources(sources ...Source)
	AddTicker(ticker Ticker)
	Start() error
	Stop() error
}

// mixer runs the tickers and sums the sources into a buffer. Tickers run
// before sources so that control changes apply to the buffer being rendered.
type mixer struct {
	sources []Source
	tickers []Ticker
}

func (m *mixer) AddSources(sources ...Source) {
	m.sources = append(m.sources, sources...)
}

func (m *mixer) AddTicker(ticker Ticker) {
	m.tickers = append(m.tickers, ticker)
}

func (m *mixer) Process(samples [][]float32) {
	for i := range samples {
		for j := range samples[i] {
			samples[i][j] = 0.
		}
	}
	for _, ticker := range m.tickers {
		ticker.Tick(len(samples[0]))
	}
	for _, source := range m.sources {
		source.Process(samples)
	}
}

// Sink plays through the default portaudio output device.
type Sink struct {
	mixer
	stream *portaudio.Stream
}

func NewSink(sampleRate float64, bufferSize int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &Sink{}
	stream, err := portaudio.OpenDefaultStream(0, numOutputs, sampleRate, bufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	s.stream.Close()
	portaudio.Terminate()
	return nil
}

// Offline renders without a device. Each call to Render produces the next
// numFrames of output.
type Offline struct {
	mixer
	buf [][]float32
}

func NewOffline(bufferSize int) *Offline {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	buf := make([][]float32, numOutputs)
	for i := range buf {
		buf[i] = make([]float32, bufferSize)
	}
	return &Offline{buf: buf}
}

func (o *Offline) Start() error { return nil }
func (o *Offline) Stop() error  { return nil }

// Render processes numFrames frames in buffer sized chunks and returns them
// per output channel.
func (o *Offline) Render(numFrames int) [][]float32 {
	out := make([][]float32, numOutputs)
	for numFrames > 0 {
		n := len(o.buf[0])
		if numFrames < n {
			n = numFrames
		}
		chunk := make([][]float32, numOutputs)
		for i := range chunk {
			chunk[i] = o.buf[i][:n]
		}
		o.Process(chunk)
		for i := range out {
			out[i] = append(out[i], chunk[i]...)
		}
		numFrames -= n
	}
	return out
}
