package audio

import (
	"fmt"
	"io"
	"os"
	"sync"

	wav "github.com/youpy/go-wav"
)

const bitsPerSample = 16

// WriteWAV encodes per channel samples as 16 bit PCM.
func WriteWAV(w io.Writer, samples [][]float32, sampleRate int) error {
	if len(samples) == 0 || len(samples) > 2 {
		return fmt.Errorf("can't write %d channels", len(samples))
	}
	numFrames := len(samples[0])
	ww := wav.NewWriter(w, uint32(numFrames), uint16(len(samples)), uint32(sampleRate), bitsPerSample)
	frames := make([]wav.Sample, numFrames)
	const scale = 1<<(bitsPerSample-1) - 1
	for n := range frames {
		for c := range samples {
			v := samples[c][n]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			frames[n].Values[c] = int(scale * v)
		}
	}
	return ww.WriteSamples(frames)
}

// SaveWAV writes samples to a new file at path.
func SaveWAV(path string, samples [][]float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Recorder captures whatever has been mixed into the buffer by the sources
// added before it. It must be added as the last source.
type Recorder struct {
	mu      sync.Mutex
	buf     [][]float32
	want    int
	done    func([][]float32)
	running bool
}

// Record starts capturing numFrames frames. done is called from its own
// goroutine once all frames are in.
func (r *Recorder) Record(numFrames int, done func([][]float32)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return fmt.Errorf("recording already in progress")
	}
	r.buf = nil
	r.want = numFrames
	r.done = done
	r.running = true
	return nil
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Recorder) Process(samples [][]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	if r.buf == nil {
		r.buf = make([][]float32, len(samples))
	}
	n := len(samples[0])
	if left := r.want - len(r.buf[0]); left < n {
		n = left
	}
	for c := range samples {
		r.buf[c] = append(r.buf[c], samples[c][:n]...)
	}
	if len(r.buf[0]) >= r.want {
		buf, done := r.buf, r.done
		r.buf, r.done, r.running = nil, nil, false
		go done(buf)
	}
}
