package audio

// clock keeps track of the number of samples seen since starting the audio
// thread and converts them into envelope ticks.
type clock struct {
	sampleRate float64
	tickRate   float64

	samples  uint64 // total time passed in number of samples
	nextTick uint64 // time of next tick in number of samples
	ticks    uint64 // number of ticks emitted so far
}

func newClock(sampleRate, tickRate float64) *clock {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &clock{sampleRate: sampleRate, tickRate: tickRate}
}

// advance moves the clock forward by numSamples and returns how many ticks
// fall inside that span. The position of tick n is computed from n directly
// so that fractional tick lengths do not accumulate rounding drift.
func (c *clock) advance(numSamples int) int {
	end := c.samples + uint64(numSamples)
	var n int
	for c.nextTick < end {
		n++
		c.ticks++
		c.nextTick = uint64(float64(c.ticks) * c.sampleRate / c.tickRate)
	}
	c.samples = end
	return n
}

func (c *clock) samplesPerTick() float64 {
	return c.sampleRate / c.tickRate
}
