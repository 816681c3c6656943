package audio

const (
	MaxLevel           = 127
	DefaultSensitivity = 127
)

// Levels are the four envelope controls, each in 0..MaxLevel.
type Levels struct {
	Attack  int
	Decay   int
	Sustain int
	Release int
}

// ClampLevel limits v to the valid level range.
func ClampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

func (l Levels) clamped() Levels {
	return Levels{
		Attack:  ClampLevel(l.Attack),
		Decay:   ClampLevel(l.Decay),
		Sustain: ClampLevel(l.Sustain),
		Release: ClampLevel(l.Release),
	}
}

// Envelope holds a set of levels and the checkpoints derived from them. The
// checkpoints are tick counts measured from the moment a key goes down.
type Envelope struct {
	Levels
	Sensitivity int

	MaxVolume     int
	StartVolume   int
	AttackFinish  int
	DecayFinish   int
	ReleaseFinish int // informational, the release is not ramped
}

func NewEnvelope(l Levels, sensitivity int) *Envelope {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	e := &Envelope{Sensitivity: sensitivity}
	e.Set(l)
	return e
}

// Set replaces the levels and recomputes the checkpoints.
func (e *Envelope) Set(l Levels) {
	e.Levels = l.clamped()
	e.Recompute()
}

func (e *Envelope) Recompute() {
	a, d, s, r := e.Attack, e.Decay, e.Sustain, e.Release
	e.AttackFinish = (MaxLevel * a) / e.Sensitivity
	e.DecayFinish = (MaxLevel*(d+a) - s*d) / e.Sensitivity
	e.ReleaseFinish = (s * r) / e.Sensitivity
	e.StartVolume = e.decideStartVolume()
}

func (e *Envelope) decideStartVolume() int {
	// no attack and no decay: the note sounds at sustain straight away
	if e.Attack == 0 && e.Decay == 0 {
		e.MaxVolume = e.Sustain
		return e.Sustain
	}
	e.MaxVolume = MaxLevel
	if e.Attack == 0 {
		return MaxLevel
	}
	return 0
}

// VolumeAt returns the volume of a voice that has been held for tick ticks.
// The result is always within 0..MaxLevel.
func (e *Envelope) VolumeAt(tick int) int {
	if tick < 0 {
		tick = 0
	}
	if e.Attack > 0 && tick < e.AttackFinish {
		return ClampLevel((tick * e.Sensitivity) / e.Attack)
	}
	if e.Decay > 0 && tick < e.DecayFinish {
		v := -((tick * e.Sensitivity) / e.Decay) + e.MaxVolume + (e.MaxVolume*e.Attack)/e.Decay
		return ClampLevel(v)
	}
	return e.Sustain
}
