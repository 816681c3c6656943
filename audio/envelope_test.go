package audio

import "testing"

func TestEnvelopeCheckpoints(t *testing.T) {
	tests := []struct {
		levels                 Levels
		attack, decay, release int
		startVolume, maxVolume int
	}{
		{
			levels:      Levels{Attack: 0, Decay: 0, Sustain: 100, Release: 50},
			attack:      0,
			decay:       0,
			release:     39,
			startVolume: 100,
			maxVolume:   100,
		},
		{
			levels:      Levels{Attack: 0, Decay: 64, Sustain: 0},
			attack:      0,
			decay:       64,
			startVolume: 127,
			maxVolume:   127,
		},
		{
			levels:      Levels{Attack: 127, Decay: 0, Sustain: 64},
			attack:      127,
			decay:       127,
			startVolume: 0,
			maxVolume:   127,
		},
		{
			levels:      Levels{Attack: 127, Decay: 127, Sustain: 64, Release: 127},
			attack:      127,
			decay:       190,
			release:     64,
			startVolume: 0,
			maxVolume:   127,
		},
	}
	for _, test := range tests {
		e := NewEnvelope(test.levels, DefaultSensitivity)
		if want, got := test.attack, e.AttackFinish; want != got {
			t.Errorf("%+v: wrong attack finish: want %v, got %v", test.levels, want, got)
		}
		if want, got := test.decay, e.DecayFinish; want != got {
			t.Errorf("%+v: wrong decay finish: want %v, got %v", test.levels, want, got)
		}
		if want, got := test.release, e.ReleaseFinish; want != got {
			t.Errorf("%+v: wrong release finish: want %v, got %v", test.levels, want, got)
		}
		if want, got := test.startVolume, e.StartVolume; want != got {
			t.Errorf("%+v: wrong start volume: want %v, got %v", test.levels, want, got)
		}
		if want, got := test.maxVolume, e.MaxVolume; want != got {
			t.Errorf("%+v: wrong max volume: want %v, got %v", test.levels, want, got)
		}
	}
}

func TestEnvelopeNoAttackNoDecay(t *testing.T) {
	for sustain := 0; sustain <= MaxLevel; sustain++ {
		for release := 0; release <= MaxLevel; release += 31 {
			e := NewEnvelope(Levels{Sustain: sustain, Release: release}, DefaultSensitivity)
			if e.StartVolume != sustain || e.MaxVolume != sustain {
				t.Fatalf("sustain %v: want start and max volume %v, got %v and %v",
					sustain, sustain, e.StartVolume, e.MaxVolume)
			}
			for tick := 0; tick < 300; tick++ {
				if got := e.VolumeAt(tick); got != sustain {
					t.Fatalf("sustain %v: wrong volume at tick %v: %v", sustain, tick, got)
				}
			}
		}
	}
}

func TestEnvelopeNoAttack(t *testing.T) {
	for decay := 1; decay <= MaxLevel; decay++ {
		for sustain := 0; sustain < MaxLevel; sustain += 9 {
			e := NewEnvelope(Levels{Decay: decay, Sustain: sustain}, DefaultSensitivity)
			if want, got := MaxLevel, e.StartVolume; want != got {
				t.Fatalf("decay %v: wrong start volume: want %v, got %v", decay, want, got)
			}
			if e.DecayFinish == 0 {
				continue
			}
			// on the decay ramp, which starts at the peak
			if want, got := MaxLevel, e.VolumeAt(0); want != got {
				t.Fatalf("decay %v sustain %v: wrong volume at tick 0: want %v, got %v",
					decay, sustain, want, got)
			}
		}
	}
}

func TestEnvelopeSwell(t *testing.T) {
	e := NewEnvelope(Levels{Attack: 127, Sustain: 64}, DefaultSensitivity)
	if want, got := 127, e.AttackFinish; want != got {
		t.Fatalf("wrong attack finish: want %v, got %v", want, got)
	}
	for _, c := range []struct{ tick, want int }{
		{0, 0},
		{63, 63},
		{126, 126},
		{127, 64},
		{1000, 64},
	} {
		if got := e.VolumeAt(c.tick); got != c.want {
			t.Errorf("wrong volume at tick %v: want %v, got %v", c.tick, c.want, got)
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	for attack := 1; attack <= MaxLevel; attack += 7 {
		for decay := 0; decay <= MaxLevel; decay += 11 {
			for sustain := 0; sustain <= MaxLevel; sustain += 21 {
				l := Levels{Attack: attack, Decay: decay, Sustain: sustain}
				e := NewEnvelope(l, DefaultSensitivity)
				for tick := 1; tick < e.AttackFinish; tick++ {
					if prev, cur := e.VolumeAt(tick-1), e.VolumeAt(tick); prev > cur {
						t.Fatalf("%+v: attack not rising at tick %v: %v > %v", l, tick, prev, cur)
					}
				}
				for tick := e.AttackFinish + 1; tick < e.DecayFinish; tick++ {
					if prev, cur := e.VolumeAt(tick-1), e.VolumeAt(tick); prev < cur {
						t.Fatalf("%+v: decay not falling at tick %v: %v < %v", l, tick, prev, cur)
					}
				}
				for tick := 0; tick < e.DecayFinish+10; tick++ {
					if v := e.VolumeAt(tick); v < 0 || v > MaxLevel {
						t.Fatalf("%+v: volume out of range at tick %v: %v", l, tick, v)
					}
				}
				if want, got := sustain, e.VolumeAt(e.DecayFinish); e.DecayFinish >= e.AttackFinish && want != got {
					t.Fatalf("%+v: expected sustain after decay: want %v, got %v", l, want, got)
				}
			}
		}
	}
}

func TestEnvelopeSensitivity(t *testing.T) {
	e := NewEnvelope(Levels{Attack: 10, Sustain: 127}, 0)
	if want, got := DefaultSensitivity, e.Sensitivity; want != got {
		t.Errorf("expected default sensitivity: want %v, got %v", want, got)
	}
	e = NewEnvelope(Levels{Attack: 200, Decay: -3, Sustain: 500}, DefaultSensitivity)
	if want, got := (Levels{Attack: 127, Decay: 0, Sustain: 127}), e.Levels; want != got {
		t.Errorf("expected clamped levels: want %+v, got %+v", want, got)
	}
}
