package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrdg/keyenv/audio"
)

const sliderWidth = 16

func renderStatus(st audio.Status, w io.Writer) {
	env := st.Envelope
	fmt.Fprintf(w, "%s  octave %d  pitch %d  tick %d\n",
		colorize("keyenv", colorMagenta), st.Octave, st.Pitch, st.Ticks)

	sliders := []struct {
		name  string
		value int
	}{
		{"A", env.Attack},
		{"D", env.Decay},
		{"S", env.Sustain},
		{"R", env.Release},
	}
	for _, s := range sliders {
		fmt.Fprintf(w, "%s %s %3d\n", colorize(s.name, colorGreen), slider(s.value), s.value)
	}

	fmt.Fprintf(w, "attack→%d decay→%d release→%d start %d max %d\n",
		env.AttackFinish, env.DecayFinish, env.ReleaseFinish, env.StartVolume, env.MaxVolume)

	var names, levels []string
	for _, v := range st.Voices {
		name := fmt.Sprintf("%-3s", v.Key)
		level := "  ·"
		if v.Sounding {
			name = colorize(name, colorYellow)
			level = fmt.Sprintf("%3d", v.Volume)
		}
		names = append(names, name)
		levels = append(levels, level)
	}
	fmt.Fprintln(w, strings.Join(names, " "))
	fmt.Fprintln(w, strings.Join(levels, " "))

	if st.Err != nil {
		fmt.Fprintln(w, colorize(st.Err.Error(), colorRed))
	}
}

// slider draws value in 0..MaxLevel as a bar.
func slider(value int) string {
	filled := value * sliderWidth / audio.MaxLevel
	return "[" + strings.Repeat("■", filled) + strings.Repeat(" ", sliderWidth-filled) + "]"
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
