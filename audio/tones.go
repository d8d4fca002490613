package audio

import (
	"math"
	"time"

	"github.com/phanxgames/marquee"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

type oscillator struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
}

// Tone returns a full-scale streamer playing freq for d.
func Tone(rate beep.SampleRate, freq float64, d time.Duration, wave Wave) beep.Streamer {
	return &oscillator{freq: freq, left: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.left <= 0 {
		return 0, false
	}
	for i := range samples {
		if o.left <= 0 {
			return i, true
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		}
		samples[i] = [2]float64{v, v}
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.left--
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade ramps the last samples of s down to silence to avoid clicks.
type fade struct {
	s     beep.Streamer
	pos   int
	total int
	tail  int
}

func fadeOut(s beep.Streamer, total, tail int) beep.Streamer {
	return &fade{s: s, total: total, tail: min(tail, total)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	start := f.total - f.tail
	for i := range n {
		if f.pos >= start && f.tail > 0 {
			g := float64(f.total-f.pos) / float64(f.tail)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Note is one step of a cue.
type Note struct {
	Freq     float64 // zero rests
	Duration time.Duration
	Wave     Wave
}

// DefaultCues are short UI blips: a tick for moves, a low buzz for errors,
// a click for typing and a rising pair for confirmation.
var DefaultCues = map[marquee.Cue][]Note{
	marquee.CueMove:    {{Freq: 660, Duration: 35 * time.Millisecond, Wave: WaveSine}},
	marquee.CueError:   {{Freq: 110, Duration: 150 * time.Millisecond, Wave: WaveSaw}},
	marquee.CueKey:     {{Freq: 1200, Duration: 12 * time.Millisecond, Wave: WaveSquare}},
	marquee.CueConfirm: {{Freq: 880, Duration: 60 * time.Millisecond, Wave: WaveSine}, {Freq: 1320, Duration: 90 * time.Millisecond, Wave: WaveSine}},
}

// fadeTail is the fade-out applied to every note.
const fadeTail = 5 * time.Millisecond

// Sequence builds the streamer for notes at the given linear volume.
func Sequence(rate beep.SampleRate, notes []Note, vol float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := rate.N(n.Duration)
		if n.Freq <= 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone := Tone(rate, n.Freq, n.Duration, n.Wave)
		parts = append(parts, fadeOut(tone, samples, rate.N(fadeTail)))
	}
	return volume(beep.Seq(parts...), vol)
}

// Samples returns the length of notes in samples.
func Samples(rate beep.SampleRate, notes []Note) int {
	n := 0
	for _, note := range notes {
		n += rate.N(note.Duration)
	}
	return n
}
