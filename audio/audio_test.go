package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/phanxgames/marquee"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		got, ok := s.Stream(buf)
		for i := range got {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		n += got
		if !ok {
			return n, peak
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveSaw} {
		n, peak := drain(Tone(rate, 440, 100*time.Millisecond, w))
		if n != 800 {
			t.Errorf("wave %d streamed %d samples, want 800", w, n)
		}
		if peak > 1 || peak == 0 {
			t.Errorf("wave %d peak = %v, want (0, 1]", w, peak)
		}
	}
}

func TestSequenceLengthAndVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	for cue, notes := range DefaultCues {
		n, _ := drain(Sequence(rate, notes, 1))
		if want := Samples(rate, notes); n != want {
			t.Errorf("%v streamed %d samples, want %d", cue, n, want)
		}
	}

	notes := []Note{{Freq: 500, Duration: 50 * time.Millisecond, Wave: WaveSquare}}
	_, loud := drain(Sequence(rate, notes, 1))
	_, quiet := drain(Sequence(rate, notes, 0.25))
	if math.Abs(quiet-loud*0.25) > 1e-9 {
		t.Errorf("quarter volume peak = %v, want %v", quiet, loud*0.25)
	}
	_, silent := drain(Sequence(rate, notes, 0))
	if silent != 0 {
		t.Errorf("muted peak = %v, want 0", silent)
	}
}

func TestSequenceRest(t *testing.T) {
	rate := beep.SampleRate(1000)
	notes := []Note{{Duration: 20 * time.Millisecond}, {Freq: 250, Duration: 20 * time.Millisecond}}
	s := Sequence(rate, notes, 1)
	buf := make([][2]float64, 20)
	s.Stream(buf)
	for i, v := range buf {
		if v != [2]float64{} {
			t.Fatalf("rest sample %d = %v, want silence", i, v)
		}
	}
}

func TestFadeOutEndsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	tone := Tone(rate, 250, 20*time.Millisecond, WaveSquare)
	buf := make([][2]float64, 20)
	fadeOut(tone, 20, 5).Stream(buf)
	if buf[0][0] != 1 {
		t.Errorf("first sample = %v, want untouched", buf[0][0])
	}
	if g := math.Abs(buf[19][0]); g > 0.25 {
		t.Errorf("last sample = %v, want faded", buf[19][0])
	}
}

type fakeSpeaker struct {
	err     error
	inits   int
	playing []beep.Streamer
}

func testPlayer(sp *fakeSpeaker, cfg Config) *Player {
	p := NewPlayer(cfg)
	p.init = func(beep.SampleRate, int) error {
		sp.inits++
		return sp.err
	}
	p.play = func(s beep.Streamer) { sp.playing = append(sp.playing, s) }
	p.lock = func(f func()) { f() }
	return p
}

func TestPlayerSilentUntilOpen(t *testing.T) {
	sp := &fakeSpeaker{}
	p := testPlayer(sp, Config{})
	p.Play(marquee.CueMove)
	if p.Played(marquee.CueMove) != 0 || p.Playing() != 0 {
		t.Error("cue played before Open")
	}

	if err := p.Open(); err != nil {
		t.Fatal(err)
	}
	p.Open()
	if sp.inits != 1 || len(sp.playing) != 1 {
		t.Errorf("inits %d, streams %d, want 1 each", sp.inits, len(sp.playing))
	}
	p.Play(marquee.CueMove)
	p.Play(marquee.CueConfirm)
	if p.Playing() != 2 || p.Played(marquee.CueConfirm) != 1 {
		t.Errorf("Playing = %d, want 2", p.Playing())
	}

	p.Close()
	p.Play(marquee.CueKey)
	if p.Playing() != 0 || p.Played(marquee.CueKey) != 0 {
		t.Error("cues survived Close")
	}
}

func TestPlayerOpenFailure(t *testing.T) {
	sp := &fakeSpeaker{err: errors.New("no device")}
	p := testPlayer(sp, Config{Logger: marquee.Logger()})
	if err := p.Open(); err == nil {
		t.Fatal("Open error = nil, want device error")
	}
	p.Play(marquee.CueError)
	if p.Played(marquee.CueError) != 0 {
		t.Error("cue played without a device")
	}
}

func TestPlayerCustomCues(t *testing.T) {
	sp := &fakeSpeaker{}
	p := testPlayer(sp, Config{Cues: map[marquee.Cue][]Note{marquee.CueKey: nil}})
	p.Open()
	p.Play(marquee.CueKey)
	p.Play(marquee.CueMove)
	if p.Played(marquee.CueKey) != 0 || p.Played(marquee.CueMove) != 1 {
		t.Error("an empty override should silence its cue only")
	}
	if _, ok := DefaultCues[marquee.CueKey]; !ok {
		t.Error("override mutated DefaultCues")
	}
}

func TestPlayerMuteOutput(t *testing.T) {
	sp := &fakeSpeaker{}
	p := testPlayer(sp, Config{SampleRate: 1000})
	p.Open()
	p.Play(marquee.CueError)
	p.SetMuted(true)

	buf := make([][2]float64, 10)
	n, ok := sp.playing[0].Stream(buf)
	if !ok || n != 10 {
		t.Fatalf("paused stream = %d, %v", n, ok)
	}
	for _, v := range buf {
		if v != [2]float64{} {
			t.Fatal("muted output is not silent")
		}
	}
}
