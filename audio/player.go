// Package audio plays marquee menu cues as synthesized tones through the
// beep speaker.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/phanxgames/marquee"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is used when Config.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(48000)

// Config configures a Player.
type Config struct {
	SampleRate beep.SampleRate
	// Volume is the linear master volume in [0, 1]. Default 0.5.
	Volume float64
	// Cues replaces the tones of individual cues.
	Cues   map[marquee.Cue][]Note
	Logger *slog.Logger
}

// Player implements marquee.Audio. Until Open succeeds every Play is a no-op,
// so a machine without an audio device runs silently.
type Player struct {
	mu     sync.Mutex
	cfg    Config
	cues   map[marquee.Cue][]Note
	mixer  *beep.Mixer
	ctrl   *beep.Ctrl
	ready  bool
	played map[marquee.Cue]int
	// init starts the output device. Replaced in tests.
	init func(beep.SampleRate, int) error
	play func(beep.Streamer)
	lock func(func())
}

// NewPlayer creates a player that is silent until Open.
func NewPlayer(cfg Config) *Player {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Volume == 0 {
		cfg.Volume = 0.5
	}
	if cfg.Logger == nil {
		cfg.Logger = marquee.Logger()
	}
	cues := make(map[marquee.Cue][]Note, len(DefaultCues))
	for c, n := range DefaultCues {
		cues[c] = n
	}
	for c, n := range cfg.Cues {
		cues[c] = n
	}
	mixer := &beep.Mixer{}
	return &Player{
		cfg:    cfg,
		cues:   cues,
		mixer:  mixer,
		ctrl:   &beep.Ctrl{Streamer: mixer},
		played: make(map[marquee.Cue]int),
		init:   speaker.Init,
		play:   func(s beep.Streamer) { speaker.Play(s) },
		lock: func(f func()) {
			speaker.Lock()
			defer speaker.Unlock()
			f()
		},
	}
}

// Open starts the speaker. A failure is logged and returned, and the player
// stays silent. Opening twice is a no-op.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	rate := p.cfg.SampleRate
	if err := p.init(rate, rate.N(100*time.Millisecond)); err != nil {
		p.cfg.Logger.Warn("audio: speaker unavailable", "err", err)
		return err
	}
	p.play(p.ctrl)
	p.ready = true
	return nil
}

// Play queues the tone for cue on the mixer.
func (p *Player) Play(cue marquee.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	notes, ok := p.cues[cue]
	if !ok || len(notes) == 0 {
		return
	}
	s := Sequence(p.cfg.SampleRate, notes, p.cfg.Volume)
	p.lock(func() { p.mixer.Add(s) })
	p.played[cue]++
}

// SetMuted pauses or resumes all output.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lock(func() { p.ctrl.Paused = muted })
}

// Playing returns the number of cues still sounding.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	p.lock(func() { n = p.mixer.Len() })
	return n
}

// Played returns how often cue was started.
func (p *Player) Played(cue marquee.Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[cue]
}

// Close drops queued cues and silences the player.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	p.lock(p.mixer.Clear)
	p.ready = false
}
