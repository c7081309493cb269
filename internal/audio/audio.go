// Package audio plays the synthesized engine loop and effects through oto.
package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"lanerush/internal/audio/synth"
	"lanerush/internal/game"
)

// Options sets the mix.
type Options struct {
	SfxVolume    float64
	EngineVolume float64
}

// System owns the oto context, the engine loop and one-shot players.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	opts   Options
	log    zerolog.Logger
	engine *synth.Engine
	player oto.Player

	// Limit overlapping one-shots to avoid clipping.
	active int32
	cache  map[synth.Sound][]byte
}

const (
	maxActive    = 3
	readyTimeout = time.Second
)

// New opens the audio device. Callers treat an error as "no sound".
func New(opts Options, log zerolog.Logger) (*System, error) {
	ctx, ready, err := oto.NewContext(synth.SampleRate, synth.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	s := &System{
		ctx:    ctx,
		ready:  ready,
		opts:   opts,
		log:    log.With().Str("component", "audio").Logger(),
		engine: synth.NewEngine(),
		cache:  make(map[synth.Sound][]byte),
	}
	for _, k := range []synth.Sound{synth.SoundCrash, synth.SoundGameOver, synth.SoundStart} {
		s.cache[k] = synth.Generate(k)
	}
	// The first session starts right after this; give the device a moment
	// so its start sound and engine are not dropped.
	select {
	case <-ready:
	case <-time.After(readyTimeout):
		s.log.Warn().Dur("waited", readyTimeout).Msg("audio device not ready yet")
	}
	return s, nil
}

func (s *System) isReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Play starts a one-shot effect on its own goroutine.
func (s *System) Play(kind synth.Sound) {
	if s == nil || !s.isReady() {
		return
	}
	samples := s.cache[kind]
	if len(samples) == 0 {
		return
	}
	if atomic.AddInt32(&s.active, 1) > maxActive {
		atomic.AddInt32(&s.active, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&s.active, -1)
		player := s.ctx.NewPlayer(synth.NewReader(samples))
		player.SetVolume(s.opts.SfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.log.Debug().Err(err).Stringer("sound", kind).Msg("closing player")
		}
	}()
}

// StartEngine starts or resumes the engine loop.
func (s *System) StartEngine() {
	if s == nil || !s.isReady() {
		return
	}
	if s.player == nil {
		s.player = s.ctx.NewPlayer(s.engine)
		s.player.SetVolume(s.opts.EngineVolume)
	}
	s.player.Play()
}

// StopEngine pauses the engine loop.
func (s *System) StopEngine() {
	if s == nil || s.player == nil {
		return
	}
	s.player.Pause()
}

// SetThrottle maps the car's speed to engine pitch, 0 idle to 1 full.
func (s *System) SetThrottle(v float64) {
	if s == nil {
		return
	}
	s.engine.SetThrottle(v)
}

// Attach ties the engine and effects to a session's events.
func (s *System) Attach(bus *game.EventBus) {
	if s == nil {
		return
	}
	bus.Subscribe(game.EventCollision, func(game.Event) {
		s.StopEngine()
		s.Play(synth.SoundCrash)
	})
	bus.Subscribe(game.EventGameOverNotice, func(game.Event) {
		s.Play(synth.SoundGameOver)
	})
	bus.Subscribe(game.EventAgentReady, func(game.Event) {
		s.StartEngine()
	})
	bus.Subscribe(game.EventDriveStart, func(game.Event) {
		s.Play(synth.SoundStart)
	})
}

func (s *System) Close() error {
	if s == nil || s.player == nil {
		return nil
	}
	return s.player.Close()
}
