// Package app runs sessions back to back: it routes keys, drives ticks,
// records finished runs and rebuilds the session on restart.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lanerush/internal/game"
	"lanerush/internal/scene"
	"lanerush/internal/storage"
	"lanerush/internal/telemetry"
)

// Sound is the audio surface the controller drives.
type Sound interface {
	Attach(bus *game.EventBus)
	SetThrottle(v float64)
}

// Deps are the collaborators of a Controller. Store, Metrics and Sound
// may be nil.
type Deps struct {
	Params     game.Params
	Bindings   game.Bindings
	RestartKey string
	Seed       uint64
	Model      *game.Future[game.ModelHandle]
	Log        zerolog.Logger
	Store      *storage.Store
	Metrics    *telemetry.Metrics
	Sound      Sound
}

type Controller struct {
	deps       Deps
	log        zerolog.Logger
	restartKey string
	input      *game.InputState

	session  *game.Session
	round    int
	recorded bool

	best    float64
	hasBest bool
}

func New(ctx context.Context, d Deps) (*Controller, error) {
	c := &Controller{
		deps:       d,
		log:        d.Log.With().Str("component", "app").Logger(),
		restartKey: strings.ToLower(d.RestartKey),
		input:      game.NewInputState(d.Bindings),
	}
	if c.restartKey == "" {
		c.restartKey = "space"
	}
	c.refreshBest(ctx)
	if err := c.start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// seedFor gives round 0 the configured seed and later rounds their own
// stream, so a replay with the same seed reproduces every round.
func (c *Controller) seedFor(round int) uint64 {
	if round == 0 {
		return c.deps.Seed
	}
	return game.DeriveSeed(c.deps.Seed, 100+round)
}

func (c *Controller) start(ctx context.Context) error {
	bus := game.NewEventBus()
	if c.deps.Metrics != nil {
		c.deps.Metrics.Attach(ctx, bus)
	}
	if c.deps.Sound != nil {
		c.deps.Sound.Attach(bus)
	}

	seed := c.seedFor(c.round)
	log := c.log.With().Int("round", c.round).Logger()
	s, err := game.NewSession(game.SessionConfig{
		Params: c.deps.Params,
		Seed:   seed,
		Input:  c.input,
		Model:  c.deps.Model,
		Events: bus,
		Log:    &log,
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	c.session = s
	c.recorded = false
	c.log.Info().Int("round", c.round).Uint64("seed", seed).Msg("session started")
	return nil
}

// Key routes a key event. Driving keys only reach the session while it is
// running; the restart key only counts once the notice is showing.
func (c *Controller) Key(ctx context.Context, name string, pressed bool) error {
	name = strings.ToLower(name)
	if c.session.State() == game.StateRunning {
		c.input.SetKey(name, pressed)
		return nil
	}
	if pressed && name == c.restartKey && c.session.Notified() {
		return c.Restart(ctx)
	}
	return nil
}

// FocusLost releases every held control; the window will not see the
// key-up events.
func (c *Controller) FocusLost() { c.input.Reset() }

// Restart throws the session away and starts a new one.
func (c *Controller) Restart(ctx context.Context) error {
	c.record(ctx)
	c.input.Reset()
	c.round++
	return c.start(ctx)
}

// Step advances one display frame of wall time dt.
func (c *Controller) Step(ctx context.Context, dt time.Duration) {
	s := c.session
	if s.State() != game.StateRunning {
		s.PollNotice(dt)
		return
	}

	if c.deps.Sound != nil {
		c.deps.Sound.SetThrottle(throttle(c.input.Read()))
	}
	running := s.Tick(dt)
	if c.deps.Metrics != nil {
		c.deps.Metrics.Frame(ctx, dt)
	}
	if !running {
		c.record(ctx)
	}
}

func throttle(ctl game.Controls) float64 {
	switch {
	case ctl.Forward && !ctl.Backward:
		return 1
	case ctl.Backward && !ctl.Forward:
		return 0.15
	}
	return 0.4
}

// record saves the finished run once.
func (c *Controller) record(ctx context.Context) {
	if c.recorded || c.session.State() != game.StateGameOver {
		return
	}
	c.recorded = true
	st := c.session.Stats()
	if c.deps.Store == nil {
		return
	}
	if _, err := c.deps.Store.Record(ctx, st); err != nil {
		c.log.Warn().Err(err).Msg("failed to record run")
		return
	}
	c.refreshBest(ctx)
}

func (c *Controller) refreshBest(ctx context.Context) {
	if c.deps.Store == nil {
		return
	}
	best, err := c.deps.Store.Best(ctx, 1)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load best run")
		return
	}
	if len(best) > 0 {
		c.best, c.hasBest = best[0].Distance, true
	}
}

func (c *Controller) Session() *game.Session { return c.session }

func (c *Controller) Round() int { return c.round }

// Frame is the current scene for the renderer.
func (c *Controller) Frame() scene.Frame { return scene.FrameOf(c.session) }

// HUD is the current overlay state.
func (c *Controller) HUD() scene.HUDState {
	_, hasAgent := c.session.Agent()
	digit, counting := c.session.Countdown()
	return scene.HUDState{
		Stats:      c.session.Stats(),
		State:      c.session.State(),
		Notified:   c.session.Notified(),
		Best:       c.best,
		HasBest:    c.hasBest,
		RestartKey: c.restartKey,
		Loading:    !hasAgent,
		Countdown:  digit,
		Counting:   counting,
	}
}
