package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RunStats summarises one session.
type RunStats struct {
	Seed     uint64
	Frames   uint64
	Spawned  int
	Passed   int // cars culled behind the camera
	Distance float64
	Elapsed  time.Duration // driving time, the countdown excluded
}

// SessionConfig carries everything a session is built from.
type SessionConfig struct {
	Params Params
	Seed   uint64
	Input  *InputState
	Model  *Future[ModelHandle] // nil means "no visuals"
	Events *EventBus            // subscribe before NewSession to see the initial burst
	Log    *zerolog.Logger
}

// Session is the whole state of one run. A restart throws it away and
// builds a new one.
type Session struct {
	params   Params
	seed     uint64
	input    *InputState
	registry *Registry
	states   *StateMachine
	spawner  *Spawner
	tasks    taskQueue
	events   *EventBus
	log      zerolog.Logger

	model      *Future[ModelHandle]
	modelReady bool
	driving    bool
	modelErr   error
	agent      *UserAgent

	clock time.Duration
	stats RunStats
}

func NewSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("session params: %w", err)
	}
	input := cfg.Input
	if input == nil {
		input = NewInputState(nil)
	}
	events := cfg.Events
	if events == nil {
		events = NewEventBus()
	}
	log := zerolog.Nop()
	if cfg.Log != nil {
		log = cfg.Log.With().Str("component", "session").Uint64("seed", cfg.Seed).Logger()
	}

	s := &Session{
		params:   cfg.Params,
		seed:     cfg.Seed,
		input:    input,
		registry: NewRegistry(cfg.Seed),
		states:   NewStateMachine(),
		spawner:  NewSpawner(cfg.Params.SpawnInterval),
		events:   events,
		log:      log,
		model:    cfg.Model,
		stats:    RunStats{Seed: cfg.Seed},
	}
	for i := 0; i < cfg.Params.InitialBurst; i++ {
		s.tasks.push(task{kind: taskSpawn})
	}
	s.resolveModel()
	s.tasks.drain(s.runTask)
	return s, nil
}

// Tick runs one frame of the simulation and reports whether another frame
// should be scheduled. Once the game is over it does nothing.
func (s *Session) Tick(dt time.Duration) bool {
	if !s.states.Running() {
		return false
	}
	p := s.params
	s.clock += dt
	s.stats.Frames++

	s.resolveModel()
	for n := s.spawner.Advance(dt); n > 0; n-- {
		s.tasks.push(task{kind: taskSpawn})
	}
	s.tasks.drain(s.runTask)

	// Spawns accrue during the countdown; nothing moves.
	if _, counting := s.Countdown(); counting {
		return true
	}
	if !s.driving && s.agent != nil {
		s.driving = true
		s.events.Emit(Event{Type: EventDriveStart, Pos: s.agent.Pos})
	}

	c := s.input.Read()
	if s.agent != nil {
		s.stats.Distance += s.agent.Apply(c, p) + p.MoveSpeed
	}

	s.registry.AdvanceAll(p.MoveSpeed)
	s.registry.DriftRandom(p.DriftProbability, p.DriftStep, p.LateralMin, p.LateralMax)
	if culled := s.registry.CullBehind(s.Camera().Z - p.CullMargin); len(culled) > 0 {
		s.stats.Passed += len(culled)
		s.events.Emit(Event{Type: EventCulled, Obstacle: culled[len(culled)-1], Count: len(culled)})
	}

	if s.agent == nil {
		return true
	}
	if id, hit := Collides(s.agent.Pos, s.registry, p.CollisionLateral, p.CollisionLongitudinal); hit {
		s.endGame(id)
		return false
	}
	return true
}

// PollNotice advances the post-collision clock and reports true exactly
// once, when the game over notice becomes due.
func (s *Session) PollNotice(dt time.Duration) bool {
	if s.states.Running() {
		return false
	}
	s.clock += dt
	if !s.states.NoticeDue(s.clock) {
		return false
	}
	s.events.Emit(Event{Type: EventGameOverNotice, Obstacle: s.states.Cause()})
	return true
}

func (s *Session) endGame(cause ObstacleID) {
	s.states.EndGame(s.clock, s.params.GameOverDelay, cause)
	s.spawner.Stop()
	s.tasks.clear()
	s.stats.Elapsed = s.driveTime()

	var pos Vec3
	if o, ok := s.registry.Get(cause); ok {
		pos = o.Pos
	}
	s.log.Info().
		Uint64("obstacle", uint64(cause)).
		Float64("distance", s.stats.Distance).
		Int("passed", s.stats.Passed).
		Dur("elapsed", s.stats.Elapsed).
		Msg("collision, game over")
	s.events.Emit(Event{Type: EventCollision, Obstacle: cause, Pos: pos})
}

// resolveModel creates the user car once the model future completes. A
// failed load still creates the car, just without a visual.
func (s *Session) resolveModel() {
	if s.modelReady {
		return
	}
	handle := NoModel
	if s.model != nil {
		if !s.model.Ready() {
			return
		}
		v, err := s.model.Wait(context.Background())
		if err != nil {
			s.modelErr = err
			s.log.Warn().Err(err).Msg("car model failed to load, continuing without visuals")
		}
		handle = v
	}
	s.modelReady = true
	s.registry.SetModel(handle)
	s.agent = newUserAgent(s.params, handle)
	s.events.Emit(Event{Type: EventAgentReady, Pos: s.agent.Pos})
}

func (s *Session) runTask(t task) bool {
	switch t.kind {
	case taskSpawn:
		if !s.modelReady {
			return false
		}
		p := s.params
		z := s.Camera().Z + p.SpawnDistance
		id := s.registry.Spawn(p.LateralMin, p.LateralMax, z)
		s.stats.Spawned++
		o, _ := s.registry.Get(id)
		s.events.Emit(Event{Type: EventSpawned, Obstacle: id, Pos: o.Pos})
	}
	return true
}

// Camera returns where the chase camera sits. It follows the user car on
// Y and Z only; before the car exists it stays at its initial position.
func (s *Session) Camera() Vec3 {
	if s.agent == nil {
		return s.params.CameraInitial
	}
	return Vec3{
		X: s.params.CameraInitial.X,
		Y: s.agent.Pos.Y + s.params.CameraOffset.Y,
		Z: s.agent.Pos.Z + s.params.CameraOffset.Z,
	}
}

// Countdown returns the digit on show and whether the countdown before
// driving is still running.
func (s *Session) Countdown() (int, bool) {
	if s.clock >= s.countdownLen() {
		return 0, false
	}
	return s.params.Countdown - int(s.clock/s.params.CountdownStep), true
}

func (s *Session) countdownLen() time.Duration {
	if s.params.Countdown <= 0 {
		return 0
	}
	return time.Duration(s.params.Countdown+1) * s.params.CountdownStep
}

// driveTime is the session clock without the countdown.
func (s *Session) driveTime() time.Duration {
	return max(s.clock-s.countdownLen(), 0)
}

func (s *Session) State() GameState { return s.states.State() }

// Agent returns a copy of the user car, if it exists yet.
func (s *Session) Agent() (UserAgent, bool) {
	if s.agent == nil {
		return UserAgent{}, false
	}
	return *s.agent, true
}

func (s *Session) Obstacles() []Obstacle { return s.registry.Snapshot() }

func (s *Session) ObstacleCount() int { return s.registry.Len() }

// PendingSpawns is the number of spawns waiting for the car model.
func (s *Session) PendingSpawns() int { return s.tasks.len() }

func (s *Session) Stats() RunStats {
	st := s.stats
	if s.states.Running() {
		st.Elapsed = s.driveTime()
	}
	return st
}

func (s *Session) Events() *EventBus    { return s.events }
func (s *Session) Params() Params       { return s.params }
func (s *Session) Input() *InputState   { return s.input }
func (s *Session) Clock() time.Duration { return s.clock }
func (s *Session) Notified() bool       { return s.states.Notified() }

// ModelErr returns the model load error, if the load failed.
func (s *Session) ModelErr() error { return s.modelErr }
