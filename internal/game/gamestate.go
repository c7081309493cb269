package game

import "time"

type GameState int

const (
	StateRunning  GameState = iota // initial
	StateGameOver                  // terminal, entered on first collision
)

func (s GameState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// StateMachine owns the Running -> GameOver transition and the delayed
// one-shot game over notice.
type StateMachine struct {
	state    GameState
	endedAt  time.Duration
	noticeAt time.Duration
	notified bool
	cause    ObstacleID
}

func NewStateMachine() *StateMachine {
	return &StateMachine{state: StateRunning}
}

func (m *StateMachine) State() GameState { return m.state }

func (m *StateMachine) Running() bool { return m.state == StateRunning }

// EndGame moves to GameOver at session time now. Only the first call has
// any effect; it reports whether this call performed the transition.
func (m *StateMachine) EndGame(now, noticeDelay time.Duration, cause ObstacleID) bool {
	if m.state != StateRunning {
		return false
	}
	m.state = StateGameOver
	m.endedAt = now
	m.noticeAt = now + noticeDelay
	m.cause = cause
	return true
}

// NoticeDue reports true exactly once, the first time it is asked at or
// after the notice deadline.
func (m *StateMachine) NoticeDue(now time.Duration) bool {
	if m.state != StateGameOver || m.notified || now < m.noticeAt {
		return false
	}
	m.notified = true
	return true
}

// Notified reports whether the game over notice has been shown.
func (m *StateMachine) Notified() bool { return m.notified }

// Cause returns the obstacle that ended the game.
func (m *StateMachine) Cause() ObstacleID { return m.cause }

// EndedAt returns the session time of the collision.
func (m *StateMachine) EndedAt() time.Duration { return m.endedAt }
