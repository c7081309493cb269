package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateMachineEndGameOnce(t *testing.T) {
	m := NewStateMachine()
	assert.Equal(t, StateRunning, m.State())

	assert.True(t, m.EndGame(time.Second, 1500*time.Millisecond, 4))
	assert.False(t, m.EndGame(2*time.Second, 0, 9))

	assert.Equal(t, StateGameOver, m.State())
	assert.Equal(t, ObstacleID(4), m.Cause())
	assert.Equal(t, time.Second, m.EndedAt())
}

func TestStateMachineNoticeFiresOnceAfterDelay(t *testing.T) {
	m := NewStateMachine()
	assert.False(t, m.NoticeDue(time.Hour), "no notice while running")

	m.EndGame(0, 1500*time.Millisecond, 1)
	assert.False(t, m.NoticeDue(1499*time.Millisecond))
	assert.False(t, m.Notified())
	assert.True(t, m.NoticeDue(1500*time.Millisecond))
	assert.True(t, m.Notified())
	assert.False(t, m.NoticeDue(10*time.Second))
}

func TestGameStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "game_over", StateGameOver.String())
}
