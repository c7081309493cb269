package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpawnerAdvance(t *testing.T) {
	s := NewSpawner(3 * time.Second)

	assert.Equal(t, 0, s.Advance(2*time.Second))
	assert.Equal(t, 1, s.Advance(time.Second))
	assert.Equal(t, 0, s.Advance(2999*time.Millisecond))
	assert.Equal(t, 1, s.Advance(time.Millisecond))

	// A long stall catches up.
	assert.Equal(t, 3, s.Advance(10*time.Second))
	assert.Equal(t, 1, s.Advance(2*time.Second))
}

func TestSpawnerStop(t *testing.T) {
	s := NewSpawner(time.Second)
	s.Stop()
	assert.True(t, s.Stopped())
	assert.Equal(t, 0, s.Advance(time.Minute))
}

func TestTaskQueueDrainKeepsDeclinedInOrder(t *testing.T) {
	var q taskQueue
	for i := 0; i < 4; i++ {
		q.push(task{kind: taskSpawn})
	}

	n := 0
	q.drain(func(task) bool {
		n++
		return n%2 == 0
	})
	assert.Equal(t, 2, q.len())

	q.drain(func(task) bool { return true })
	assert.Equal(t, 0, q.len())

	q.push(task{})
	q.clear()
	assert.Equal(t, 0, q.len())
}
