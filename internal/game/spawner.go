package game

import "time"

// Spawner is the recurring spawn timer, advanced by tick time instead of
// running on its own goroutine.
type Spawner struct {
	interval time.Duration
	elapsed  time.Duration
	stopped  bool
}

func NewSpawner(interval time.Duration) *Spawner {
	return &Spawner{interval: interval}
}

// Advance adds dt and returns how many spawn periods elapsed.
func (s *Spawner) Advance(dt time.Duration) int {
	if s.stopped || s.interval <= 0 || dt <= 0 {
		return 0
	}
	s.elapsed += dt
	n := int(s.elapsed / s.interval)
	s.elapsed -= time.Duration(n) * s.interval
	return n
}

// Stop disables the timer for good.
func (s *Spawner) Stop() { s.stopped = true }

func (s *Spawner) Stopped() bool { return s.stopped }

type taskKind int

const (
	taskSpawn taskKind = iota
)

type task struct {
	kind taskKind
}

// taskQueue holds work for the frame driver. Tasks run in FIFO order at
// a fixed point of each tick; a task that cannot run yet stays queued.
type taskQueue struct {
	tasks []task
}

func (q *taskQueue) push(t task) { q.tasks = append(q.tasks, t) }

func (q *taskQueue) len() int { return len(q.tasks) }

// drain runs every task through fn and keeps the ones fn declines.
func (q *taskQueue) drain(fn func(task) bool) {
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if !fn(t) {
			kept = append(kept, t)
		}
	}
	q.tasks = kept
}

func (q *taskQueue) clear() { q.tasks = q.tasks[:0] }
