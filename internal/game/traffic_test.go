package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySpawnWithinLane(t *testing.T) {
	r := NewRegistry(7)
	r.SetModel(3)
	for i := 0; i < 200; i++ {
		id := r.Spawn(-4, 4, 1000)
		o, ok := r.Get(id)
		require.True(t, ok)
		assert.GreaterOrEqual(t, o.Pos.X, -4.0)
		assert.LessOrEqual(t, o.Pos.X, 4.0)
		assert.Equal(t, 1000.0, o.Pos.Z)
		assert.Equal(t, ModelHandle(3), o.Model)
	}
	assert.Equal(t, 200, r.Len())
}

func TestRegistryDeterministicPerSeed(t *testing.T) {
	a, b := NewRegistry(99), NewRegistry(99)
	for i := 0; i < 10; i++ {
		a.Spawn(-4, 4, 0)
		b.Spawn(-4, 4, 0)
	}
	for i := 0; i < 50; i++ {
		a.DriftRandom(0.5, 0.1, -4, 4)
		b.DriftRandom(0.5, 0.1, -4, 4)
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestRegistryAdvanceAll(t *testing.T) {
	r := NewRegistry(1)
	r.Insert(Vec3{Z: 10})
	r.Insert(Vec3{Z: -3})
	r.AdvanceAll(0.5)

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, 9.5, snap[0].Pos.Z)
	assert.Equal(t, -3.5, snap[1].Pos.Z)
}

func TestDriftRandomStaysInLane(t *testing.T) {
	r := NewRegistry(5)
	for i := 0; i < 20; i++ {
		r.Spawn(-4, 4, 0)
	}
	for i := 0; i < 1000; i++ {
		r.DriftRandom(1, 0.1, -4, 4)
		r.Each(func(o Obstacle) bool {
			assert.GreaterOrEqual(t, o.Pos.X, -4.0)
			assert.LessOrEqual(t, o.Pos.X, 4.0)
			return true
		})
	}
}

func TestDriftStepLargerThanLaneStaysClamped(t *testing.T) {
	r := NewRegistry(11)
	id := r.Insert(Vec3{X: 4})
	for i := 0; i < 100; i++ {
		r.DriftRandom(1, 20, -4, 4)
		o, _ := r.Get(id)
		assert.True(t, o.Pos.X == 4 || o.Pos.X == -4, "x=%v", o.Pos.X)
		assert.LessOrEqual(t, o.Pos.X, 4.0)
	}
}

func TestDriftZeroProbabilityNeverMoves(t *testing.T) {
	r := NewRegistry(3)
	id := r.Insert(Vec3{X: 1.25})
	for i := 0; i < 100; i++ {
		r.DriftRandom(0, 0.1, -4, 4)
	}
	o, _ := r.Get(id)
	assert.Equal(t, 1.25, o.Pos.X)
}

func TestCullPast(t *testing.T) {
	tests := []struct {
		name     string
		zs       []float64
		boundary float64
		kept     []float64
	}{
		{name: "empty registry", zs: nil, boundary: 5},
		{name: "boundary itself kept", zs: []float64{5, 5.0001, 4.9999}, boundary: 5, kept: []float64{5, 4.9999}},
		{name: "all past", zs: []float64{10, 20}, boundary: 5},
		{name: "none past", zs: []float64{-10, 0, 5}, boundary: 5, kept: []float64{-10, 0, 5}},
		{name: "interleaved", zs: []float64{6, 1, 7, 2, 8}, boundary: 5, kept: []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(1)
			for i, z := range tt.zs {
				r.Insert(Vec3{X: float64(i), Z: z})
			}
			before := r.Snapshot()

			removed := r.CullPast(tt.boundary)

			var kept []float64
			for _, o := range r.Snapshot() {
				kept = append(kept, o.Pos.Z)
			}
			assert.Equal(t, tt.kept, kept)
			assert.Len(t, removed, len(tt.zs)-len(tt.kept))

			// Survivors are untouched.
			for _, o := range before {
				if got, ok := r.Get(o.ID); ok {
					assert.Equal(t, o, got)
				}
			}
		})
	}
}

func TestCullBehind(t *testing.T) {
	r := NewRegistry(1)
	a := r.Insert(Vec3{Z: -2460})
	b := r.Insert(Vec3{Z: -2455})
	c := r.Insert(Vec3{Z: 100})

	removed := r.CullBehind(-2455)
	assert.Equal(t, []ObstacleID{a}, removed)
	_, ok := r.Get(b)
	assert.True(t, ok)
	_, ok = r.Get(c)
	assert.True(t, ok)
}

func TestEachStopsEarly(t *testing.T) {
	r := NewRegistry(1)
	for i := 0; i < 5; i++ {
		r.Insert(Vec3{})
	}
	n := 0
	r.Each(func(Obstacle) bool {
		n++
		return n < 2
	})
	assert.Equal(t, 2, n)
}
