package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollides(t *testing.T) {
	tests := []struct {
		name      string
		user      Vec3
		obstacles []Vec3
		wantHit   bool
		wantIndex int
	}{
		{name: "empty registry", user: Vec3{}, wantHit: false},
		{name: "same spot", user: Vec3{}, obstacles: []Vec3{{}}, wantHit: true},
		{name: "lateral only", user: Vec3{}, obstacles: []Vec3{{X: 0.2, Z: 10}}, wantHit: false},
		{name: "longitudinal only", user: Vec3{}, obstacles: []Vec3{{X: 2, Z: 1}}, wantHit: false},
		{name: "lateral threshold is strict", user: Vec3{}, obstacles: []Vec3{{X: 0.5, Z: 0}}, wantHit: false},
		{name: "longitudinal threshold is strict", user: Vec3{}, obstacles: []Vec3{{X: 0, Z: -3}}, wantHit: false},
		{name: "just inside both", user: Vec3{X: 1, Z: 100}, obstacles: []Vec3{{X: 1.49, Z: 102.99}}, wantHit: true},
		{name: "y ignored", user: Vec3{}, obstacles: []Vec3{{Y: 50}}, wantHit: true},
		{
			name:      "first match in spawn order",
			user:      Vec3{},
			obstacles: []Vec3{{X: 3}, {X: 0.1, Z: 1}, {X: 0, Z: 0}},
			wantHit:   true,
			wantIndex: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(1)
			var ids []ObstacleID
			for _, p := range tt.obstacles {
				ids = append(ids, r.Insert(p))
			}
			id, hit := Collides(tt.user, r, 0.5, 3)
			assert.Equal(t, tt.wantHit, hit)
			if tt.wantHit {
				assert.Equal(t, ids[tt.wantIndex], id)
			}
		})
	}
}
