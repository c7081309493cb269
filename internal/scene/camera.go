// Package scene turns simulation state into draw lists, matrices and
// vertex data. It never touches GL.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"lanerush/internal/game"
)

// ChaseCamera is a perspective camera placed by the simulation and aimed
// down the road.
type ChaseCamera struct {
	FovY      float32 // degrees
	Near, Far float32
	LookAhead float32 // how far down the road the camera aims
}

func DefaultCamera() ChaseCamera {
	return ChaseCamera{FovY: 75, Near: 0.1, Far: 1000, LookAhead: 40}
}

// View aims from eye toward a point on the road surface ahead.
func (c ChaseCamera) View(eye game.Vec3) mgl32.Mat4 {
	e := vec3(eye)
	target := mgl32.Vec3{e.X(), 0, e.Z() + c.LookAhead}
	return mgl32.LookAtV(e, target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for a framebuffer. A
// degenerate size falls back to a square aspect.
func (c ChaseCamera) Projection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbW > 0 && fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func vec3(v game.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
