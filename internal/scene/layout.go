package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"lanerush/internal/game"
)

// Material picks the shading path.
type Material int

const (
	MaterialLit   Material = iota // sun + ambient
	MaterialUnlit                 // flat color
	MaterialRoad                  // flat with painted lane markings
)

// Draw is one mesh instance. Model NoModel means the shared unit cube.
type Draw struct {
	Model     game.ModelHandle
	Transform mgl32.Mat4
	Tint      mgl32.Vec3
	Material  Material
}

// Tunnel dimensions around the lanes.
type Tunnel struct {
	Width, Length float32
	RoofHeight    float32
	WallX         float32
	Thickness     float32
}

func DefaultTunnel() Tunnel {
	return Tunnel{Width: 10, Length: 5000, RoofHeight: 10, WallX: 5, Thickness: 0.05}
}

const (
	CarScale = 0.5
	// Traffic is modelled facing +Z and turned around to face the player.
	TrafficYaw = math32.Pi
)

// Frame is what the renderer needs from one session state.
type Frame struct {
	Camera    game.Vec3
	User      game.UserAgent
	HasUser   bool
	Obstacles []game.Obstacle
}

// FrameOf captures a session for drawing.
func FrameOf(s *game.Session) Frame {
	u, ok := s.Agent()
	return Frame{
		Camera:    s.Camera(),
		User:      u,
		HasUser:   ok,
		Obstacles: s.Obstacles(),
	}
}

// Layout builds the draw list for a frame: road, roof and walls, then the
// user car, then traffic in spawn order. Cars without a model are skipped.
func Layout(f Frame, t Tunnel, l Lighting) []Draw {
	draws := make([]Draw, 0, 4+1+len(f.Obstacles))

	slab := func(center, size mgl32.Vec3) mgl32.Mat4 {
		return mgl32.Translate3D(center[0], center[1], center[2]).
			Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	}
	draws = append(draws,
		Draw{
			Transform: slab(mgl32.Vec3{0, -t.Thickness / 2, 0}, mgl32.Vec3{t.Width, t.Thickness, t.Length}),
			Tint:      Hex(0x3a3a3a),
			Material:  MaterialRoad,
		},
		Draw{
			Transform: slab(mgl32.Vec3{0, t.RoofHeight, 0}, mgl32.Vec3{t.Width, t.Thickness, t.Length}),
			Tint:      l.WallColor,
			Material:  MaterialUnlit,
		},
	)
	for _, x := range [2]float32{-t.WallX, t.WallX} {
		draws = append(draws, Draw{
			Transform: slab(mgl32.Vec3{x, t.RoofHeight / 2, 0}, mgl32.Vec3{t.Thickness, t.RoofHeight, t.Length}),
			Tint:      l.WallColor,
			Material:  MaterialUnlit,
		})
	}

	if f.HasUser && f.User.Model != game.NoModel {
		draws = append(draws, Draw{
			Model:     f.User.Model,
			Transform: carTransform(f.User.Pos, float32(f.User.Rotation)),
			Tint:      UserColor(),
			Material:  MaterialLit,
		})
	}
	for _, o := range f.Obstacles {
		if o.Model == game.NoModel {
			continue
		}
		draws = append(draws, Draw{
			Model:     o.Model,
			Transform: carTransform(o.Pos, TrafficYaw),
			Tint:      TrafficColor(uint64(o.ID)),
			Material:  MaterialLit,
		})
	}
	return draws
}

func carTransform(p game.Vec3, yaw float32) mgl32.Mat4 {
	return mgl32.Translate3D(float32(p.X), float32(p.Y), float32(p.Z)).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.Scale3D(CarScale, CarScale, CarScale))
}
