package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is position(3) + normal(3) + color(3).
const FloatsPerVertex = 9

// Mesh is interleaved triangle vertex data.
type Mesh struct {
	Vertices []float32
}

func (m Mesh) VertexCount() int { return len(m.Vertices) / FloatsPerVertex }

// Validate checks the data describes whole triangles.
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return errors.New("mesh has no vertices")
	}
	if len(m.Vertices)%FloatsPerVertex != 0 {
		return errors.New("mesh data is not a whole number of vertices")
	}
	if m.VertexCount()%3 != 0 {
		return errors.New("mesh vertex count is not a multiple of 3")
	}
	return nil
}

var cubeFaces = [6]struct {
	normal mgl32.Vec3
	quad   [4]mgl32.Vec3 // counter-clockwise seen from outside
}{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
}

// AppendBox appends an axis-aligned box spanning min..max.
func AppendBox(dst []float32, min, max, color mgl32.Vec3) []float32 {
	size := max.Sub(min)
	for _, f := range cubeFaces {
		var v [4]mgl32.Vec3
		for i, q := range f.quad {
			v[i] = mgl32.Vec3{min[0] + q[0]*size[0], min[1] + q[1]*size[1], min[2] + q[2]*size[2]}
		}
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			dst = append(dst,
				v[i][0], v[i][1], v[i][2],
				f.normal[0], f.normal[1], f.normal[2],
				color[0], color[1], color[2],
			)
		}
	}
	return dst
}

// UnitCube spans -0.5..0.5 on every axis, white.
func UnitCube() Mesh {
	h := float32(0.5)
	return Mesh{Vertices: AppendBox(nil, mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, h, h}, mgl32.Vec3{1, 1, 1})}
}

// CarMesh is the procedural car: a white body (tinted per car when
// drawn), a dark cabin and four wheels. It faces +Z with its wheels on
// y=0, before the 0.5 model scale.
func CarMesh() Mesh {
	white := mgl32.Vec3{1, 1, 1}
	glass := mgl32.Vec3{0.12, 0.14, 0.18}
	tyre := mgl32.Vec3{0.05, 0.05, 0.05}
	lamp := mgl32.Vec3{1, 0.95, 0.7}

	var v []float32
	v = AppendBox(v, mgl32.Vec3{-0.9, 0.3, -2}, mgl32.Vec3{0.9, 1.0, 2}, white)
	v = AppendBox(v, mgl32.Vec3{-0.75, 1.0, -0.9}, mgl32.Vec3{0.75, 1.55, 0.9}, glass)
	for _, x := range [2]float32{-0.95, 0.65} {
		for _, z := range [2]float32{-1.5, 1.0} {
			v = AppendBox(v, mgl32.Vec3{x, 0, z}, mgl32.Vec3{x + 0.3, 0.5, z + 0.5}, tyre)
		}
	}
	for _, x := range [2]float32{-0.7, 0.45} {
		v = AppendBox(v, mgl32.Vec3{x, 0.6, 2}, mgl32.Vec3{x + 0.25, 0.8, 2.05}, lamp)
	}
	return Mesh{Vertices: v}
}
