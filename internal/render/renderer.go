// Package render draws the lane scene and HUD with OpenGL 4.1. Every
// call must come from the goroutine that owns the GL context.
package render

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"lanerush/internal/game"
	"lanerush/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type gpuMesh struct {
	vao, vbo uint32
	count    int32
}

type pendingUpload struct {
	name string
	mesh scene.Mesh
	fut  *game.Future[game.ModelHandle]
}

type Renderer struct {
	log zerolog.Logger

	camera   scene.ChaseCamera
	tunnel   scene.Tunnel
	lighting scene.Lighting
	laneEdge float32

	// Mesh program.
	meshProg  uint32
	uModel    int32
	uView     int32
	uProj     int32
	uTint     int32
	uMaterial int32
	uAmbient  int32
	uSunColor int32
	uSunDir   int32
	uCamPos   int32
	uFogColor int32
	uFogNear  int32
	uFogFar   int32
	uLaneEdge int32

	cube       gpuMesh
	meshes     map[game.ModelHandle]gpuMesh
	nextHandle game.ModelHandle

	// Models built off the GL thread wait here until PumpUploads.
	uploadMu sync.Mutex
	uploads  []pendingUpload

	// Font/text rendering.
	atlas        *scene.Atlas
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

// NewRenderer builds GL state. The road's edge lines are painted just
// outside laneEdge, normally the lateral bound.
func NewRenderer(log zerolog.Logger, laneEdge float64) (*Renderer, error) {
	meshProg, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}

	r := &Renderer{
		log:        log.With().Str("component", "render").Logger(),
		camera:     scene.DefaultCamera(),
		tunnel:     scene.DefaultTunnel(),
		lighting:   scene.DefaultLighting(),
		laneEdge:   float32(laneEdge) + 0.5,
		meshProg:   meshProg,
		meshes:     make(map[game.ModelHandle]gpuMesh),
		nextHandle: game.NoModel + 1,
	}

	gl.UseProgram(meshProg)
	r.uModel = gl.GetUniformLocation(meshProg, gl.Str("uModel\x00"))
	r.uView = gl.GetUniformLocation(meshProg, gl.Str("uView\x00"))
	r.uProj = gl.GetUniformLocation(meshProg, gl.Str("uProj\x00"))
	r.uTint = gl.GetUniformLocation(meshProg, gl.Str("uTint\x00"))
	r.uMaterial = gl.GetUniformLocation(meshProg, gl.Str("uMaterial\x00"))
	r.uAmbient = gl.GetUniformLocation(meshProg, gl.Str("uAmbient\x00"))
	r.uSunColor = gl.GetUniformLocation(meshProg, gl.Str("uSunColor\x00"))
	r.uSunDir = gl.GetUniformLocation(meshProg, gl.Str("uSunDir\x00"))
	r.uCamPos = gl.GetUniformLocation(meshProg, gl.Str("uCamPos\x00"))
	r.uFogColor = gl.GetUniformLocation(meshProg, gl.Str("uFogColor\x00"))
	r.uFogNear = gl.GetUniformLocation(meshProg, gl.Str("uFogNear\x00"))
	r.uFogFar = gl.GetUniformLocation(meshProg, gl.Str("uFogFar\x00"))
	r.uLaneEdge = gl.GetUniformLocation(meshProg, gl.Str("uLaneEdge\x00"))

	r.cube, err = uploadMesh(scene.UnitCube())
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("unit cube: %w", err)
	}
	if err := r.initText(scene.NewAtlas()); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("font: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.BindVertexArray(0)
	return r, nil
}

func uploadMesh(m scene.Mesh) (gpuMesh, error) {
	if err := m.Validate(); err != nil {
		return gpuMesh{}, err
	}
	var g gpuMesh
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	stride := int32(scene.FloatsPerVertex * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aNormal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	// aColor (vec3)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, glOffset(6*4))
	gl.BindVertexArray(0)

	g.count = int32(m.VertexCount())
	if code := gl.GetError(); code != gl.NO_ERROR {
		g.destroy()
		return gpuMesh{}, fmt.Errorf("gl error 0x%x uploading mesh", code)
	}
	return g, nil
}

func (g *gpuMesh) destroy() {
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	*g = gpuMesh{}
}

func (r *Renderer) Destroy() {
	r.cube.destroy()
	for h, m := range r.meshes {
		m.destroy()
		delete(r.meshes, h)
	}
	if r.textVBO != 0 {
		gl.DeleteBuffers(1, &r.textVBO)
	}
	if r.textVAO != 0 {
		gl.DeleteVertexArrays(1, &r.textVAO)
	}
	for _, id := range []uint32{r.meshProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// RenderFrame draws one frame: the 3D scene from the chase camera, then
// the HUD on top.
func (r *Renderer) RenderFrame(f scene.Frame, hud scene.HUDState, fbW, fbH int) {
	sky := r.lighting.SkyColor
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	view := r.camera.View(f.Camera)
	proj := r.camera.Projection(fbW, fbH)
	l := r.lighting

	gl.UseProgram(r.meshProg)
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.Uniform3f(r.uAmbient, l.Ambient[0], l.Ambient[1], l.Ambient[2])
	gl.Uniform3f(r.uSunColor, l.SunColor[0], l.SunColor[1], l.SunColor[2])
	gl.Uniform3f(r.uSunDir, l.SunDir[0], l.SunDir[1], l.SunDir[2])
	gl.Uniform3f(r.uCamPos, float32(f.Camera.X), float32(f.Camera.Y), float32(f.Camera.Z))
	gl.Uniform3f(r.uFogColor, sky[0], sky[1], sky[2])
	gl.Uniform1f(r.uFogNear, r.camera.Far*0.6)
	gl.Uniform1f(r.uFogFar, r.camera.Far)
	gl.Uniform1f(r.uLaneEdge, r.laneEdge)

	for _, d := range scene.Layout(f, r.tunnel, l) {
		m := r.cube
		if d.Model != game.NoModel {
			var ok bool
			if m, ok = r.meshes[d.Model]; !ok {
				continue
			}
		}
		r.drawMesh(m, d.Transform, d.Tint, d.Material)
	}
	gl.BindVertexArray(0)

	gl.Disable(gl.DEPTH_TEST)
	r.DrawHUD(scene.HUDLines(hud), fbW, fbH)
}

func (r *Renderer) drawMesh(m gpuMesh, model mgl32.Mat4, tint mgl32.Vec3, mat scene.Material) {
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.Uniform3f(r.uTint, tint[0], tint[1], tint[2])
	gl.Uniform1i(r.uMaterial, int32(mat))
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}
