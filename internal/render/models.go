package render

import (
	"fmt"

	"lanerush/internal/game"
	"lanerush/internal/scene"
)

// LoadCarModel starts building the car model in the background. The
// returned future resolves once PumpUploads has put it on the GPU.
func (r *Renderer) LoadCarModel() *game.Future[game.ModelHandle] {
	return r.loadModel("car", scene.CarMesh)
}

func (r *Renderer) loadModel(name string, build func() scene.Mesh) *game.Future[game.ModelHandle] {
	fut := game.NewFuture[game.ModelHandle]()
	go func() {
		m := build()
		if err := m.Validate(); err != nil {
			fut.Fail(fmt.Errorf("%s model: %w", name, err))
			return
		}
		r.uploadMu.Lock()
		r.uploads = append(r.uploads, pendingUpload{name: name, mesh: m, fut: fut})
		r.uploadMu.Unlock()
	}()
	return fut
}

// PumpUploads moves finished models onto the GPU and resolves their
// futures. Call it once per frame from the GL thread.
func (r *Renderer) PumpUploads() {
	r.uploadMu.Lock()
	pending := r.uploads
	r.uploads = nil
	r.uploadMu.Unlock()

	for _, p := range pending {
		g, err := uploadMesh(p.mesh)
		if err != nil {
			r.log.Warn().Err(err).Str("model", p.name).Msg("model upload failed")
			p.fut.Fail(fmt.Errorf("upload %s model: %w", p.name, err))
			continue
		}
		h := r.nextHandle
		r.nextHandle++
		r.meshes[h] = g
		r.log.Debug().Str("model", p.name).Uint32("handle", uint32(h)).Int32("vertices", g.count).Msg("model uploaded")
		p.fut.Resolve(h)
	}
}
