// Package desktop owns the window, the GL context and the frame loop.
package desktop

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"lanerush/internal/app"
	"lanerush/internal/config"
	"lanerush/internal/render"
)

// maxFrame caps dt after a stall. Session timers (spawns, countdown,
// notice) run on this capped time, so they fall behind the wall clock
// instead of bursting.
const maxFrame = 100 * time.Millisecond

type Options struct {
	Window config.WindowConfig
	// Deps for the controller. Model is filled in here from the renderer.
	Deps app.Deps
	Log  zerolog.Logger
}

// Run opens the window and plays until it is closed or ctx is done. It
// must be called from the main goroutine.
func Run(ctx context.Context, opts Options) error {
	runtime.LockOSThread()
	log := opts.Log.With().Str("component", "desktop").Logger()

	window, err := initWindow(opts.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("context ready")

	rend, err := render.NewRenderer(opts.Log, opts.Deps.Params.LateralMax)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	// One model for the whole process; restarts reuse the resolved future.
	deps := opts.Deps
	deps.Model = rend.LoadCarModel()

	ctl, err := app.New(ctx, deps)
	if err != nil {
		return err
	}

	var keyErr error
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		name := keyName(key)
		if name == "" {
			return
		}
		if err := ctl.Key(ctx, name, action != glfw.Release); err != nil && keyErr == nil {
			keyErr = err
		}
	})
	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			ctl.FocusLost()
		}
	})

	last := glfw.GetTime()
	for !window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			log.Info().Msg("context done, closing window")
			return nil
		}
		now := glfw.GetTime()
		dt := time.Duration((now - last) * float64(time.Second))
		last = now
		if dt > maxFrame {
			dt = maxFrame
		}

		glfw.PollEvents()
		if keyErr != nil {
			return fmt.Errorf("restart: %w", keyErr)
		}

		rend.PumpUploads()
		ctl.Step(ctx, dt)

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimised.
			continue
		}
		rend.RenderFrame(ctl.Frame(), ctl.HUD(), fbW, fbH)
		window.SwapBuffers()
	}
	log.Info().Int("rounds", ctl.Round()+1).Msg("window closed")
	return nil
}
