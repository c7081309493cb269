package desktop

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"lanerush/internal/config"
)

func initWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

var namedKeys = map[glfw.Key]string{
	glfw.KeySpace:  "space",
	glfw.KeyEnter:  "enter",
	glfw.KeyUp:     "up",
	glfw.KeyDown:   "down",
	glfw.KeyLeft:   "left",
	glfw.KeyRight:  "right",
	glfw.KeyEscape: "escape",
}

// keyName maps a glfw key to the identifier used in the key bindings:
// lower-case letters and digits, plus a few named keys.
func keyName(k glfw.Key) string {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return string(rune('a' + int(k-glfw.KeyA)))
	case k >= glfw.Key0 && k <= glfw.Key9:
		return string(rune('0' + int(k-glfw.Key0)))
	}
	return namedKeys[k]
}
