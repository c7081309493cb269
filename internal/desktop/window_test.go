package desktop

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want string
	}{
		{glfw.KeyW, "w"},
		{glfw.KeyA, "a"},
		{glfw.KeyZ, "z"},
		{glfw.Key0, "0"},
		{glfw.Key9, "9"},
		{glfw.KeySpace, "space"},
		{glfw.KeyUp, "up"},
		{glfw.KeyF1, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyName(tt.key))
	}
}
