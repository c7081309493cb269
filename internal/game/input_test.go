package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputState(t *testing.T) {
	tests := []struct {
		name   string
		events []struct {
			key     string
			pressed bool
		}
		want Controls
	}{
		{
			name: "press forward",
			events: []struct {
				key     string
				pressed bool
			}{{"w", true}},
			want: Controls{Forward: true},
		},
		{
			name: "press then release",
			events: []struct {
				key     string
				pressed bool
			}{{"a", true}, {"a", false}},
			want: Controls{},
		},
		{
			name: "upper case key maps to same control",
			events: []struct {
				key     string
				pressed bool
			}{{"D", true}, {"s", true}},
			want: Controls{Right: true, Backward: true},
		},
		{
			name: "unknown keys ignored",
			events: []struct {
				key     string
				pressed bool
			}{{"q", true}, {"ArrowUp", true}, {"", true}},
			want: Controls{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInputState(nil)
			for _, e := range tt.events {
				in.SetKey(e.key, e.pressed)
			}
			assert.Equal(t, tt.want, in.Read())
		})
	}
}

func TestInputStateCustomBindings(t *testing.T) {
	in := NewInputState(Bindings{"Up": ControlForward, "left": ControlLeft})

	in.SetKey("up", true)
	in.SetKey("w", true)
	assert.Equal(t, Controls{Forward: true}, in.Read())

	in.SetKey("LEFT", true)
	in.Reset()
	assert.Equal(t, Controls{}, in.Read())
}

func TestControlString(t *testing.T) {
	assert.Equal(t, "forward", ControlForward.String())
	assert.Equal(t, "right", ControlRight.String())
	assert.Equal(t, "unknown", Control(42).String())
}
