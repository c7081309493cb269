package game

import "strings"

// Control is one of the four held-key controls.
type Control int

const (
	ControlForward Control = iota
	ControlBackward
	ControlLeft
	ControlRight
	controlCount
)

func (c Control) String() string {
	switch c {
	case ControlForward:
		return "forward"
	case ControlBackward:
		return "backward"
	case ControlLeft:
		return "left"
	case ControlRight:
		return "right"
	}
	return "unknown"
}

// Controls is a snapshot of the held-key flags.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Bindings maps key identifiers to controls.
type Bindings map[string]Control

// DefaultBindings returns the WASD layout.
func DefaultBindings() Bindings {
	return Bindings{
		"w": ControlForward,
		"s": ControlBackward,
		"a": ControlLeft,
		"d": ControlRight,
	}
}

// InputState tracks key-down/key-up events as four booleans. Only key
// events write it and only the frame driver reads it, once per tick.
type InputState struct {
	bindings Bindings
	held     [controlCount]bool
}

func NewInputState(b Bindings) *InputState {
	if len(b) == 0 {
		b = DefaultBindings()
	}
	norm := make(Bindings, len(b))
	for k, c := range b {
		norm[strings.ToLower(k)] = c
	}
	return &InputState{bindings: norm}
}

// SetKey records a press or release. Keys without a binding are ignored.
func (in *InputState) SetKey(key string, pressed bool) {
	c, ok := in.bindings[strings.ToLower(key)]
	if !ok {
		return
	}
	in.held[c] = pressed
}

// Read returns the current snapshot.
func (in *InputState) Read() Controls {
	return Controls{
		Forward:  in.held[ControlForward],
		Backward: in.held[ControlBackward],
		Left:     in.held[ControlLeft],
		Right:    in.held[ControlRight],
	}
}

// Reset releases every control.
func (in *InputState) Reset() {
	in.held = [controlCount]bool{}
}
