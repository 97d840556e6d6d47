package player

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// InputKind enumerates the events an input source can raise.
type InputKind int

const (
	InputMove InputKind = iota
	InputSprint
	InputJump
	InputClimb
	InputCancelClimb
	InputCrouch
	InputGlide
	InputCancelGlide
	InputPunch
	InputChangePerspective
)

var inputKindNames = map[InputKind]string{
	InputMove:              "move",
	InputSprint:            "sprint",
	InputJump:              "jump",
	InputClimb:             "climb",
	InputCancelClimb:       "cancel_climb",
	InputCrouch:            "crouch",
	InputGlide:             "glide",
	InputCancelGlide:       "cancel_glide",
	InputPunch:             "punch",
	InputChangePerspective: "change_perspective",
}

func (k InputKind) String() string {
	if name, ok := inputKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("input(%d)", int(k))
}

// ParseInputKind maps a name such as "cancel_glide" to its kind.
func ParseInputKind(name string) (InputKind, bool) {
	for k, n := range inputKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// InputEvent is one event from an input source. Axis is used by InputMove,
// Held by InputSprint.
type InputEvent struct {
	Kind InputKind
	Axis mgl64.Vec2
	Held bool
}

func Move(x, y float64) InputEvent { return InputEvent{Kind: InputMove, Axis: mgl64.Vec2{x, y}} }
func Sprint(held bool) InputEvent { return InputEvent{Kind: InputSprint, Held: held} }
func Press(kind InputKind) InputEvent {
	return InputEvent{Kind: kind}
}
