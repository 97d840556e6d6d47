package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

const (
	stickDeadzone = 0.2
	// stickLookSpeed is degrees per tick at full right-stick deflection.
	stickLookSpeed = 20
)

// controls is one tick of device state, already reduced to actions.
type controls struct {
	Move   mgl64.Vec2
	Sprint bool

	Jump              bool
	Climb             bool
	Crouch            bool
	Punch             bool
	ChangePerspective bool

	LookX, LookY float64
}

// Keyboard turns keyboard, mouse and the first gamepad into controller input
// events. Move and sprint are only sent when they change.
type Keyboard struct {
	lastMove   mgl64.Vec2
	lastSprint bool

	cursorX, cursorY int
	cursorKnown      bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Poll reads the devices and feeds q and rig. The controller is only read,
// to pick between a stance's enter and cancel event.
func (k *Keyboard) Poll(q *component.InputQueue, rig *component.CameraRig, c *player.Controller) {
	ctl := k.read()
	if rig != nil && (ctl.LookX != 0 || ctl.LookY != 0) {
		rig.Look(ctl.LookX, ctl.LookY)
	}
	if q == nil || c == nil {
		return
	}
	q.Push(k.translate(ctl, c.Stance(), c.Grounded())...)
}

func (k *Keyboard) read() controls {
	var ctl controls

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		ctl.Move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		ctl.Move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		ctl.Move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		ctl.Move[1] -= 1
	}
	ctl.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	ctl.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	ctl.Climb = inpututil.IsKeyJustPressed(ebiten.KeyE)
	ctl.Crouch = inpututil.IsKeyJustPressed(ebiten.KeyC) || inpututil.IsKeyJustPressed(ebiten.KeyControlLeft)
	ctl.Punch = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyF)
	ctl.ChangePerspective = inpututil.IsKeyJustPressed(ebiten.KeyV)

	x, y := ebiten.CursorPosition()
	if k.cursorKnown {
		ctl.LookX = float64(x - k.cursorX)
		ctl.LookY = float64(y - k.cursorY)
	}
	k.cursorX, k.cursorY, k.cursorKnown = x, y, true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			ctl.Move = mgl64.Vec2{lx, -ly}
		}

		ctl.Sprint = ctl.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		ctl.Jump = ctl.Jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		ctl.Punch = ctl.Punch || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		ctl.Crouch = ctl.Crouch || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		ctl.Climb = ctl.Climb || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		ctl.ChangePerspective = ctl.ChangePerspective || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightStick)

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			ctl.LookX += rx * stickLookSpeed
			ctl.LookY += ry * stickLookSpeed
		}
	}

	if l := ctl.Move.Len(); l > 1 {
		ctl.Move = ctl.Move.Mul(1 / l)
	}
	return ctl
}

// translate maps one tick of controls to input events. Jump doubles as glide
// and cancel glide once airborne; climb doubles as cancel climb.
func (k *Keyboard) translate(ctl controls, stance player.Stance, grounded bool) []player.InputEvent {
	var out []player.InputEvent

	if ctl.Move != k.lastMove {
		out = append(out, player.Move(ctl.Move.X(), ctl.Move.Y()))
		k.lastMove = ctl.Move
	}
	if ctl.Sprint != k.lastSprint {
		out = append(out, player.Sprint(ctl.Sprint))
		k.lastSprint = ctl.Sprint
	}

	if ctl.Jump {
		switch {
		case stance == player.StanceGlide:
			out = append(out, player.Press(player.InputCancelGlide))
		case grounded:
			out = append(out, player.Press(player.InputJump))
		default:
			out = append(out, player.Press(player.InputGlide))
		}
	}
	if ctl.Climb {
		if stance == player.StanceClimb {
			out = append(out, player.Press(player.InputCancelClimb))
		} else {
			out = append(out, player.Press(player.InputClimb))
		}
	}
	if ctl.Crouch {
		out = append(out, player.Press(player.InputCrouch))
	}
	if ctl.Punch {
		out = append(out, player.Press(player.InputPunch))
	}
	if ctl.ChangePerspective {
		out = append(out, player.Press(player.InputChangePerspective))
	}
	return out
}
