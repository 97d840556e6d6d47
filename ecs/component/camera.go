package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/traverse/player"
)

// CameraRig is the orbit/first-person camera the player coupler drives.
// Look input turns it; the coupler sets its limits and lens.
type CameraRig struct {
	Target      uint64
	YawDeg      float64
	PitchDeg    float64
	MinPitch    float64
	MaxPitch    float64
	YawMin      float64
	YawMax      float64
	Wrap        bool
	FOV         float64
	View        player.Perspective
	Distance    float64
	Height      float64
	Sensitivity float64
	// Eye and Forward are the pose computed by the camera system.
	Eye     mgl64.Vec3
	Forward mgl64.Vec3
}

var _ player.CameraRig = (*CameraRig)(nil)

func (c *CameraRig) Yaw() float64               { return c.YawDeg }
func (c *CameraRig) SetFieldOfView(fov float64) { c.FOV = fov }

// SetPerspective switches the view and applies the yaw range the new view
// obeys.
func (c *CameraRig) SetPerspective(p player.Perspective) {
	c.View = p
	c.YawDeg = c.limitYaw(c.YawDeg)
}

// SetYawRange bounds the first-person yaw. A wrapping range only normalizes
// the angle; a clamped one pulls the current yaw inside it. The third-person
// orbit always wraps.
func (c *CameraRig) SetYawRange(min, max float64, wrap bool) {
	c.YawMin, c.YawMax, c.Wrap = min, max, wrap
	c.YawDeg = c.limitYaw(c.YawDeg)
}

// Look turns the rig by a mouse or stick delta in degrees.
func (c *CameraRig) Look(dYaw, dPitch float64) {
	s := c.Sensitivity
	if s == 0 {
		s = 1
	}
	c.YawDeg = c.limitYaw(c.YawDeg + dYaw*s)
	c.PitchDeg = mgl64.Clamp(c.PitchDeg+dPitch*s, c.MinPitch, c.MaxPitch)
}

// limitYaw clamps around the middle of the range so a yaw on the other side
// of ±180 still counts as inside.
func (c *CameraRig) limitYaw(yaw float64) float64 {
	if c.Wrap || c.View != player.FirstPerson {
		return player.DeltaAngle(0, yaw)
	}
	if c.YawMin == 0 && c.YawMax == 0 {
		return yaw
	}
	mid := (c.YawMin + c.YawMax) / 2
	half := (c.YawMax - c.YawMin) / 2
	return mid + mgl64.Clamp(player.DeltaAngle(mid, yaw), -half, half)
}

var CameraRigComponent = NewComponent[CameraRig]()
