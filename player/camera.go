package player

// Perspective is the active camera view.
type Perspective int

const (
	ThirdPerson Perspective = iota
	FirstPerson
)

func (p Perspective) String() string {
	if p == FirstPerson {
		return "first_person"
	}
	return "third_person"
}

// CameraRig is the camera output the coupler drives: a first-person rig whose
// horizontal axis can be clamped and a third-person rig with a lens.
type CameraRig interface {
	// Yaw is the current camera heading in degrees.
	Yaw() float64
	SetPerspective(p Perspective)
	SetYawRange(min, max float64, wrap bool)
	SetFieldOfView(fov float64)
}

// CameraCoupler tracks the perspective and the stance-driven camera limits.
type CameraCoupler struct {
	rig         CameraRig
	perspective Perspective
	halfSpan    float64
	yawMin      float64
	yawMax      float64
	wrap        bool
	fov         float64
}

// NewCameraCoupler starts in third person with an unclamped yaw.
func NewCameraCoupler(rig CameraRig, params CameraParameters) *CameraCoupler {
	half := params.ClampHalfSpan
	if half <= 0 {
		half = 45
	}
	c := &CameraCoupler{rig: rig, halfSpan: half}
	c.rig.SetPerspective(ThirdPerson)
	c.SetYawClamp(0, false)
	c.SetFieldOfView(params.DefaultFOV)
	return c
}

func (c *CameraCoupler) Perspective() Perspective { return c.perspective }

// Yaw is the rig heading in degrees.
func (c *CameraCoupler) Yaw() float64 { return c.rig.Yaw() }

// Toggle flips the perspective and returns the new one.
func (c *CameraCoupler) Toggle() Perspective {
	if c.perspective == ThirdPerson {
		c.perspective = FirstPerson
	} else {
		c.perspective = ThirdPerson
	}
	c.rig.SetPerspective(c.perspective)
	return c.perspective
}

// SetYawClamp bounds the first-person yaw to ±halfSpan around facing, or
// releases it to a wrapping ±180.
func (c *CameraCoupler) SetYawClamp(facing float64, clamped bool) {
	if clamped {
		c.yawMin, c.yawMax, c.wrap = facing-c.halfSpan, facing+c.halfSpan, false
	} else {
		c.yawMin, c.yawMax, c.wrap = facing-180, facing+180, true
	}
	c.rig.SetYawRange(c.yawMin, c.yawMax, c.wrap)
}

// YawRange returns the current yaw limits.
func (c *CameraCoupler) YawRange() (min, max float64, wrap bool) {
	return c.yawMin, c.yawMax, c.wrap
}

func (c *CameraCoupler) SetFieldOfView(fov float64) {
	c.fov = fov
	c.rig.SetFieldOfView(fov)
}

func (c *CameraCoupler) FieldOfView() float64 { return c.fov }
