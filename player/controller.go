package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// Deps are the collaborators a Controller talks to. Anim, Destructibles and
// Logger may be left zero.
type Deps struct {
	World         WorldQuery
	Rig           CameraRig
	Scheduler     Scheduler
	Anim          AnimationSink
	Destructibles Destructibles
	Logger        zerolog.Logger
}

// Controller is the player locomotion and stance state machine. It is owned by
// a single entity and driven from one thread: Handle queues input, Tick runs
// one update pass.
type Controller struct {
	id      string
	cfg     Config
	body    *Body
	sensors *Sensors
	camera  *CameraCoupler
	combat  *Combat
	anim    AnimationSink
	log     zerolog.Logger

	stance      Stance
	speed       float64
	readings    Readings
	axis        mgl64.Vec2
	sprintHeld  bool
	yawVelocity float64

	pending  []InputEvent
	handlers map[InputKind]func(InputEvent)
}

// New builds a controller in the Stand stance at walk speed.
func New(id string, body *Body, cfg Config, deps Deps) *Controller {
	anim := deps.Anim
	if anim == nil {
		anim = nopSink{}
	}
	log := deps.Logger.With().Str("player", id).Logger()

	c := &Controller{
		id:      id,
		cfg:     cfg,
		body:    body,
		sensors: NewSensors(deps.World, cfg.Detectors, cfg.Motion),
		camera:  NewCameraCoupler(deps.Rig, cfg.Camera),
		anim:    anim,
		log:     log,
		stance:  StanceStand,
		speed:   cfg.Motion.WalkSpeed,
	}
	c.combat = NewCombat(id, deps.Scheduler, deps.Destructibles, anim, cfg.Combat, log)
	c.body.Collider = ColliderFor(StanceStand, cfg.Collider)
	c.body.Radius = cfg.Collider.Radius

	c.handlers = map[InputKind]func(InputEvent){
		InputJump:              func(InputEvent) { c.jump() },
		InputClimb:             func(InputEvent) { c.startClimb() },
		InputCancelClimb:       func(InputEvent) { c.cancelClimb() },
		InputCrouch:            func(InputEvent) { c.toggleCrouch() },
		InputGlide:             func(InputEvent) { c.startGlide() },
		InputCancelGlide:       func(InputEvent) { c.cancelGlide() },
		InputPunch:             func(InputEvent) { c.combat.Punch(c.stance) },
		InputChangePerspective: func(InputEvent) { c.changePerspective() },
	}
	return c
}

func (c *Controller) ID() string { return c.id }
func (c *Controller) Logger() zerolog.Logger { return c.log }
func (c *Controller) Body() *Body { return c.body }
func (c *Controller) Config() Config { return c.cfg }
func (c *Controller) Stance() Stance { return c.stance }
func (c *Controller) Speed() float64 { return c.speed }
func (c *Controller) Readings() Readings { return c.readings }
func (c *Controller) Camera() *CameraCoupler { return c.camera }
func (c *Controller) Combat() *Combat { return c.combat }
func (c *Controller) Sensors() *Sensors { return c.sensors }
func (c *Controller) Axis() mgl64.Vec2 { return c.axis }
func (c *Controller) SprintHeld() bool { return c.sprintHeld }
func (c *Controller) Grounded() bool { return c.readings.Grounded }
func (c *Controller) Perspective() Perspective { return c.camera.Perspective() }

// Handle accepts one input event. Move and Sprint update held state; every
// other event is applied during the next Tick, after the sensors ran.
func (c *Controller) Handle(evt InputEvent) {
	switch evt.Kind {
	case InputMove:
		c.axis = evt.Axis
	case InputSprint:
		c.sprintHeld = evt.Held
	default:
		if _, ok := c.handlers[evt.Kind]; ok {
			c.pending = append(c.pending, evt)
		}
	}
}

// Tick runs one update: sensors, auto transitions, queued input, motion and
// animation parameters, in that order.
func (c *Controller) Tick(dt float64) {
	c.readings = c.sensors.Read(c.body)
	c.anim.SetBool(AnimIsGrounded, c.readings.Grounded)

	if c.readings.Grounded && c.stance == StanceGlide {
		c.cancelGlide()
	}

	pending := c.pending
	c.pending = nil
	for _, evt := range pending {
		c.handlers[evt.Kind](evt)
	}

	c.easeSpeed(dt)
	c.move(dt)
	c.glidePropulsion(dt)
	c.stepAssist(dt)
}

// OnAnimationEvent receives clip events raised by the animation system.
func (c *Controller) OnAnimationEvent(evt AnimationEvent) {
	switch evt {
	case AnimationEventPunchEnd:
		c.combat.EndPunch()
	case AnimationEventHit:
		c.combat.Hit(c.sensors.HitTargets(c.body))
	}
}

func (c *Controller) setStance(to Stance) {
	from := c.stance
	c.stance = to
	c.body.Collider = ColliderFor(to, c.cfg.Collider)
	c.log.Debug().Stringer("from", from).Stringer("to", to).Msg("stance changed")
}

func (c *Controller) reject(action string) {
	c.log.Debug().Str("action", action).Stringer("stance", c.stance).Bool("grounded", c.readings.Grounded).Msg("transition rejected")
}

func (c *Controller) toggleCrouch() {
	switch c.stance {
	case StanceStand:
		c.setStance(StanceCrouch)
		c.speed = c.cfg.Motion.CrouchSpeed
		c.anim.SetBool(AnimIsCrouch, true)
	case StanceCrouch:
		if !c.sensors.OverheadFree(c.body) {
			c.reject("stand")
			return
		}
		c.setStance(StanceStand)
		c.speed = c.cfg.Motion.WalkSpeed
		c.anim.SetBool(AnimIsCrouch, false)
	default:
		c.reject("crouch")
	}
}

func (c *Controller) startClimb() {
	if c.stance != StanceStand || !c.readings.Grounded {
		c.reject("climb")
		return
	}
	hit, ok := c.sensors.Climbable(c.body)
	if !ok {
		c.reject("climb")
		return
	}

	off := c.cfg.Motion.ClimbOffset
	offset := c.body.Forward().Mul(off.Z()).Add(worldUp.Mul(off.Y()))
	c.body.Position = hit.Point.Sub(offset)
	c.body.UseGravity = false
	c.body.Velocity = mgl64.Vec3{}
	c.setStance(StanceClimb)
	c.speed = c.cfg.Motion.ClimbSpeed

	closest := hit.Collider.Bounds.ClosestPoint(c.body.Position)
	if yaw, ok := LookYaw(closest.Sub(c.body.Position)); ok {
		c.body.SetYaw(yaw)
	}

	c.camera.SetYawClamp(c.body.Yaw(), true)
	c.camera.SetFieldOfView(c.cfg.Camera.ClimbFOV)
	c.anim.SetBool(AnimIsClimbing, true)
}

func (c *Controller) cancelClimb() {
	if c.stance != StanceClimb {
		return
	}
	c.setStance(StanceStand)
	c.body.UseGravity = true
	c.body.Position = c.body.Position.Sub(c.body.Forward())
	c.speed = c.cfg.Motion.WalkSpeed

	c.camera.SetYawClamp(c.body.Yaw(), false)
	c.camera.SetFieldOfView(c.cfg.Camera.DefaultFOV)
	c.anim.SetBool(AnimIsClimbing, false)
}

func (c *Controller) startGlide() {
	if c.readings.Grounded || (c.stance != StanceStand && c.stance != StanceCrouch) {
		c.reject("glide")
		return
	}
	if c.stance == StanceCrouch {
		c.anim.SetBool(AnimIsCrouch, false)
	}
	c.setStance(StanceGlide)
	c.anim.SetBool(AnimIsGliding, true)
	c.camera.SetYawClamp(c.body.Yaw(), true)
}

func (c *Controller) cancelGlide() {
	if c.stance != StanceGlide {
		return
	}
	c.setStance(StanceStand)
	c.speed = mgl64.Clamp(c.speed, c.cfg.Motion.WalkSpeed, c.cfg.Motion.SprintSpeed)
	c.body.SetYaw(c.body.Yaw())
	c.anim.SetBool(AnimIsGliding, false)
	c.camera.SetYawClamp(c.body.Yaw(), false)
}

func (c *Controller) changePerspective() {
	p := c.camera.Toggle()
	c.anim.SetTrigger(AnimChangePerspective)
	c.log.Debug().Stringer("perspective", p).Msg("perspective changed")
}
