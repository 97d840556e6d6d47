package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/traverse/ecs/entity"
	"github.com/milk9111/traverse/ecs/system"
	"github.com/milk9111/traverse/player"
	"github.com/milk9111/traverse/prefabs"
)

const (
	nearPlane = 0.05
	farPlane  = 300
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// projector maps world points to screen pixels for the rig's current pose.
type projector struct {
	view, proj    mgl64.Mat4
	width, height float64
}

func newProjector(eye, forward mgl64.Vec3, fovDeg float64, width, height int) projector {
	if forward.Len() < 1e-9 {
		forward = mgl64.Vec3{0, 0, 1}
	}
	if fovDeg <= 0 {
		fovDeg = 70
	}
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(forward.Normalize().Dot(up)) > 0.999 {
		up = mgl64.Vec3{0, 0, 1}
	}
	return projector{
		view:   mgl64.LookAtV(eye, eye.Add(forward), up),
		proj:   mgl64.Perspective(mgl64.DegToRad(fovDeg), float64(width)/float64(height), nearPlane, farPlane),
		width:  float64(width),
		height: float64(height),
	}
}

// segment projects a world-space line, clipped against the near plane.
func (p projector) segment(a, b mgl64.Vec3) (x0, y0, x1, y1 float32, ok bool) {
	va := p.view.Mul4x1(a.Vec4(1))
	vb := p.view.Mul4x1(b.Vec4(1))

	// the camera looks down -z in view space
	ina, inb := va.Z() < -nearPlane, vb.Z() < -nearPlane
	switch {
	case !ina && !inb:
		return 0, 0, 0, 0, false
	case !ina:
		va = clipNear(vb, va)
	case !inb:
		vb = clipNear(va, vb)
	}

	ax, ay := p.screen(va)
	bx, by := p.screen(vb)
	return ax, ay, bx, by, true
}

// clipNear moves out along in->out until it sits on the near plane.
func clipNear(in, out mgl64.Vec4) mgl64.Vec4 {
	t := (-nearPlane - in.Z()) / (out.Z() - in.Z())
	return in.Add(out.Sub(in).Mul(t))
}

func (p projector) screen(v mgl64.Vec4) (float32, float32) {
	c := p.proj.Mul4x1(v)
	nx, ny := c.X()/c.W(), c.Y()/c.W()
	return float32((nx + 1) / 2 * p.width), float32((1 - ny) / 2 * p.height)
}

func (p projector) line(dst *ebiten.Image, a, b mgl64.Vec3, width float32, clr color.Color) {
	x0, y0, x1, y1, ok := p.segment(a, b)
	if !ok {
		return
	}
	vector.StrokeLine(dst, x0, y0, x1, y1, width, clr, true)
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (p projector) box(dst *ebiten.Image, b player.Bounds, width float32, clr color.Color) {
	var corners [8]mgl64.Vec3
	for i := range corners {
		corners[i] = mgl64.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			corners[i][0] = b.Max.X()
		}
		if i&2 != 0 {
			corners[i][2] = b.Max.Z()
		}
		if i&4 != 0 {
			corners[i][1] = b.Max.Y()
		}
	}
	for _, e := range boxEdges {
		p.line(dst, corners[e[0]], corners[e[1]], width, clr)
	}
}

// layerColor picks a wireframe colour by the collider's most specific layer.
func layerColor(layer player.LayerMask, enabled bool) color.Color {
	hit, _ := prefabs.ParseLayer("hit")
	climbable, _ := prefabs.ParseLayer("climbable")
	switch {
	case layer&climbable != 0 && enabled:
		return colornames.Limegreen
	case layer&climbable != 0:
		return colornames.Darkolivegreen
	case layer&hit != 0:
		return colornames.Orange
	default:
		return colornames.Lightgrey
	}
}

// drawScene renders the level, the player capsule and its overhead probe.
func drawScene(dst *ebiten.Image, s *entity.Scene) {
	rig := s.Rig()
	c := s.Controller()
	if rig == nil || c == nil {
		return
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	p := newProjector(rig.Eye, rig.Forward, rig.FOV, w, h)

	for _, col := range s.Physics.Colliders() {
		p.box(dst, col.Bounds, 1, layerColor(col.Layer, s.Physics.Enabled(col.ID)))
	}

	body := c.Body()
	if c.Perspective() == player.ThirdPerson {
		p.box(dst, system.BodyBounds(body), 2, colornames.Deepskyblue)
		p.line(dst, body.Position, body.Position.Add(body.Forward()), 2, colornames.Yellow)
	}

	// overhead probe: green when there is room to stand
	det := c.Config().Detectors
	from := body.LocalPoint(det.Above)
	to := from.Add(body.Up().Mul(c.Config().Motion.AboveCheckDistance))
	probe := colornames.Red
	if c.Readings().OverheadFree {
		probe = colornames.Lime
	}
	p.line(dst, from, to, 3, probe)

	if c.Combat().IsPunching() {
		hit := body.LocalPoint(det.Hit)
		r := det.HitRadius
		p.line(dst, hit.Sub(mgl64.Vec3{r, 0, 0}), hit.Add(mgl64.Vec3{r, 0, 0}), 2, colornames.Magenta)
		p.line(dst, hit.Sub(mgl64.Vec3{0, r, 0}), hit.Add(mgl64.Vec3{0, r, 0}), 2, colornames.Magenta)
		p.line(dst, hit.Sub(mgl64.Vec3{0, 0, r}), hit.Add(mgl64.Vec3{0, 0, r}), 2, colornames.Magenta)
	}
}

func drawHUD(dst *ebiten.Image, s *entity.Scene, paused bool) {
	c := s.Controller()
	if c == nil {
		return
	}
	pos := c.Body().Position
	lines := fmt.Sprintf(
		"FPS %.0f  level %s\nstance %s  speed %.0f  grounded %v\ncombo %d  view %s  fov %.0f\npos %.2f %.2f %.2f",
		ebiten.ActualFPS(), s.Level.Name,
		c.Stance(), c.Speed(), c.Grounded(),
		c.Combat().Combo(), c.Perspective(), c.Camera().FieldOfView(),
		pos.X(), pos.Y(), pos.Z(),
	)
	if paused {
		lines += "\npaused"
	} else {
		lines += "\nWASD move  shift sprint  space jump/glide  E climb  C crouch  LMB punch  V view  esc pause"
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(dst, lines, hudFace, op)
}
