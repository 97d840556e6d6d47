package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

const scriptDispatch = `
update(__input, __state)
`

type scriptRuntime struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	time     float64
	done     bool
}

// ScriptInputSystem drives players from tengo scripts. Each frame the
// script's update(input, state) runs once; the input functions it calls are
// queued on the player's InputQueue.
type ScriptInputSystem struct {
	runtimes map[ecs.Entity]*scriptRuntime
	log      zerolog.Logger
}

func NewScriptInputSystem(log zerolog.Logger) *ScriptInputSystem {
	return &ScriptInputSystem{runtimes: map[ecs.Entity]*scriptRuntime{}, log: log}
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.ScriptComponent.Kind(), component.InputQueueComponent.Kind(), component.PlayerComponent.Kind(), func(e ecs.Entity, sc *component.Script, q *component.InputQueue, p *component.Player) {
		if sc.Done || p.Controller == nil {
			return
		}

		rt, err := s.runtime(e, sc)
		if err != nil {
			s.log.Error().Err(err).Stringer("entity", e).Str("script", sc.Name).Msg("script compile failed")
			sc.Done = true
			return
		}

		input := buildScriptInput(w, e, q, rt)
		state := buildScriptState(p.Controller, rt)
		if err := rt.run(input, state); err != nil {
			s.log.Error().Err(err).Stringer("entity", e).Str("script", sc.Name).Msg("script update failed")
			sc.Done = true
			return
		}
		rt.time += w.Delta()

		if rt.done {
			sc.Done = true
			s.log.Info().Stringer("entity", e).Str("script", sc.Name).Float64("time", rt.time).Msg("script finished")
		}
	})
}

func (s *ScriptInputSystem) runtime(e ecs.Entity, sc *component.Script) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.name == sc.Name {
		return rt, nil
	}
	rt, err := compileInputScript(sc.Name, sc.Source)
	if err != nil {
		return nil, err
	}
	s.runtimes[e] = rt
	return rt, nil
}

func compileInputScript(name string, source []byte) (*scriptRuntime, error) {
	if len(strings.TrimSpace(string(source))) == 0 {
		return nil, fmt.Errorf("script %q is empty", name)
	}

	script := tengo.NewScript([]byte(string(source) + "\n" + scriptDispatch))
	_ = script.Add("__input", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", name, err)
	}
	return &scriptRuntime{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *scriptRuntime) run(input, state *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__input", input); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildScriptInput(w *ecs.World, e ecs.Entity, q *component.InputQueue, rt *scriptRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, xok := tengo.ToFloat64(args[0])
		y, yok := tengo.ToFloat64(args[1])
		if !xok || !yok {
			return tengo.FalseValue, nil
		}
		q.Push(player.Move(x, y))
		return tengo.TrueValue, nil
	}}

	values["sprint"] = &tengo.UserFunction{Name: "sprint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		held := len(args) == 0 || !args[0].IsFalsy()
		q.Push(player.Sprint(held))
		return tengo.TrueValue, nil
	}}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		kind, ok := player.ParseInputKind(strings.TrimSpace(objectAsString(args[0])))
		if !ok || kind == player.InputMove || kind == player.InputSprint {
			return tengo.FalseValue, nil
		}
		q.Push(player.Press(kind))
		return tengo.TrueValue, nil
	}}

	values["look"] = &tengo.UserFunction{Name: "look", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		dYaw, yok := tengo.ToFloat64(args[0])
		dPitch, pok := tengo.ToFloat64(args[1])
		if !yok || !pok {
			return tengo.FalseValue, nil
		}
		turned := false
		ecs.ForEach(w, component.CameraRigComponent.Kind(), func(_ ecs.Entity, rig *component.CameraRig) {
			if rig.Target == uint64(e) {
				rig.Look(dYaw, dPitch)
				turned = true
			}
		})
		return tengo.FromInterface(turned)
	}}

	values["done"] = &tengo.UserFunction{Name: "done", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.done = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// buildScriptState snapshots the controller for the script. memory is the
// only value that survives between frames.
func buildScriptState(c *player.Controller, rt *scriptRuntime) *tengo.ImmutableMap {
	b := c.Body()
	boolValue := func(v bool) tengo.Object {
		if v {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"time":        &tengo.Float{Value: rt.time},
		"memory":      rt.memory,
		"grounded":    boolValue(c.Grounded()),
		"stance":      &tengo.String{Value: c.Stance().String()},
		"speed":       &tengo.Float{Value: c.Speed()},
		"combo":       &tengo.Int{Value: int64(c.Combat().Combo())},
		"punching":    boolValue(c.Combat().IsPunching()),
		"perspective": &tengo.String{Value: c.Perspective().String()},
		"yaw":         &tengo.Float{Value: b.Yaw()},
		"position": &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: b.Position.X()},
			&tengo.Float{Value: b.Position.Y()},
			&tengo.Float{Value: b.Position.Z()},
		}},
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
