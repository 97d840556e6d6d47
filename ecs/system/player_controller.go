package system

import (
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
)

// PlayerControllerSystem runs one controller tick per frame.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, p *component.Player) {
		if p.Controller == nil {
			return
		}
		p.Controller.Tick(dt)
	})
}
