package system

import (
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
)

// InputSystem hands each player's queued input to its controller.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputQueueComponent.Kind(), func(_ ecs.Entity, p *component.Player, q *component.InputQueue) {
		if p.Controller == nil {
			q.Drain()
			return
		}
		for _, evt := range q.Drain() {
			p.Controller.Handle(evt)
		}
	})
}
