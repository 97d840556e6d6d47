package ecs

import (
	"fmt"

	"github.com/milk9111/traverse/ecs/component"
)

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}

// Add attaches value to e, replacing any component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return ErrNilComponent
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
	}
	storeFor(w, kind, true).set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// First returns the first live entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, false
	}
	for _, id := range s.ids() {
		if e, ok := w.entities.entity(id); ok {
			return e, true
		}
	}
	return 0, false
}

// snapshot copies the id list so callbacks may add, remove or destroy while
// iterating.
func snapshot(s store) []entityID {
	ids := s.ids()
	out := make([]entityID, len(ids))
	copy(out, ids)
	return out
}

// ForEach calls fn for every entity holding a.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka, false)
	if sa == nil {
		return
	}
	for _, id := range snapshot(sa) {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		if a, ok := sa.get(id); ok {
			fn(e, a)
		}
	}
}

// ForEach2 calls fn for every entity holding both a and b.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka, false), storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	var driver store = sa
	if sb.len() < sa.len() {
		driver = sb
	}
	for _, id := range snapshot(driver) {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		a, aok := sa.get(id)
		b, bok := sb.get(id)
		if aok && bok {
			fn(e, a, b)
		}
	}
}

// ForEach3 calls fn for every entity holding a, b and c.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	var driver store = sa
	if sb.len() < driver.len() {
		driver = sb
	}
	if sc.len() < driver.len() {
		driver = sc
	}
	for _, id := range snapshot(driver) {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		a, aok := sa.get(id)
		b, bok := sb.get(id)
		c, cok := sc.get(id)
		if aok && bok && cok {
			fn(e, a, b, c)
		}
	}
}
