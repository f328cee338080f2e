package ecs

import "github.com/milk9111/ketchup/ecs/component"

// Add attaches (or replaces) the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Remove detaches the component of the given kind. It reports whether a
// component was present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Remove(e)
}

// Has reports whether e carries the component kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Has(e)
}

// Get returns the component of the given kind on e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Count returns how many entities carry the component kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return w.store(kind.ID(), false).Len()
}

// First returns an arbitrary entity carrying the component kind. It is meant
// for singletons such as the player or the round state.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := w.store(kind.ID(), false)
	if s.Len() == 0 {
		return 0, false
	}
	return s.denseEntities[0], true
}

// ForEach calls fn for every entity carrying the component kind. The entity
// list is snapshotted first, so fn may add, remove or destroy freely;
// entities removed mid-iteration are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	for _, e := range s.Entities() {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 iterates entities carrying both component kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	for _, e := range IntersectEntities(sa, sb) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 iterates entities carrying all three component kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	sc := w.store(kc.ID(), false)
	for _, e := range IntersectEntities(sa, sb, sc) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
