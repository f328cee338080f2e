package ecs

import "time"

// System advances one concern of the world by dt.
type System interface {
	Update(w *World, dt time.Duration)
}

// Scheduler runs systems in registration order. The order is the tick
// contract: timers, input, AI, physics, collisions, termination, sinks.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World, dt time.Duration) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
