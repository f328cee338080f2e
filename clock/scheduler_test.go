package clock

import (
	"testing"
	"time"

	"github.com/milk9111/ketchup/ecs"
)

const ms = time.Millisecond

func advanceBy(s *Scheduler, w *ecs.World, total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		s.Advance(w, step)
	}
}

func TestScheduleRepeating(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		step     time.Duration
		total    time.Duration
		want     int
	}{
		{"aligned_steps", 800 * ms, 100 * ms, 4000 * ms, 5},
		{"first_fire_after_interval", 800 * ms, 100 * ms, 700 * ms, 0},
		{"fixed_delay_drifts_with_coarse_steps", 800 * ms, 300 * ms, 2400 * ms, 2},
		{"at_most_once_per_advance", 100 * ms, 1000 * ms, 3000 * ms, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			s := NewScheduler()
			fired := 0
			s.ScheduleRepeating(tc.interval, 0, func(*ecs.World, ecs.Entity) { fired++ })
			advanceBy(s, w, tc.total, tc.step)
			if fired != tc.want {
				t.Fatalf("fired %d times, want %d", fired, tc.want)
			}
		})
	}
}

func TestScheduleOnce(t *testing.T) {
	w := ecs.NewWorld()
	s := NewScheduler()
	var firedAt []time.Duration
	s.ScheduleOnce(500*ms, 0, func(*ecs.World, ecs.Entity) { firedAt = append(firedAt, s.Now()) })

	advanceBy(s, w, 2000*ms, 100*ms)
	if len(firedAt) != 1 || firedAt[0] != 500*ms {
		t.Fatalf("fired at %v, want exactly once at 500ms", firedAt)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no pending timers, got %d", s.Len())
	}
}

func TestFiringOrder(t *testing.T) {
	w := ecs.NewWorld()
	s := NewScheduler()
	var order []string
	record := func(name string) Callback {
		return func(*ecs.World, ecs.Entity) { order = append(order, name) }
	}
	s.ScheduleOnce(300*ms, 0, record("late"))
	s.ScheduleOnce(100*ms, 0, record("early_a"))
	s.ScheduleOnce(100*ms, 0, record("early_b"))
	s.ScheduleOnce(200*ms, 0, record("middle"))

	s.Advance(w, 500*ms)

	want := []string{"early_a", "early_b", "middle", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestCancel(t *testing.T) {
	t.Run("handle", func(t *testing.T) {
		w := ecs.NewWorld()
		s := NewScheduler()
		fired := false
		h := s.ScheduleOnce(100*ms, 0, func(*ecs.World, ecs.Entity) { fired = true })
		if !s.Cancel(h) {
			t.Fatalf("Cancel should report a pending timer")
		}
		if s.Cancel(h) {
			t.Fatalf("second Cancel should report false")
		}
		s.Advance(w, time.Second)
		if fired {
			t.Fatalf("cancelled timer fired")
		}
	})

	t.Run("owner", func(t *testing.T) {
		w := ecs.NewWorld()
		s := NewScheduler()
		a := ecs.CreateEntity(w)
		b := ecs.CreateEntity(w)
		var fired []ecs.Entity
		cb := func(_ *ecs.World, owner ecs.Entity) { fired = append(fired, owner) }
		s.ScheduleOnce(100*ms, a, cb)
		s.ScheduleRepeating(100*ms, a, cb)
		s.ScheduleOnce(100*ms, b, cb)

		if n := s.CancelOwner(a); n != 2 {
			t.Fatalf("CancelOwner cancelled %d, want 2", n)
		}
		s.Advance(w, 100*ms)
		if len(fired) != 1 || fired[0] != b {
			t.Fatalf("fired = %v, want only %v", fired, b)
		}
	})

	t.Run("all", func(t *testing.T) {
		w := ecs.NewWorld()
		s := NewScheduler()
		fired := 0
		s.ScheduleRepeating(100*ms, 0, func(*ecs.World, ecs.Entity) { fired++ })
		s.ScheduleOnce(100*ms, 0, func(*ecs.World, ecs.Entity) { fired++ })
		if n := s.CancelAll(); n != 2 {
			t.Fatalf("CancelAll = %d, want 2", n)
		}
		s.Advance(w, time.Second)
		if fired != 0 {
			t.Fatalf("fired %d after CancelAll", fired)
		}
	})

	t.Run("self_cancel_from_callback", func(t *testing.T) {
		w := ecs.NewWorld()
		s := NewScheduler()
		fired := 0
		var h Handle
		h = s.ScheduleRepeating(100*ms, 0, func(*ecs.World, ecs.Entity) {
			fired++
			s.Cancel(h)
		})
		advanceBy(s, w, time.Second, 100*ms)
		if fired != 1 {
			t.Fatalf("fired %d, want 1", fired)
		}
	})
}

func TestDeadOwnerIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	s := NewScheduler()
	s.SetDebug(true)
	e := ecs.CreateEntity(w)
	fired := 0
	s.ScheduleOnce(100*ms, e, func(*ecs.World, ecs.Entity) { fired++ })
	s.ScheduleRepeating(100*ms, e, func(*ecs.World, ecs.Entity) { fired++ })

	ecs.DestroyEntity(w, e)
	// The slot is reused by a new entity; the stale handle must still miss.
	ecs.CreateEntity(w)

	advanceBy(s, w, 500*ms, 100*ms)
	if fired != 0 {
		t.Fatalf("fired %d for a dead owner", fired)
	}
	if s.Len() != 0 {
		t.Fatalf("dead owner timers should be dropped, %d pending", s.Len())
	}
}

func TestCallbackScheduledTimersWait(t *testing.T) {
	w := ecs.NewWorld()
	s := NewScheduler()
	var nestedAt time.Duration
	s.ScheduleOnce(100*ms, 0, func(*ecs.World, ecs.Entity) {
		s.ScheduleOnce(0, 0, func(*ecs.World, ecs.Entity) { nestedAt = s.Now() })
	})

	s.Advance(w, 100*ms)
	if nestedAt != 0 {
		t.Fatalf("nested timer fired in the same Advance")
	}
	s.Advance(w, 16*ms)
	if nestedAt != 116*ms {
		t.Fatalf("nested timer fired at %v, want 116ms", nestedAt)
	}
}
