// Package clock provides simulated-time timers fired synchronously from the
// simulation tick.
package clock

import (
	"container/heap"
	"log"
	"time"

	"github.com/milk9111/ketchup/ecs"
)

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

// Callback runs on the tick goroutine. It receives the world and the owner
// it was scheduled for explicitly; owner is zero for round-scoped timers.
type Callback func(w *ecs.World, owner ecs.Entity)

type timer struct {
	handle   Handle
	owner    ecs.Entity
	due      time.Duration
	interval time.Duration
	seq      uint64
	cb       Callback
	index    int
}

// Scheduler is a fixed-delay timer queue over simulated time. It is owned by
// exactly one round and discarded on teardown.
type Scheduler struct {
	now     time.Duration
	nextID  Handle
	nextSeq uint64
	queue   timerQueue
	byID    map[Handle]*timer
	debug   bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[Handle]*timer)}
}

// SetDebug enables logging of dropped timers.
func (s *Scheduler) SetDebug(debug bool) {
	s.debug = debug
}

// Now returns the simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.byID)
}

// ScheduleRepeating fires cb every interval until cancelled, first after one
// full interval.
func (s *Scheduler) ScheduleRepeating(interval time.Duration, owner ecs.Entity, cb Callback) Handle {
	if interval <= 0 || cb == nil {
		return 0
	}
	return s.add(interval, interval, owner, cb)
}

// ScheduleOnce fires cb once after delay.
func (s *Scheduler) ScheduleOnce(delay time.Duration, owner ecs.Entity, cb Callback) Handle {
	if cb == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, 0, owner, cb)
}

func (s *Scheduler) add(delay, interval time.Duration, owner ecs.Entity, cb Callback) Handle {
	s.nextID++
	s.nextSeq++
	t := &timer{
		handle:   s.nextID,
		owner:    owner,
		due:      s.now + delay,
		interval: interval,
		seq:      s.nextSeq,
		cb:       cb,
	}
	heap.Push(&s.queue, t)
	s.byID[t.handle] = t
	return t.handle
}

// Cancel removes a pending timer. Cancelling an unknown or already fired
// handle reports false.
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.byID[h]
	if !ok {
		return false
	}
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	delete(s.byID, h)
	return true
}

// CancelOwner removes every timer owned by e and returns how many were
// pending.
func (s *Scheduler) CancelOwner(e ecs.Entity) int {
	if !e.Valid() {
		return 0
	}
	n := 0
	for h, t := range s.byID {
		if t.owner == e && s.Cancel(h) {
			n++
		}
	}
	return n
}

// CancelAll drops every pending timer.
func (s *Scheduler) CancelAll() int {
	n := len(s.byID)
	s.queue = nil
	s.byID = make(map[Handle]*timer)
	return n
}

// Advance moves simulated time forward by dt and fires every timer due at
// or before the new time, ordered by due time then scheduling order. A
// repeating timer fires at most once per Advance and is re-armed one interval
// after the time it fired. Timers added by callbacks wait for a later
// Advance.
func (s *Scheduler) Advance(w *ecs.World, dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	limit := s.nextSeq

	var rearm []*timer
	for s.queue.Len() > 0 && s.queue[0].due <= s.now {
		t := heap.Pop(&s.queue).(*timer)
		if t.seq > limit {
			rearm = append(rearm, t)
			continue
		}
		if t.owner.Valid() && !ecs.IsAlive(w, t.owner) {
			delete(s.byID, t.handle)
			if s.debug {
				log.Printf("clock: dropping timer %d for dead owner %s", t.handle, t.owner)
			}
			continue
		}
		if t.interval > 0 {
			t.due = s.now + t.interval
			s.nextSeq++
			t.seq = s.nextSeq
			rearm = append(rearm, t)
		} else {
			delete(s.byID, t.handle)
		}
		t.cb(w, t.owner)
	}

	for _, t := range rearm {
		if _, ok := s.byID[t.handle]; !ok {
			continue
		}
		heap.Push(&s.queue, t)
	}
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
