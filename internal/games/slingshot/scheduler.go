package slingshot

import (
	"sort"
	"time"
)

// Scheduler runs delayed callbacks on the game loop. Nothing runs on its
// own: the loop calls RunDue once per tick, so callbacks never race with
// the simulation.
type Scheduler struct {
	now    func() time.Time
	timers []*Timer
	seq    uint64
}

// Timer is a pending callback.
type Timer struct {
	at      time.Time
	seq     uint64
	fn      func()
	pending bool
}

// NewScheduler creates a scheduler reading time from now.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{now: now}
}

// After schedules fn to run on the first RunDue at least d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{at: s.now().Add(d), seq: s.seq, fn: fn, pending: true}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer. It returns false if the timer already ran or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || !t.pending {
		return false
	}
	t.pending = false
	return true
}

// Pending reports whether the timer has neither run nor been stopped.
func (t *Timer) Pending() bool {
	return t != nil && t.pending
}

// RunDue runs every pending timer whose deadline has passed, earliest first,
// and returns how many ran. Timers scheduled by a callback wait for the next call.
func (s *Scheduler) RunDue() int {
	now := s.now()

	var due []*Timer
	live := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case !t.pending:
		case !t.at.After(now):
			due = append(due, t)
		default:
			live = append(live, t)
		}
	}
	clear(s.timers[len(live):])
	s.timers = live

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})

	ran := 0
	for _, t := range due {
		// an earlier callback may have stopped it
		if !t.pending {
			continue
		}
		t.pending = false
		t.fn()
		ran++
	}
	return ran
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.timers {
		if t.pending {
			n++
		}
	}
	return n
}
