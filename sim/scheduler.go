/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package sim provides the single-threaded discrete-event loop that drives the forwarder in virtual time.
package sim

import (
	"time"

	"github.com/named-data/inrpp/utils/priority_queue"
)

// Epoch is the virtual time at which every scheduler starts.
var Epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Event is a callback scheduled to run at a virtual time.
type Event struct {
	at        time.Time
	fn        func()
	cancelled bool
	fired     bool
	scheduler *Scheduler
}

// At returns the virtual time at which the event runs.
func (e *Event) At() time.Time {
	return e.at
}

// Cancel prevents the event from running. Returns false if the event already ran or was already cancelled.
func (e *Event) Cancel() bool {
	if e == nil || e.cancelled || e.fired {
		return false
	}
	e.cancelled = true
	e.scheduler.pending--
	return true
}

// Scheduler is a discrete-event loop over a virtual clock. Events run to completion one at a time, in order of
// their virtual time; events scheduled for the same instant run in the order they were scheduled.
//
// A Scheduler is not safe for concurrent use: every callback runs on the goroutine calling Run, RunUntil, or Step.
type Scheduler struct {
	now     time.Time
	queue   priority_queue.Queue[*Event, int64]
	pending int
}

// NewScheduler creates a scheduler whose clock reads Epoch.
func NewScheduler() *Scheduler {
	s := new(Scheduler)
	s.now = Epoch
	s.queue = priority_queue.New[*Event, int64]()
	return s
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// Elapsed returns the virtual time elapsed since Epoch.
func (s *Scheduler) Elapsed() time.Duration {
	return s.now.Sub(Epoch)
}

// Pending returns the number of events that are scheduled and not cancelled.
func (s *Scheduler) Pending() int {
	return s.pending
}

// Schedule runs fn after the specified delay. Negative delays are treated as zero.
func (s *Scheduler) Schedule(after time.Duration, fn func()) *Event {
	if after < 0 {
		after = 0
	}
	return s.ScheduleAt(s.now.Add(after), fn)
}

// ScheduleAt runs fn at the specified virtual time, or now if that time has passed.
func (s *Scheduler) ScheduleAt(at time.Time, fn func()) *Event {
	if at.Before(s.now) {
		at = s.now
	}
	e := &Event{at: at, fn: fn, scheduler: s}
	s.queue.Push(e, at.UnixNano())
	s.pending++
	return e
}

// Step runs the next pending event, advancing the clock to its time. Returns false if no event is pending.
func (s *Scheduler) Step() bool {
	for s.queue.Len() > 0 {
		e := s.queue.Pop()
		if e.cancelled {
			continue
		}
		s.now = e.at
		e.fired = true
		s.pending--
		e.fn()
		return true
	}
	return false
}

// Run runs events until none remain.
func (s *Scheduler) Run() {
	for s.Step() {
	}
}

// RunUntil runs every event scheduled at or before the deadline, then sets the clock to the deadline.
func (s *Scheduler) RunUntil(deadline time.Time) {
	for s.queue.Len() > 0 {
		next := s.queue.Peek()
		if next.cancelled {
			s.queue.Pop()
			continue
		}
		if next.at.After(deadline) {
			break
		}
		s.Step()
	}
	if deadline.After(s.now) {
		s.now = deadline
	}
}

// RunFor runs events for the specified span of virtual time.
func (s *Scheduler) RunFor(d time.Duration) {
	s.RunUntil(s.now.Add(d))
}
