/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/sim"
	"github.com/pkg/errors"
)

// PacingTimerState is the state of a pacing timer.
type PacingTimerState int

const (
	// PacingIdle indicates the timer has not been started.
	PacingIdle PacingTimerState = iota
	// PacingArmed indicates the timer is waiting for its next fire.
	PacingArmed
	// PacingDraining indicates the timer is running its fire body.
	PacingDraining
	// PacingCancelled indicates the timer has been cancelled. It is terminal.
	PacingCancelled
)

func (s PacingTimerState) String() string {
	switch s {
	case PacingIdle:
		return "idle"
	case PacingArmed:
		return "armed"
	case PacingDraining:
		return "draining"
	case PacingCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PacingInterval returns the time needed to send a packet of the reference size at the bit rate.
func PacingInterval(packetSize uint64, bitRate uint64) (time.Duration, error) {
	if bitRate == 0 {
		return 0, core.ErrInvalidBitRate
	}
	if packetSize == 0 {
		return 0, core.ErrInvalidPacketSize
	}
	bits := packetSize * 8
	if bits > uint64(1<<63-1)/uint64(time.Second) {
		return 0, errors.Wrapf(core.ErrInvalidPacketSize, "%d bytes", packetSize)
	}
	interval := time.Duration(bits * uint64(time.Second) / bitRate)
	if interval <= 0 {
		return 0, errors.Wrapf(core.ErrInvalidBitRate, "%d bps is too fast for %d byte packets", bitRate, packetSize)
	}
	return interval, nil
}

// PacingTimer fires at a fixed interval on the scheduler until cancelled. Each fire runs the drain function once,
// then re-arms whatever the drain did.
type PacingTimer struct {
	scheduler *sim.Scheduler
	interval  time.Duration
	drain     func()
	token     *sim.Token
	event     *sim.Event
	state     PacingTimerState
	nFires    uint64
}

func newPacingTimer(scheduler *sim.Scheduler, interval time.Duration, drain func()) *PacingTimer {
	p := new(PacingTimer)
	p.scheduler = scheduler
	p.interval = interval
	p.drain = drain
	p.token = sim.NewToken()
	p.state = PacingIdle
	return p
}

// Interval returns the time between fires.
func (p *PacingTimer) Interval() time.Duration {
	return p.interval
}

// State returns the state of the timer.
func (p *PacingTimer) State() PacingTimerState {
	return p.state
}

// NFires returns the number of times the drain function has run.
func (p *PacingTimer) NFires() uint64 {
	return p.nFires
}

// Start arms the timer for its first fire one interval from now.
func (p *PacingTimer) Start() {
	if p.state != PacingIdle {
		return
	}
	p.arm()
}

func (p *PacingTimer) arm() {
	p.state = PacingArmed
	token := p.token
	p.event = p.scheduler.Schedule(p.interval, func() {
		if !token.Alive() {
			return
		}
		p.fire()
	})
}

func (p *PacingTimer) fire() {
	p.state = PacingDraining
	p.nFires++
	p.drain()
	if p.token.Alive() {
		p.arm()
	}
}

// Cancel stops the timer for good. The liveness token is revoked first so that a fire already dequeued by the
// scheduler does nothing. Returns false if the timer was already cancelled.
func (p *PacingTimer) Cancel() bool {
	if !p.token.Revoke() {
		return false
	}
	p.event.Cancel()
	p.state = PacingCancelled
	return true
}
