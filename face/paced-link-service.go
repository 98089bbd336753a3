/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/dispatch"
	"github.com/named-data/inrpp/sim"
	"github.com/pkg/errors"
)

// PacedLinkServiceOptions contains the settings for a PacedLinkService.
type PacedLinkServiceOptions struct {
	// ReferencePacketSize is the packet size in bytes the pacing interval is derived from.
	ReferencePacketSize uint64
}

// MakePacedLinkServiceOptions returns the configured default options.
func MakePacedLinkServiceOptions() PacedLinkServiceOptions {
	var o PacedLinkServiceOptions
	o.ReferencePacketSize = referencePacketSize
	return o
}

// PacedLinkService is a link service whose outgoing Data is held in the forwarder's backlog and drained by a
// pacing timer, one packet per interval, at the bit rate of the link.
type PacedLinkService struct {
	linkServiceBase
	options PacedLinkServiceOptions
	pacer   dispatch.Pacer
	bitRate uint64
	timer   *PacingTimer
}

// MakePacedLinkService creates a new paced link service over the transport. The pacing interval is derived once,
// here, and never changes.
func MakePacedLinkService(transport Transport, options PacedLinkServiceOptions, pacer dispatch.Pacer,
	bitRate uint64, scheduler *sim.Scheduler) (*PacedLinkService, error) {
	interval, err := PacingInterval(options.ReferencePacketSize, bitRate)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create paced link service")
	}

	l := new(PacedLinkService)
	l.makeLinkServiceBase(transport)
	l.options = options
	l.pacer = pacer
	l.bitRate = bitRate
	l.timer = newPacingTimer(scheduler, interval, l.drain)
	transport.setLinkService(l)
	return l, nil
}

func (l *PacedLinkService) String() string {
	if l.transport != nil {
		return "PacedLinkService, " + l.transport.String()
	}

	return "PacedLinkService, FaceID=" + strconv.FormatUint(l.faceID, 10)
}

// Options gets the settings of the PacedLinkService.
func (l *PacedLinkService) Options() PacedLinkServiceOptions {
	return l.options
}

// BitRate returns the pacing rate of the face in bits per second.
func (l *PacedLinkService) BitRate() uint64 {
	return l.bitRate
}

// Interval returns the pacing interval of the face.
func (l *PacedLinkService) Interval() time.Duration {
	return l.timer.Interval()
}

// Timer returns the pacing timer of the face.
func (l *PacedLinkService) Timer() *PacingTimer {
	return l.timer
}

// Run starts the pacing timer.
func (l *PacedLinkService) Run() {
	core.LogDebug(l, "Pacing at ", l.bitRate, " bps, interval=", l.timer.Interval())
	l.timer.Start()
}

// Close cancels the pacing timer and stops the transport.
func (l *PacedLinkService) Close() {
	l.timer.Cancel()
	l.linkServiceBase.Close()
}

func (l *PacedLinkService) drain() {
	l.pacer.DrainRequest(l.faceID, l.bitRate)
}
