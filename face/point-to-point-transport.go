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

	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
)

// PointToPointTransport is one end of a simulated point-to-point link between two nodes. Packets reach the
// other end after the propagation delay. Serialization is modeled by the pacing of the link service above.
type PointToPointTransport struct {
	transportBase
	peer      *PointToPointTransport
	scheduler *sim.Scheduler
	delay     time.Duration
}

// MakePointToPointTransports makes both ends of a link between nodes a and b.
func MakePointToPointTransports(scheduler *sim.Scheduler, a string, b string, delay time.Duration) (*PointToPointTransport, *PointToPointTransport) {
	ta := new(PointToPointTransport)
	ta.makeTransportBase("sim://"+b, "sim://"+a, defn.NonLocal)
	ta.scheduler = scheduler
	ta.delay = delay

	tb := new(PointToPointTransport)
	tb.makeTransportBase("sim://"+a, "sim://"+b, defn.NonLocal)
	tb.scheduler = scheduler
	tb.delay = delay

	ta.peer = tb
	tb.peer = ta
	return ta, tb
}

func (t *PointToPointTransport) String() string {
	return "PointToPointTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) +
		", RemoteURI=" + t.remoteURI + ", LocalURI=" + t.localURI
}

// Delay returns the one-way propagation delay of the link.
func (t *PointToPointTransport) Delay() time.Duration {
	return t.delay
}

func (t *PointToPointTransport) sendInterest(interest *ndn.Interest) {
	if t.state != defn.Up {
		return
	}
	out := interest.WithoutTags()
	peer := t.peer
	t.scheduler.Schedule(t.delay, func() {
		peer.deliverInterest(out)
	})
}

func (t *PointToPointTransport) sendData(data *ndn.Data) {
	if t.state != defn.Up {
		return
	}
	t.nOutBytes += uint64(data.Size())
	out := data.WithoutTags()
	peer := t.peer
	t.scheduler.Schedule(t.delay, func() {
		peer.deliverData(out)
	})
}
