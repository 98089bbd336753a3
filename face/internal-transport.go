/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"

	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
)

// InternalTransport is a transport connecting an application running inside the simulator to the forwarder.
// Packets from the forwarder reach the application in a separate event, never inside a forwarding pipeline.
type InternalTransport struct {
	transportBase
	scheduler  *sim.Scheduler
	onInterest func(interest *ndn.Interest)
	onData     func(data *ndn.Data)
}

// MakeInternalTransport makes an InternalTransport for the named application.
func MakeInternalTransport(scheduler *sim.Scheduler, app string) *InternalTransport {
	t := new(InternalTransport)
	t.makeTransportBase("app://"+app, "internal://", defn.Local)
	t.scheduler = scheduler
	return t
}

// RegisterInternalTransport creates an InternalTransport behind an unpaced link service and adds it to the table.
func RegisterInternalTransport(table *Table, scheduler *sim.Scheduler, app string) (LinkService, *InternalTransport) {
	t := MakeInternalTransport(scheduler, app)
	l := MakeDirectLinkService(t)
	table.Add(l)
	l.Run()
	return l, t
}

func (t *InternalTransport) String() string {
	return "InternalTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) +
		", RemoteURI=" + t.remoteURI + ", LocalURI=" + t.localURI
}

// SetReceiver sets the callbacks through which the application receives packets from the forwarder.
func (t *InternalTransport) SetReceiver(onInterest func(interest *ndn.Interest), onData func(data *ndn.Data)) {
	t.onInterest = onInterest
	t.onData = onData
}

// ExpressInterest sends an Interest from the application to the forwarder.
func (t *InternalTransport) ExpressInterest(interest *ndn.Interest) {
	t.deliverInterest(interest.WithoutTags())
}

// PutData sends a Data packet from the application to the forwarder.
func (t *InternalTransport) PutData(data *ndn.Data) {
	t.deliverData(data.WithoutTags())
}

func (t *InternalTransport) sendInterest(interest *ndn.Interest) {
	if t.onInterest == nil {
		return
	}
	out := interest.WithoutTags()
	t.scheduler.Schedule(0, func() {
		if t.state == defn.Up {
			t.onInterest(out)
		}
	})
}

func (t *InternalTransport) sendData(data *ndn.Data) {
	t.nOutBytes += uint64(data.Size())
	if t.onData == nil {
		return
	}
	out := data.WithoutTags()
	t.scheduler.Schedule(0, func() {
		if t.state == defn.Up {
			t.onData(out)
		}
	})
}
