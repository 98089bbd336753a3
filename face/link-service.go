/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/dispatch"
	"github.com/named-data/inrpp/ndn"
)

// LinkService is an interface for link service implementations
type LinkService interface {
	dispatch.Face
	Transport() Transport
	LocalURI() string
	RemoteURI() string
	State() defn.State

	// Run starts the face once it has been added to a table.
	Run()
	// Close stops the face. It is called by the face table on removal.
	Close()

	setForwarder(fw dispatch.FWThread)
	// Synchronously hand an incoming packet to the forwarder
	handleIncomingInterest(interest *ndn.Interest)
	handleIncomingData(data *ndn.Data)

	// Counters
	NInInterests() uint64
	NInData() uint64
	NInBytes() uint64
	NOutInterests() uint64
	NOutData() uint64
	NOutBytes() uint64
}

// linkServiceBase is the type upon which all link service implementations should be built
type linkServiceBase struct {
	faceID     uint64
	transport  Transport
	fw         dispatch.FWThread
	congestion defn.CongestionState

	// Counters
	nInInterests  uint64
	nInData       uint64
	nOutInterests uint64
	nOutData      uint64
}

func (l *linkServiceBase) String() string {
	if l.transport != nil {
		return "LinkService, " + l.transport.String()
	}

	return "LinkService, FaceID=" + strconv.FormatUint(l.faceID, 10)
}

// SetFaceID sets the ID of the face.
func (l *linkServiceBase) SetFaceID(faceID uint64) {
	l.faceID = faceID
	if l.transport != nil {
		l.transport.setFaceID(faceID)
	}
}

func (l *linkServiceBase) makeLinkServiceBase(transport Transport) {
	l.transport = transport
	l.congestion = defn.Open
}

func (l *linkServiceBase) setForwarder(fw dispatch.FWThread) {
	l.fw = fw
}

//
// Getters
//

// Transport returns the transport for the face.
func (l *linkServiceBase) Transport() Transport {
	return l.transport
}

// FaceID returns the ID of the face
func (l *linkServiceBase) FaceID() uint64 {
	return l.faceID
}

// LocalURI returns the local URI of the underlying transport
func (l *linkServiceBase) LocalURI() string {
	return l.transport.LocalURI()
}

// RemoteURI returns the remote URI of the underlying transport
func (l *linkServiceBase) RemoteURI() string {
	return l.transport.RemoteURI()
}

// Scope returns the scope of the underlying transport.
func (l *linkServiceBase) Scope() defn.Scope {
	return l.transport.Scope()
}

// State returns the state of the underlying transport.
func (l *linkServiceBase) State() defn.State {
	return l.transport.State()
}

// CongestionState returns the congestion state last signaled by the forwarder.
func (l *linkServiceBase) CongestionState() defn.CongestionState {
	return l.congestion
}

// SetCongestionState records the congestion state signaled by the forwarder.
func (l *linkServiceBase) SetCongestionState(state defn.CongestionState) {
	if l.congestion != state {
		core.LogInfo(l, "Congestion state ", l.congestion, " -> ", state)
	}
	l.congestion = state
}

//
// Counters
//

// NInInterests returns the number of Interests received on this face.
func (l *linkServiceBase) NInInterests() uint64 {
	return l.nInInterests
}

// NInData returns the number of Data packets received on this face.
func (l *linkServiceBase) NInData() uint64 {
	return l.nInData
}

// NInBytes returns the number of content bytes received on this face.
func (l *linkServiceBase) NInBytes() uint64 {
	return l.transport.NInBytes()
}

// NOutInterests returns the number of Interests sent on this face.
func (l *linkServiceBase) NOutInterests() uint64 {
	return l.nOutInterests
}

// NOutData returns the number of Data packets sent on this face.
func (l *linkServiceBase) NOutData() uint64 {
	return l.nOutData
}

// NOutBytes returns the number of content bytes sent on this face.
func (l *linkServiceBase) NOutBytes() uint64 {
	return l.transport.NOutBytes()
}

// Close the underlying transport
func (l *linkServiceBase) Close() {
	l.transport.Close()
}

//
// Forwarding pipeline
//

// SendInterest transmits an Interest on the face.
func (l *linkServiceBase) SendInterest(interest *ndn.Interest) {
	if l.State() != defn.Up {
		core.LogWarn(l, "Cannot send Interest on down face - DROP")
		return
	}
	l.nOutInterests++
	l.transport.sendInterest(interest)
}

// SendData transmits a Data packet on the face.
func (l *linkServiceBase) SendData(data *ndn.Data) {
	if l.State() != defn.Up {
		core.LogWarn(l, "Cannot send Data on down face - DROP")
		return
	}
	l.nOutData++
	l.transport.sendData(data)
}

func (l *linkServiceBase) handleIncomingInterest(interest *ndn.Interest) {
	l.nInInterests++
	if l.fw == nil {
		core.LogWarn(l, "Received Interest on face without forwarder - DROP")
		return
	}
	core.LogTrace(l, "Dispatched Interest ", interest.Name())
	l.fw.OnIncomingInterest(interest, l.faceID)
}

func (l *linkServiceBase) handleIncomingData(data *ndn.Data) {
	l.nInData++
	if l.fw == nil {
		core.LogWarn(l, "Received Data on face without forwarder - DROP")
		return
	}
	core.LogTrace(l, "Dispatched Data ", data.Name())
	l.fw.OnIncomingData(data, l.faceID)
}
