/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/ndn"
)

// Transport provides an interface for transports for specific face types
type Transport interface {
	String() string
	setFaceID(faceID uint64)
	setLinkService(linkService LinkService)

	RemoteURI() string
	LocalURI() string
	Scope() defn.Scope
	State() defn.State

	sendInterest(interest *ndn.Interest)
	sendData(data *ndn.Data)

	// Close stops the transport. Packets sent or in flight afterwards are dropped.
	Close()

	// Counters
	NInBytes() uint64
	NOutBytes() uint64
}

// transportBase provides logic common types between transport types
type transportBase struct {
	linkService LinkService

	faceID    uint64
	remoteURI string
	localURI  string
	scope     defn.Scope

	state defn.State

	// Counters of Data content bytes
	nInBytes  uint64
	nOutBytes uint64
}

func (t *transportBase) makeTransportBase(remoteURI string, localURI string, scope defn.Scope) {
	t.remoteURI = remoteURI
	t.localURI = localURI
	t.scope = scope
	t.state = defn.Up
}

func (t *transportBase) setFaceID(faceID uint64) {
	t.faceID = faceID
}

func (t *transportBase) setLinkService(linkService LinkService) {
	t.linkService = linkService
}

//
// Getters
//

// LocalURI returns the local URI of the transport.
func (t *transportBase) LocalURI() string {
	return t.localURI
}

// RemoteURI returns the remote URI of the transport.
func (t *transportBase) RemoteURI() string {
	return t.remoteURI
}

// Scope returns the scope of the transport.
func (t *transportBase) Scope() defn.Scope {
	return t.scope
}

// State returns the state of the transport.
func (t *transportBase) State() defn.State {
	return t.state
}

// Close stops the transport.
func (t *transportBase) Close() {
	t.state = defn.Down
}

//
// Counters
//

// NInBytes returns the number of content bytes received on this transport.
func (t *transportBase) NInBytes() uint64 {
	return t.nInBytes
}

// NOutBytes returns the number of content bytes sent on this transport.
func (t *transportBase) NOutBytes() uint64 {
	return t.nOutBytes
}

// deliverInterest hands a received Interest to the link service, if the transport is still up.
func (t *transportBase) deliverInterest(interest *ndn.Interest) {
	if t.state != defn.Up || t.linkService == nil {
		return
	}
	t.linkService.handleIncomingInterest(interest)
}

// deliverData hands a received Data packet to the link service, if the transport is still up.
func (t *transportBase) deliverData(data *ndn.Data) {
	if t.state != defn.Up || t.linkService == nil {
		return
	}
	t.nInBytes += uint64(data.Size())
	t.linkService.handleIncomingData(data)
}
