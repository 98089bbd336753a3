/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

import (
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/ndn"
)

// Face provides an interface that faces can satisfy (to avoid circular dependency between faces and forwarding)
type Face interface {
	String() string
	SetFaceID(faceID uint64)

	FaceID() uint64
	Scope() defn.Scope
	// BitRate returns the pacing rate of the face in bits per second, or 0 if the face is not paced.
	BitRate() uint64

	SendData(data *ndn.Data)
	SendInterest(interest *ndn.Interest)

	CongestionState() defn.CongestionState
	SetCongestionState(state defn.CongestionState)
}

// FaceTable provides face lookup by ID to the forwarder.
type FaceTable interface {
	GetFace(faceID uint64) Face
}
