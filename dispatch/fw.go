/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

import "github.com/named-data/inrpp/ndn"

// FWThread provides an interface that forwarders can satisfy (to avoid circular dependency between faces and forwarding)
type FWThread interface {
	String() string

	OnIncomingInterest(interest *ndn.Interest, inFace uint64)
	OnIncomingData(data *ndn.Data, inFace uint64)
	OnFaceRemoved(faceID uint64)
}

// Pacer is the capability a paced face uses to drain its backlog, one item per call.
type Pacer interface {
	DrainRequest(faceID uint64, bitRate uint64)
	BacklogDepth(faceID uint64) int
}
