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
)

// NullTransport is a transport that drops all packets.
type NullTransport struct {
	transportBase
}

// MakeNullTransport makes a NullTransport with the given scope.
func MakeNullTransport(scope defn.Scope) *NullTransport {
	t := new(NullTransport)
	t.makeTransportBase("null://", "null://", scope)
	return t
}

func (t *NullTransport) String() string {
	return "NullTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) + ", RemoteURI=" + t.remoteURI + ", LocalURI=" + t.localURI
}

func (t *NullTransport) sendInterest(interest *ndn.Interest) {
	// Dropped
}

func (t *NullTransport) sendData(data *ndn.Data) {
	t.nOutBytes += uint64(data.Size())
}
