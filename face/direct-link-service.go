/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import "strconv"

// DirectLinkService is a link service that transmits every packet as soon as the forwarder hands it over.
type DirectLinkService struct {
	linkServiceBase
}

// MakeDirectLinkService creates a new unpaced link service over the transport.
func MakeDirectLinkService(transport Transport) *DirectLinkService {
	l := new(DirectLinkService)
	l.makeLinkServiceBase(transport)
	transport.setLinkService(l)
	return l
}

func (l *DirectLinkService) String() string {
	if l.transport != nil {
		return "DirectLinkService, " + l.transport.String()
	}

	return "DirectLinkService, FaceID=" + strconv.FormatUint(l.faceID, 10)
}

// BitRate returns 0: the face is not paced.
func (l *DirectLinkService) BitRate() uint64 {
	return 0
}

// Run starts the face. Direct faces have nothing to start.
func (l *DirectLinkService) Run() {
}
