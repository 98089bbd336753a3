/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/face"
	"github.com/named-data/inrpp/fw"
)

// FaceStatus is the status dataset entry of a face.
type FaceStatus struct {
	FaceID   uint64
	URI      string
	LocalURI string
	Scope    defn.Scope
	State    defn.State

	// Pacing. BitRate is 0 for faces that are not paced.
	BitRate         uint64
	PacingInterval  time.Duration
	NPacingFires    uint64
	CongestionState defn.CongestionState
	BacklogDepth    int
	QueuedBytes     uint64
	QueueDelay      time.Duration

	// Moving average of QueueDelay over the drains of the face.
	QueueDelayAverage time.Duration

	NInInterests  uint64
	NInData       uint64
	NInBytes      uint64
	NOutInterests uint64
	NOutData      uint64
	NOutBytes     uint64
}

// MakeFaceStatus takes a snapshot of a face and of the forwarder state kept for it.
func MakeFaceStatus(forwarder *fw.Forwarder, link face.LinkService) *FaceStatus {
	faceID := link.FaceID()
	status := &FaceStatus{
		FaceID:          faceID,
		URI:             link.RemoteURI(),
		LocalURI:        link.LocalURI(),
		Scope:           link.Scope(),
		State:           link.State(),
		BitRate:         link.BitRate(),
		CongestionState: forwarder.CongestionState(faceID),
		BacklogDepth:    forwarder.BacklogDepth(faceID),
		QueuedBytes:     forwarder.Backlog().QueuedBytes(faceID),
		QueueDelay:      forwarder.QueueDelay(faceID),
		NInInterests:    link.NInInterests(),
		NInData:         link.NInData(),
		NInBytes:        link.NInBytes(),
		NOutInterests:   link.NOutInterests(),
		NOutData:        link.NOutData(),
		NOutBytes:       link.NOutBytes(),
	}
	status.QueueDelayAverage = forwarder.QueueDelayAverage(faceID)
	if paced, ok := link.(*face.PacedLinkService); ok {
		status.PacingInterval = paced.Interval()
		status.NPacingFires = paced.Timer().NFires()
	}
	return status
}

// FaceModule is the module that handles for Face Management.
type FaceModule struct {
	manager *Thread
}

func (f *FaceModule) String() string {
	return "FaceMgmt"
}

func (f *FaceModule) registerManager(manager *Thread) {
	f.manager = manager
}

func (f *FaceModule) getManager() *Thread {
	return f.manager
}

func (f *FaceModule) handleCommand(verb string, params *ControlParameters) *ControlResponse {
	// Dispatch by verb
	switch verb {
	case "list":
		return f.list()
	case "query":
		return f.query(params)
	case "destroy":
		return f.destroy(params)
	case "reset-congestion":
		return f.resetCongestion(params)
	default:
		core.LogWarn(f, "Received command for non-existent verb '", verb, "'")
		return makeControlResponse(501, "Unknown verb", nil)
	}
}

func (f *FaceModule) list() *ControlResponse {
	faces := f.manager.faces.GetAll()
	dataset := make([]*FaceStatus, 0, len(faces))
	for _, link := range faces {
		dataset = append(dataset, MakeFaceStatus(f.manager.forwarder, link))
	}
	core.LogTrace(f, "Published face dataset containing ", len(dataset), " faces")
	return makeControlResponse(200, "OK", dataset)
}

// lookup returns the face named by params, or the response to send if there is none.
func (f *FaceModule) lookup(params *ControlParameters) (face.LinkService, *ControlResponse) {
	if params.FaceID == nil {
		core.LogWarn(f, "Missing FaceId in ControlParameters")
		return nil, makeControlResponse(400, "ControlParameters is incorrect", nil)
	}
	link := f.manager.faces.Get(*params.FaceID)
	if link == nil {
		return nil, makeControlResponse(410, "Face does not exist", nil)
	}
	return link, nil
}

func (f *FaceModule) query(params *ControlParameters) *ControlResponse {
	link, response := f.lookup(params)
	if link == nil {
		return response
	}
	return makeControlResponse(200, "OK", MakeFaceStatus(f.manager.forwarder, link))
}

func (f *FaceModule) destroy(params *ControlParameters) *ControlResponse {
	link, response := f.lookup(params)
	if link == nil {
		return response
	}
	f.manager.faces.Remove(link.FaceID())
	core.LogInfo(f, "Destroyed face with FaceID=", link.FaceID())
	return makeControlResponse(200, "OK", &ControlParameters{FaceID: params.FaceID})
}

func (f *FaceModule) resetCongestion(params *ControlParameters) *ControlResponse {
	link, response := f.lookup(params)
	if link == nil {
		return response
	}
	f.manager.forwarder.ResetCongestion(link.FaceID())
	return makeControlResponse(200, "OK", &ControlParameters{FaceID: params.FaceID})
}
