/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"github.com/named-data/inrpp/core"
)

// NextHopRecord is a nexthop in the FIB dataset.
type NextHopRecord struct {
	FaceID uint64
	Cost   uint64
}

// FibEntryStatus is an entry of the FIB dataset.
type FibEntryStatus struct {
	Name           string
	NextHopRecords []NextHopRecord
}

// FIBModule is the module that handles FIB Management.
type FIBModule struct {
	manager *Thread
}

func (f *FIBModule) String() string {
	return "FIBMgmt"
}

func (f *FIBModule) registerManager(manager *Thread) {
	f.manager = manager
}

func (f *FIBModule) getManager() *Thread {
	return f.manager
}

func (f *FIBModule) handleCommand(verb string, params *ControlParameters) *ControlResponse {
	// Dispatch by verb
	switch verb {
	case "add-nexthop":
		return f.add(params)
	case "remove-nexthop":
		return f.remove(params)
	case "list":
		return f.list()
	default:
		core.LogWarn(f, "Received command for non-existent verb '", verb, "'")
		return makeControlResponse(501, "Unknown verb", nil)
	}
}

func (f *FIBModule) add(params *ControlParameters) *ControlResponse {
	if params.Name == nil {
		core.LogWarn(f, "Missing Name in ControlParameters")
		return makeControlResponse(400, "ControlParameters is incorrect", nil)
	}
	if params.FaceID == nil || *params.FaceID == 0 {
		core.LogWarn(f, "Missing FaceId in ControlParameters for ", params.Name)
		return makeControlResponse(400, "ControlParameters is incorrect", nil)
	}
	faceID := *params.FaceID
	if f.manager.faces.Get(faceID) == nil {
		return makeControlResponse(410, "Face does not exist", nil)
	}

	cost := uint64(0)
	if params.Cost != nil {
		cost = *params.Cost
	}
	f.manager.forwarder.Fib().InsertNextHop(params.Name, faceID, cost)

	core.LogInfo(f, "Created nexthop for ", params.Name, " to FaceID=", faceID, " with Cost=", cost)
	return makeControlResponse(200, "OK", &ControlParameters{Name: params.Name, FaceID: &faceID, Cost: &cost})
}

func (f *FIBModule) remove(params *ControlParameters) *ControlResponse {
	if params.Name == nil || params.FaceID == nil {
		core.LogWarn(f, "Missing Name or FaceId in ControlParameters")
		return makeControlResponse(400, "ControlParameters is incorrect", nil)
	}
	f.manager.forwarder.Fib().RemoveNextHop(params.Name, *params.FaceID)

	core.LogInfo(f, "Removed nexthop for ", params.Name, " to FaceID=", *params.FaceID)
	return makeControlResponse(200, "OK", &ControlParameters{Name: params.Name, FaceID: params.FaceID})
}

func (f *FIBModule) list() *ControlResponse {
	entries := f.manager.forwarder.Fib().GetAllFIBEntries()
	dataset := make([]FibEntryStatus, 0, len(entries))
	for _, fsEntry := range entries {
		nextHops := fsEntry.GetNextHops()
		fibEntry := FibEntryStatus{
			Name:           fsEntry.Name.String(),
			NextHopRecords: make([]NextHopRecord, len(nextHops)),
		}
		for i, nexthop := range nextHops {
			fibEntry.NextHopRecords[i] = NextHopRecord{
				FaceID: nexthop.Nexthop,
				Cost:   nexthop.Cost,
			}
		}
		dataset = append(dataset, fibEntry)
	}

	core.LogTrace(f, "Published FIB dataset containing ", len(dataset), " entries")
	return makeControlResponse(200, "OK", dataset)
}
