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
	"github.com/named-data/inrpp/fw"
)

// GeneralStatus is the general status dataset of a forwarder.
type GeneralStatus struct {
	NfdVersion       string
	StartTimestamp   time.Time
	CurrentTimestamp time.Time
	NFibEntries      uint64
	NPitEntries      uint64
	NCsEntries       uint64
	NStalledFaces    uint64
	fw.Counters
}

// ForwarderStatusModule is the module that provide forwarder status information.
type ForwarderStatusModule struct {
	manager *Thread
}

func (f *ForwarderStatusModule) String() string {
	return "ForwarderStatusMgmt"
}

func (f *ForwarderStatusModule) registerManager(manager *Thread) {
	f.manager = manager
}

func (f *ForwarderStatusModule) getManager() *Thread {
	return f.manager
}

func (f *ForwarderStatusModule) handleCommand(verb string, params *ControlParameters) *ControlResponse {
	// Dispatch by verb
	switch verb {
	case "general":
		return f.general()
	default:
		core.LogWarn(f, "Received command for non-existent verb '", verb, "'")
		return makeControlResponse(501, "Unknown verb", nil)
	}
}

func (f *ForwarderStatusModule) general() *ControlResponse {
	status := MakeGeneralStatus(f.manager.forwarder, f.manager.clock.Now())
	core.LogTrace(f, "Published forwarder status dataset")
	return makeControlResponse(200, "OK", status)
}

// MakeGeneralStatus takes a snapshot of the forwarder's tables and counters.
func MakeGeneralStatus(forwarder *fw.Forwarder, now time.Time) *GeneralStatus {
	return &GeneralStatus{
		NfdVersion:       core.Version,
		StartTimestamp:   core.StartTimestamp,
		CurrentTimestamp: now,
		NFibEntries:      uint64(len(forwarder.Fib().GetAllFIBEntries())),
		NPitEntries:      uint64(forwarder.Pit().Size()),
		NCsEntries:       uint64(forwarder.ContentStore().Size()),
		NStalledFaces:    uint64(len(forwarder.Congestion().Stalled())),
		Counters:         forwarder.Counters,
	}
}
