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

// CsInfo is the Content Store information dataset.
type CsInfo struct {
	Capacity uint64
	NEntries uint64
	Flags    uint64
}

// csSwitches is implemented by Content Stores whose admit and serve switches can be changed at run time.
type csSwitches interface {
	SetAdmitting(admit bool)
	SetServing(serve bool)
}

// ContentStoreModule is the module that handles Content Store Management.
type ContentStoreModule struct {
	manager *Thread
}

func (c *ContentStoreModule) String() string {
	return "ContentStoreMgmt"
}

func (c *ContentStoreModule) registerManager(manager *Thread) {
	c.manager = manager
}

func (c *ContentStoreModule) getManager() *Thread {
	return c.manager
}

func (c *ContentStoreModule) handleCommand(verb string, params *ControlParameters) *ControlResponse {
	// Dispatch by verb
	switch verb {
	case "config":
		return c.config(params)
	case "info":
		return c.info()
	default:
		core.LogWarn(c, "Received command for non-existent verb '", verb, "'")
		return makeControlResponse(501, "Unknown verb", nil)
	}
}

func (c *ContentStoreModule) flags() uint64 {
	cs := c.manager.forwarder.ContentStore()
	var flags uint64
	if cs.IsAdmitting() {
		flags |= CsEnableAdmit
	}
	if cs.IsServing() {
		flags |= CsEnableServe
	}
	return flags
}

func (c *ContentStoreModule) config(params *ControlParameters) *ControlResponse {
	if (params.Flags == nil && params.Mask != nil) || (params.Flags != nil && params.Mask == nil) {
		core.LogWarn(c, "Flags and Mask fields must either both be present or both be not present")
		return makeControlResponse(409, "ControlParameters are incorrect", nil)
	}

	cs := c.manager.forwarder.ContentStore()
	if params.Capacity != nil {
		core.LogInfo(c, "Setting CS capacity to ", *params.Capacity)
		cs.SetCapacity(int(*params.Capacity))
	}

	if params.Flags != nil {
		switches, ok := cs.(csSwitches)
		if !ok {
			return makeControlResponse(501, "Content Store switches not supported", nil)
		}
		if *params.Mask&CsEnableAdmit > 0 {
			admit := *params.Flags&CsEnableAdmit > 0
			core.LogInfo(c, "Setting CS admit flag to ", admit)
			switches.SetAdmitting(admit)
		}
		if *params.Mask&CsEnableServe > 0 {
			serve := *params.Flags&CsEnableServe > 0
			core.LogInfo(c, "Setting CS serve flag to ", serve)
			switches.SetServing(serve)
		}
	}

	capacity := uint64(cs.Capacity())
	flags := c.flags()
	return makeControlResponse(200, "OK", &ControlParameters{Capacity: &capacity, Flags: &flags})
}

func (c *ContentStoreModule) info() *ControlResponse {
	cs := c.manager.forwarder.ContentStore()
	return makeControlResponse(200, "OK", &CsInfo{
		Capacity: uint64(cs.Capacity()),
		NEntries: uint64(cs.Size()),
		Flags:    c.flags(),
	})
}
