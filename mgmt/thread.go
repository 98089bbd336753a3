/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/face"
	"github.com/named-data/inrpp/fw"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/table"
)

// Thread is the manager of a forwarder. Control commands are named /localhost/nfd/<module>/<verb>.
type Thread struct {
	forwarder   *fw.Forwarder
	faces       *face.Table
	clock       table.Clock
	localPrefix *ndn.Name
	modules     map[string]Module
}

// MakeMgmtThread creates a new manager for the forwarder and its face table.
func MakeMgmtThread(forwarder *fw.Forwarder, faces *face.Table, clock table.Clock) *Thread {
	m := new(Thread)
	m.forwarder = forwarder
	m.faces = faces
	m.clock = clock
	m.localPrefix = ndn.MustNameFromString("/localhost/nfd")
	m.modules = make(map[string]Module)
	m.registerModule("status", new(ForwarderStatusModule))
	m.registerModule("faces", new(FaceModule))
	m.registerModule("fib", new(FIBModule))
	m.registerModule("cs", new(ContentStoreModule))
	return m
}

func (m *Thread) String() string {
	return "Management-" + m.forwarder.Name()
}

func (m *Thread) registerModule(name string, module Module) {
	m.modules[name] = module
	module.registerManager(m)
}

func (m *Thread) prefixLength() int {
	return m.localPrefix.Size()
}

// Forwarder returns the managed forwarder.
func (m *Thread) Forwarder() *fw.Forwarder {
	return m.forwarder
}

// Faces returns the managed face table.
func (m *Thread) Faces() *face.Table {
	return m.faces
}

// Command dispatches a control command to its module.
func (m *Thread) Command(name *ndn.Name, params *ControlParameters) *ControlResponse {
	// Ensure name matches expectations
	if name.Size() < m.prefixLength()+2 { // Module + Verb
		core.LogInfo(m, "Control command name ", name, " has unexpected number of components - DROP")
		return makeControlResponse(400, "Malformed command", nil)
	}
	if !m.localPrefix.PrefixOf(name) {
		core.LogInfo(m, "Control command name ", name, " has unexpected prefix - DROP")
		return makeControlResponse(400, "Malformed command", nil)
	}

	core.LogTrace(m, "Received management command ", name)

	moduleName := name.At(m.prefixLength()).String()
	module, ok := m.modules[moduleName]
	if !ok {
		core.LogWarn(m, "Received command for non-existent module '", moduleName, "'")
		return makeControlResponse(501, "Unknown module", nil)
	}
	if params == nil {
		params = new(ControlParameters)
	}
	return module.handleCommand(name.At(m.prefixLength()+1).String(), params)
}

// CommandString is Command with the command name in URI form.
func (m *Thread) CommandString(name string, params *ControlParameters) *ControlResponse {
	parsed, err := ndn.NameFromString(name)
	if err != nil {
		core.LogWarn(m, "Unable to parse control command name ", name, ": ", err)
		return makeControlResponse(400, "Malformed command", nil)
	}
	return m.Command(parsed, params)
}
