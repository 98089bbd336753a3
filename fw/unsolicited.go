/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/dispatch"
	"github.com/named-data/inrpp/ndn"
	"github.com/pkg/errors"
)

// UnsolicitedDataPolicy decides whether Data that matches no PIT entry is admitted to the Content Store.
type UnsolicitedDataPolicy interface {
	String() string
	Admit(inFace dispatch.Face, data *ndn.Data) bool
}

// DropAllUnsolicitedDataPolicy drops all unsolicited Data.
type DropAllUnsolicitedDataPolicy struct{}

func (DropAllUnsolicitedDataPolicy) String() string {
	return "drop-all"
}

// Admit always returns false.
func (DropAllUnsolicitedDataPolicy) Admit(inFace dispatch.Face, data *ndn.Data) bool {
	return false
}

// AdmitLocalUnsolicitedDataPolicy admits unsolicited Data arriving on local faces.
type AdmitLocalUnsolicitedDataPolicy struct{}

func (AdmitLocalUnsolicitedDataPolicy) String() string {
	return "admit-local"
}

// Admit returns whether the Data arrived on a local face.
func (AdmitLocalUnsolicitedDataPolicy) Admit(inFace dispatch.Face, data *ndn.Data) bool {
	return inFace.Scope() == defn.Local
}

// NewUnsolicitedDataPolicy returns the policy with the specified name.
func NewUnsolicitedDataPolicy(name string) (UnsolicitedDataPolicy, error) {
	switch name {
	case "drop-all":
		return DropAllUnsolicitedDataPolicy{}, nil
	case "admit-local":
		return AdmitLocalUnsolicitedDataPolicy{}, nil
	default:
		return nil, errors.Wrapf(core.ErrUnknownPolicy, "unsolicited data policy %q", name)
	}
}

// onDataUnsolicited is the handler for Data matching no PIT entry.
func (f *Forwarder) onDataUnsolicited(inFace dispatch.Face, data *ndn.Data) {
	f.NUnsolicitedData++
	if !f.unsolicited.Admit(inFace, data) {
		core.LogDebug(f, "Unsolicited Data ", data.Name(), " from FaceID=", inFace.FaceID(), " - DROP")
		return
	}
	core.LogDebug(f, "Unsolicited Data ", data.Name(), " from FaceID=", inFace.FaceID(), " admitted by policy ", f.unsolicited)
	f.cs.InsertUnsolicited(data.WithoutTags())
}
