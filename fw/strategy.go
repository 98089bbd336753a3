/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/table"
)

// Strategy represents a forwarding strategy.
type Strategy interface {
	String() string

	AfterContentStoreHit(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data)
	AfterReceiveInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest, nexthops []*table.FibNextHop)
}

// StrategyBase provides common helper methods for forwarding strategies.
type StrategyBase struct {
	forwarder *Forwarder
}

// NewStrategyBase is a helper that allows specific strategies to initialize the base.
func (s *StrategyBase) NewStrategyBase(forwarder *Forwarder) {
	s.forwarder = forwarder
}

// SendInterest sends an Interest on the specified face.
func (s *StrategyBase) SendInterest(interest *ndn.Interest, pitEntry *table.PitEntry, nexthop uint64) {
	s.forwarder.OnOutgoingInterest(pitEntry, nexthop, interest)
}

// SendData sends a Data packet from the Content Store towards the specified face, satisfying its in-record.
// upstream is the face a re-request goes to should the Data be evicted before it is transmitted.
func (s *StrategyBase) SendData(data *ndn.Data, pitEntry *table.PitEntry, nexthop uint64, upstream uint64) {
	pitEntry.DeleteInRecord(nexthop)
	s.forwarder.NSatisfiedInterests++
	s.forwarder.OnOutgoingData(data, upstream, nexthop)
	if len(pitEntry.InRecords()) == 0 {
		pitEntry.SetSatisfied(true)
		s.forwarder.setStragglerTimer(pitEntry, true, data.FreshnessPeriod())
	}
}
