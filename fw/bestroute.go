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
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/table"
)

// BestRoute is a forwarding strategy that forwards Interests to the nexthop with the lowest cost.
type BestRoute struct {
	StrategyBase
}

// NewBestRoute creates a new instance of the BestRoute strategy.
func NewBestRoute(forwarder *Forwarder) *BestRoute {
	s := new(BestRoute)
	s.NewStrategyBase(forwarder)
	return s
}

func (s *BestRoute) String() string {
	return "Strategy-BestRoute"
}

// lowestCost returns the lowest cost nexthop other than the excluded face, or defn.InvalidFaceID.
func lowestCost(nexthops []*table.FibNextHop, exclude uint64) uint64 {
	var best *table.FibNextHop
	for _, nexthop := range nexthops {
		if nexthop.Nexthop == exclude {
			continue
		}
		if best == nil || nexthop.Cost < best.Cost {
			best = nexthop
		}
	}
	if best == nil {
		return defn.InvalidFaceID
	}
	return best.Nexthop
}

// AfterContentStoreHit ...
func (s *BestRoute) AfterContentStoreHit(pitEntry *table.PitEntry, inFace uint64, data *ndn.Data) {
	// Send downstream
	core.LogTrace(s, "Forwarding content store hit Data ", data.Name(), " to FaceID=", inFace)
	upstream := lowestCost(s.forwarder.fib.FindNextHops(data.Name()), inFace)
	s.SendData(data, pitEntry, inFace, upstream)
}

// AfterReceiveInterest ...
func (s *BestRoute) AfterReceiveInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest, nexthops []*table.FibNextHop) {
	nexthop := lowestCost(nexthops, inFace)
	if nexthop == defn.InvalidFaceID {
		core.LogDebug(s, "No nexthop for Interest ", interest.Name(), " - DROP")
		return
	}

	core.LogTrace(s, "Forwarding Interest ", interest.Name(), " to FaceID=", nexthop)
	s.SendInterest(interest, pitEntry, nexthop)
}
