/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package executor

import (
	"math"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/utils/priority_queue"
)

// costInfinity marks an unreachable node.
const costInfinity = math.MaxUint64

// adjacency is a link from a node to one of its neighbors.
type adjacency struct {
	neighbor string
	faceID   uint64
	cost     uint64
}

// distancesTo returns the cost of the shortest path from every node to the origin.
func (e *Executor) distancesTo(origin string) map[string]uint64 {
	dist := make(map[string]uint64, len(e.nodes))
	for name := range e.nodes {
		dist[name] = costInfinity
	}
	dist[origin] = 0

	pq := priority_queue.New[string, uint64]()
	pq.Push(origin, 0)
	for pq.Len() > 0 {
		cost := pq.PeekPriority()
		name := pq.Pop()
		if cost > dist[name] {
			continue
		}
		for _, adj := range e.nodes[name].adjacencies {
			if next := cost + adj.cost; next < dist[adj.neighbor] {
				dist[adj.neighbor] = next
				pq.Push(adj.neighbor, next)
			}
		}
	}
	return dist
}

// installRoutes installs, on every node that can reach the origin, a nexthop for the prefix towards the
// neighbor on the shortest path. Ties go to the lowest face ID.
func (e *Executor) installRoutes(prefix *ndn.Name, origin string) {
	dist := e.distancesTo(origin)
	for _, name := range e.nodeNames {
		if name == origin || dist[name] == costInfinity {
			continue
		}
		node := e.nodes[name]
		var best *adjacency
		bestCost := uint64(costInfinity)
		for i, adj := range node.adjacencies {
			if dist[adj.neighbor] == costInfinity {
				continue
			}
			cost := adj.cost + dist[adj.neighbor]
			if cost < bestCost || (cost == bestCost && adj.faceID < best.faceID) {
				best = &node.adjacencies[i]
				bestCost = cost
			}
		}
		if best == nil {
			continue
		}
		node.Forwarder.Fib().InsertNextHop(prefix, best.faceID, bestCost)
		core.LogDebug(e, "Route ", prefix, " on ", name, " via ", best.neighbor, " FaceID=", best.faceID, " Cost=", bestCost)
	}
}
