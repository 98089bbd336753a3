/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/inrpp/defn"
	"golang.org/x/exp/slices"
)

// CongestionSignal holds the congestion state of each paced face. A face becomes Stalled when a drain misses the
// Content Store and stays so until Reset.
type CongestionSignal struct {
	states map[uint64]defn.CongestionState
}

// NewCongestionSignal creates a congestion signal with every face Open.
func NewCongestionSignal() *CongestionSignal {
	c := new(CongestionSignal)
	c.states = make(map[uint64]defn.CongestionState)
	return c
}

// State returns the congestion state of the face.
func (c *CongestionSignal) State(faceID uint64) defn.CongestionState {
	if state, ok := c.states[faceID]; ok {
		return state
	}
	return defn.Open
}

// stall marks the face Stalled, returning whether it was Open before.
func (c *CongestionSignal) stall(faceID uint64) bool {
	wasOpen := c.State(faceID) == defn.Open
	c.states[faceID] = defn.Stalled
	return wasOpen
}

// Reset marks the face Open.
func (c *CongestionSignal) Reset(faceID uint64) {
	delete(c.states, faceID)
}

// Stalled returns the IDs of stalled faces in ascending order.
func (c *CongestionSignal) Stalled() []uint64 {
	faces := make([]uint64, 0, len(c.states))
	for faceID, state := range c.states {
		if state == defn.Stalled {
			faces = append(faces, faceID)
		}
	}
	slices.Sort(faces)
	return faces
}
