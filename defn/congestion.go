/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package defn

// CongestionState is the congestion state of an outgoing face.
type CongestionState int

const (
	// Open indicates the face is draining its backlog from the Content Store.
	Open CongestionState = iota
	// Stalled indicates the most recent drain attempt on the face missed the Content Store.
	Stalled
)

func (c CongestionState) String() string {
	switch c {
	case Open:
		return "open"
	case Stalled:
		return "stalled"
	default:
		return "unknown"
	}
}
