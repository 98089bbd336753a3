/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/cespare/xxhash"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
)

// DeadNonceList represents the Dead Nonce List of a forwarder.
type DeadNonceList struct {
	list      map[uint64]struct{}
	scheduler *sim.Scheduler
	lifetime  time.Duration
}

// NewDeadNonceList creates a new Dead Nonce List whose entries expire on the scheduler's clock.
func NewDeadNonceList(scheduler *sim.Scheduler) *DeadNonceList {
	d := new(DeadNonceList)
	d.list = make(map[uint64]struct{})
	d.scheduler = scheduler
	d.lifetime = deadNonceListLifetime
	return d
}

func deadNonceHash(name *ndn.Name, nonce uint32) uint64 {
	var buf [12]byte
	h := name.Hash()
	for i := 0; i < 8; i++ {
		buf[i] = byte(h >> (56 - 8*i))
	}
	buf[8] = byte(nonce >> 24)
	buf[9] = byte(nonce >> 16)
	buf[10] = byte(nonce >> 8)
	buf[11] = byte(nonce)
	return xxhash.Sum64(buf[:])
}

// Find returns whether the specified name and nonce combination are present in the Dead Nonce List.
func (d *DeadNonceList) Find(name *ndn.Name, nonce uint32) bool {
	_, ok := d.list[deadNonceHash(name, nonce)]
	return ok
}

// Insert inserts an entry in the Dead Nonce List with the specified name and nonce. Returns whether nonce already present.
func (d *DeadNonceList) Insert(name *ndn.Name, nonce uint32) bool {
	hash := deadNonceHash(name, nonce)
	_, exists := d.list[hash]

	if !exists {
		d.list[hash] = struct{}{}
		d.scheduler.Schedule(d.lifetime, func() {
			delete(d.list, hash)
		})
	}
	return exists
}

// Size returns the number of entries in the Dead Nonce List.
func (d *DeadNonceList) Size() int {
	return len(d.list)
}
