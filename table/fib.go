/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/named-data/inrpp/ndn"
	"golang.org/x/exp/slices"
)

// FibNextHop represents a nexthop in a FIB entry.
type FibNextHop struct {
	Nexthop uint64
	Cost    uint64
}

// FibEntry is an entry in the FIB.
type FibEntry struct {
	Name     *ndn.Name
	nexthops []*FibNextHop
}

// Fib is the Forwarding Information Base of a forwarder, indexed by the hash of each entry's prefix.
type Fib struct {
	entries map[uint64][]*FibEntry
}

// NewFib creates an empty FIB.
func NewFib() *Fib {
	f := new(Fib)
	f.entries = make(map[uint64][]*FibEntry)
	return f
}

func (f *Fib) findExact(name *ndn.Name) *FibEntry {
	for _, entry := range f.entries[name.Hash()] {
		if entry.Name.Equals(name) {
			return entry
		}
	}
	return nil
}

// InsertNextHop adds or updates a nexthop on the specified prefix.
func (f *Fib) InsertNextHop(name *ndn.Name, nexthop uint64, cost uint64) {
	entry := f.findExact(name)
	if entry == nil {
		entry = &FibEntry{Name: name.DeepCopy()}
		f.entries[name.Hash()] = append(f.entries[name.Hash()], entry)
	}
	for _, existing := range entry.nexthops {
		if existing.Nexthop == nexthop {
			existing.Cost = cost
			return
		}
	}
	entry.nexthops = append(entry.nexthops, &FibNextHop{Nexthop: nexthop, Cost: cost})
}

// RemoveNextHop removes a nexthop from the specified prefix, dropping the entry once it has no nexthops.
func (f *Fib) RemoveNextHop(name *ndn.Name, nexthop uint64) {
	entry := f.findExact(name)
	if entry == nil {
		return
	}
	entry.nexthops = slices.DeleteFunc(entry.nexthops, func(hop *FibNextHop) bool {
		return hop.Nexthop == nexthop
	})
	if len(entry.nexthops) == 0 {
		f.removeEntry(entry)
	}
}

// RemoveNextHopsByFace removes the face from every FIB entry.
func (f *Fib) RemoveNextHopsByFace(nexthop uint64) {
	for _, bucket := range f.entries {
		for _, entry := range slices.Clone(bucket) {
			f.RemoveNextHop(entry.Name, nexthop)
		}
	}
}

func (f *Fib) removeEntry(entry *FibEntry) {
	index := entry.Name.Hash()
	bucket := slices.DeleteFunc(f.entries[index], func(e *FibEntry) bool {
		return e == entry
	})
	if len(bucket) == 0 {
		delete(f.entries, index)
	} else {
		f.entries[index] = bucket
	}
}

// FindNextHops returns the nexthops of the longest prefix match of the name.
func (f *Fib) FindNextHops(name *ndn.Name) []*FibNextHop {
	for size := name.Size(); size >= 0; size-- {
		for _, entry := range f.entries[name.PrefixHash(size)] {
			if entry.Name.Size() == size && entry.Name.PrefixOf(name) {
				return entry.nexthops
			}
		}
	}
	return nil
}

// GetAllFIBEntries returns every FIB entry.
func (f *Fib) GetAllFIBEntries() []*FibEntry {
	entries := make([]*FibEntry, 0)
	for _, bucket := range f.entries {
		entries = append(entries, bucket...)
	}
	slices.SortFunc(entries, func(a, b *FibEntry) int {
		if a.Name.String() < b.Name.String() {
			return -1
		} else if a.Name.String() > b.Name.String() {
			return 1
		}
		return 0
	})
	return entries
}

// GetNextHops returns the nexthops of the entry.
func (e *FibEntry) GetNextHops() []*FibNextHop {
	return e.nexthops
}
