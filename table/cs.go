/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/utils/comparison"
	"github.com/pkg/errors"
)

// ContentStore is the content cache consulted by the forwarding pipelines.
// Warning: All functions must be called on the scheduler goroutine.
type ContentStore interface {
	// Insert admits a Data packet that satisfied a pending Interest.
	Insert(data *ndn.Data)
	// InsertUnsolicited admits a Data packet that satisfied no pending Interest.
	InsertUnsolicited(data *ndn.Data)
	// Find looks up the exact name, calling exactly one of onHit or onMiss before returning.
	Find(name *ndn.Name, onHit func(name *ndn.Name, data *ndn.Data), onMiss func(name *ndn.Name))
	// FindMatchingData returns the cached Data satisfying the Interest, or nil.
	FindMatchingData(interest *ndn.Interest) *ndn.Data
	Erase(name *ndn.Name) bool
	Size() int
	Capacity() int
	SetCapacity(capacity int)
	IsAdmitting() bool
	IsServing() bool
}

// CsEntry is an entry in a forwarder's CS.
type CsEntry struct {
	index       uint64 // the hash of the name, for fast lookup
	seq         uint64
	data        *ndn.Data
	staleTime   time.Time
	unsolicited bool
}

// Index returns the hash of the entry's name.
func (e *CsEntry) Index() uint64 {
	return e.index
}

// Data returns the cached Data packet.
func (e *CsEntry) Data() *ndn.Data {
	return e.data
}

// StaleTime returns the time after which the entry no longer satisfies MustBeFresh Interests.
func (e *CsEntry) StaleTime() time.Time {
	return e.staleTime
}

// Unsolicited returns whether the entry was admitted without a matching PIT entry.
func (e *CsEntry) Unsolicited() bool {
	return e.unsolicited
}

// Cs is the reference Content Store: an exact-name hash index plus a replacement policy.
type Cs struct {
	entries  map[uint64]*CsEntry
	policy   CsReplacementPolicy
	clock    Clock
	capacity int
	admit    bool
	serve    bool
	nextSeq  uint64
}

// NewCs creates a Content Store using the configured capacity, admit/serve switches and replacement policy.
func NewCs(clock Clock) (*Cs, error) {
	return NewCsWithPolicy(clock, csReplacementPolicy, csCapacity)
}

// NewCsWithPolicy creates a Content Store with the named replacement policy and capacity.
func NewCsWithPolicy(clock Clock, policy string, capacity int) (*Cs, error) {
	c := new(Cs)
	c.entries = make(map[uint64]*CsEntry)
	c.clock = clock
	c.capacity = capacity
	c.admit = csAdmit
	c.serve = csServe
	switch policy {
	case "lru":
		c.policy = NewCsLRU(c)
	case "priority_fifo":
		c.policy = NewCsPriorityFIFO(c)
	default:
		return nil, errors.Wrapf(core.ErrUnknownPolicy, "content store replacement policy %q", policy)
	}
	return c, nil
}

// Insert admits a Data packet that satisfied a pending Interest.
func (c *Cs) Insert(data *ndn.Data) {
	c.insert(data, false)
}

// InsertUnsolicited admits a Data packet that satisfied no pending Interest.
func (c *Cs) InsertUnsolicited(data *ndn.Data) {
	c.insert(data, true)
}

func (c *Cs) insert(data *ndn.Data, unsolicited bool) {
	if !c.admit || c.capacity <= 0 {
		return
	}

	index := data.Name().Hash()
	staleTime := c.clock.Now().Add(data.FreshnessPeriod())
	if entry, ok := c.entries[index]; ok && entry.data.Name().Equals(data.Name()) {
		core.LogTrace("ContentStore", "Refresh ", data.Name())
		entry.data = data
		entry.staleTime = staleTime
		// A solicited copy upgrades an unsolicited entry but never the reverse
		entry.unsolicited = entry.unsolicited && unsolicited
		c.policy.AfterRefresh(entry)
		return
	} else if ok {
		// Hash collision with a different name: replace the old entry.
		c.policy.BeforeErase(entry)
		delete(c.entries, index)
	}

	core.LogTrace("ContentStore", "Insert ", data.Name(), " unsolicited=", unsolicited)
	entry := &CsEntry{
		index:       index,
		seq:         c.nextSeq,
		data:        data,
		staleTime:   staleTime,
		unsolicited: unsolicited,
	}
	c.nextSeq++
	c.entries[index] = entry
	c.policy.AfterInsert(entry)
	c.policy.EvictEntries()
}

// Find looks up the exact name, calling exactly one of onHit or onMiss before returning.
func (c *Cs) Find(name *ndn.Name, onHit func(name *ndn.Name, data *ndn.Data), onMiss func(name *ndn.Name)) {
	entry := c.findExact(name)
	if entry == nil {
		onMiss(name)
		return
	}
	c.policy.BeforeUse(entry)
	onHit(name, entry.data)
}

// FindMatchingData returns the cached Data satisfying the Interest, or nil. Among several prefix matches the
// oldest admitted entry wins.
func (c *Cs) FindMatchingData(interest *ndn.Interest) *ndn.Data {
	var match *CsEntry
	if !interest.CanBePrefix() {
		match = c.findExact(interest.Name())
		if match != nil && interest.MustBeFresh() && !c.isFresh(match) {
			match = nil
		}
	} else if c.serve {
		for _, entry := range c.entries {
			if !interest.Name().PrefixOf(entry.data.Name()) {
				continue
			}
			if interest.MustBeFresh() && !c.isFresh(entry) {
				continue
			}
			if match == nil || entry.seq < match.seq {
				match = entry
			}
		}
	}

	if match == nil {
		return nil
	}
	c.policy.BeforeUse(match)
	return match.data
}

func (c *Cs) findExact(name *ndn.Name) *CsEntry {
	if !c.serve {
		return nil
	}
	entry, ok := c.entries[name.Hash()]
	if !ok || !entry.data.Name().Equals(name) {
		return nil
	}
	return entry
}

func (c *Cs) isFresh(entry *CsEntry) bool {
	return entry.staleTime.After(c.clock.Now())
}

// Erase removes the entry with the exact name, returning whether one existed.
func (c *Cs) Erase(name *ndn.Name) bool {
	index := name.Hash()
	entry, ok := c.entries[index]
	if !ok || !entry.data.Name().Equals(name) {
		return false
	}
	c.policy.BeforeErase(entry)
	delete(c.entries, index)
	return true
}

// eraseFromReplacementPolicy is called by the replacement policy to evict an entry.
func (c *Cs) eraseFromReplacementPolicy(index uint64) {
	if entry, ok := c.entries[index]; ok {
		core.LogTrace("ContentStore", "Evict ", entry.data.Name())
		delete(c.entries, index)
	}
}

// Size returns the number of cached entries.
func (c *Cs) Size() int {
	return len(c.entries)
}

// Capacity returns the maximum number of cached entries.
func (c *Cs) Capacity() int {
	return c.capacity
}

// SetCapacity changes the maximum number of cached entries, evicting as needed.
func (c *Cs) SetCapacity(capacity int) {
	c.capacity = comparison.Max(capacity, 0)
	c.policy.EvictEntries()
}

// IsAdmitting returns whether new contents are admitted.
func (c *Cs) IsAdmitting() bool {
	return c.admit
}

// SetAdmitting enables or disables admission of new contents.
func (c *Cs) SetAdmitting(admit bool) {
	c.admit = admit
}

// IsServing returns whether cached contents are served.
func (c *Cs) IsServing() bool {
	return c.serve
}

// SetServing enables or disables serving of cached contents.
func (c *Cs) SetServing(serve bool) {
	c.serve = serve
}
