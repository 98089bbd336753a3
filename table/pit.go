/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
)

// Pit is the Pending Interest Table of a forwarder. Entries are indexed by the hash of their name.
// Warning: All functions must be called on the scheduler goroutine.
type Pit struct {
	entries map[uint64][]*PitEntry
	clock   Clock
	size    int
}

// PitEntry is an entry in the PIT.
type PitEntry struct {
	pit            *Pit
	name           *ndn.Name
	canBePrefix    bool
	mustBeFresh    bool
	inRecords      map[uint64]*PitInRecord  // Key is face ID
	outRecords     map[uint64]*PitOutRecord // Key is face ID
	expirationTime time.Time
	satisfied      bool
	timer          *sim.Event
}

// PitInRecord records an incoming Interest on a given face.
type PitInRecord struct {
	Face            uint64
	LatestNonce     uint32
	LatestTimestamp time.Time
	LatestInterest  *ndn.Interest
	ExpirationTime  time.Time
}

// PitOutRecord records an outgoing Interest on a given face.
type PitOutRecord struct {
	Face            uint64
	LatestNonce     uint32
	LatestTimestamp time.Time
	LatestInterest  *ndn.Interest
	ExpirationTime  time.Time
}

// NewPit creates an empty PIT.
func NewPit(clock Clock) *Pit {
	p := new(Pit)
	p.entries = make(map[uint64][]*PitEntry)
	p.clock = clock
	return p
}

// InsertInterest finds or inserts the entry aggregating the Interest, returning the entry and whether it
// already existed.
func (p *Pit) InsertInterest(interest *ndn.Interest) (*PitEntry, bool) {
	return p.findOrInsert(interest.Name(), interest.CanBePrefix(), interest.MustBeFresh())
}

// FindOrInsert finds or inserts the entry for an exact-name Interest with default selectors.
func (p *Pit) FindOrInsert(name *ndn.Name) *PitEntry {
	entry, _ := p.findOrInsert(name, false, false)
	return entry
}

func (p *Pit) findOrInsert(name *ndn.Name, canBePrefix bool, mustBeFresh bool) (*PitEntry, bool) {
	index := name.Hash()
	for _, entry := range p.entries[index] {
		if entry.canBePrefix == canBePrefix && entry.mustBeFresh == mustBeFresh && entry.name.Equals(name) {
			return entry, true
		}
	}

	entry := new(PitEntry)
	entry.pit = p
	entry.name = name
	entry.canBePrefix = canBePrefix
	entry.mustBeFresh = mustBeFresh
	entry.inRecords = make(map[uint64]*PitInRecord)
	entry.outRecords = make(map[uint64]*PitOutRecord)
	entry.expirationTime = p.clock.Now()
	p.entries[index] = append(p.entries[index], entry)
	p.size++
	return entry, false
}

// FindAllDataMatches returns every entry the Data satisfies, shortest name first.
func (p *Pit) FindAllDataMatches(data *ndn.Data) []*PitEntry {
	name := data.Name()
	matches := make([]*PitEntry, 0)
	for size := 0; size <= name.Size(); size++ {
		for _, entry := range p.entries[name.PrefixHash(size)] {
			if entry.name.Size() != size || !entry.name.PrefixOf(name) {
				continue
			}
			if size < name.Size() && !entry.canBePrefix {
				continue
			}
			matches = append(matches, entry)
		}
	}
	return matches
}

// Remove removes the entry from the PIT, returning whether it was present.
func (p *Pit) Remove(entry *PitEntry) bool {
	index := entry.name.Hash()
	bucket := p.entries[index]
	for i, candidate := range bucket {
		if candidate != entry {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(p.entries, index)
		} else {
			p.entries[index] = bucket
		}
		p.size--
		return true
	}
	return false
}

// Size returns the number of entries in the PIT.
func (p *Pit) Size() int {
	return p.size
}

// Name returns the name of the entry.
func (e *PitEntry) Name() *ndn.Name {
	return e.name
}

// CanBePrefix returns whether the entry aggregates CanBePrefix Interests.
func (e *PitEntry) CanBePrefix() bool {
	return e.canBePrefix
}

// MustBeFresh returns whether the entry aggregates MustBeFresh Interests.
func (e *PitEntry) MustBeFresh() bool {
	return e.mustBeFresh
}

// InRecords returns the in-records of the entry, keyed by face ID.
func (e *PitEntry) InRecords() map[uint64]*PitInRecord {
	return e.inRecords
}

// OutRecords returns the out-records of the entry, keyed by face ID.
func (e *PitEntry) OutRecords() map[uint64]*PitOutRecord {
	return e.outRecords
}

// ExpirationTime returns the time at which the entry expires.
func (e *PitEntry) ExpirationTime() time.Time {
	return e.expirationTime
}

// SetExpirationTime sets the time at which the entry expires.
func (e *PitEntry) SetExpirationTime(t time.Time) {
	e.expirationTime = t
}

// Satisfied returns whether the entry has been satisfied by Data.
func (e *PitEntry) Satisfied() bool {
	return e.satisfied
}

// SetSatisfied sets whether the entry has been satisfied by Data.
func (e *PitEntry) SetSatisfied(isSatisfied bool) {
	e.satisfied = isSatisfied
}

// Timer returns the expiry or straggler timer currently armed for the entry.
func (e *PitEntry) Timer() *sim.Event {
	return e.timer
}

// SetTimer records the timer armed for the entry.
func (e *PitEntry) SetTimer(timer *sim.Event) {
	e.timer = timer
}

// InsertInRecord finds or inserts an in-record for the face, updating the metadata and returning whether
// there was already an in-record in the entry.
func (e *PitEntry) InsertInRecord(interest *ndn.Interest, face uint64) (*PitInRecord, bool) {
	now := e.pit.clock.Now()
	record, ok := e.inRecords[face]
	if !ok {
		record = new(PitInRecord)
		record.Face = face
		e.inRecords[face] = record
	}
	record.LatestNonce = interest.Nonce()
	record.LatestTimestamp = now
	record.LatestInterest = interest
	record.ExpirationTime = now.Add(interest.Lifetime())
	return record, ok
}

// InsertOutRecord finds or inserts an out-record for the face, updating the metadata.
func (e *PitEntry) InsertOutRecord(interest *ndn.Interest, face uint64) *PitOutRecord {
	now := e.pit.clock.Now()
	record, ok := e.outRecords[face]
	if !ok {
		record = new(PitOutRecord)
		record.Face = face
		e.outRecords[face] = record
	}
	record.LatestNonce = interest.Nonce()
	record.LatestTimestamp = now
	record.LatestInterest = interest
	record.ExpirationTime = now.Add(interest.Lifetime())
	return record
}

// DeleteInRecord removes the in-record for the face, if any.
func (e *PitEntry) DeleteInRecord(face uint64) {
	delete(e.inRecords, face)
}

// DeleteOutRecord removes the out-record for the face, if any.
func (e *PitEntry) DeleteOutRecord(face uint64) {
	delete(e.outRecords, face)
}

// ClearInRecords removes all in-records from the PIT entry.
func (e *PitEntry) ClearInRecords() {
	e.inRecords = make(map[uint64]*PitInRecord)
}

// ClearOutRecords removes all out-records from the PIT entry.
func (e *PitEntry) ClearOutRecords() {
	e.outRecords = make(map[uint64]*PitOutRecord)
}

// UpdateExpirationTime sets the expiration time to the latest expiration time of any record in the entry,
// or now if the entry has none.
func (e *PitEntry) UpdateExpirationTime() {
	e.expirationTime = e.pit.clock.Now()
	for _, record := range e.inRecords {
		if record.ExpirationTime.After(e.expirationTime) {
			e.expirationTime = record.ExpirationTime
		}
	}
	for _, record := range e.outRecords {
		if record.ExpirationTime.After(e.expirationTime) {
			e.expirationTime = record.ExpirationTime
		}
	}
}
