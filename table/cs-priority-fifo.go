/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "container/list"

// CsPriorityFIFO is a priority FIFO replacement policy for the Content Store. Unsolicited entries are evicted
// first, then stale entries, then the remaining entries in order of insertion.
type CsPriorityFIFO struct {
	cs          *Cs
	unsolicited *list.List
	fifo        *list.List
	locations   map[uint64]*list.Element
}

// NewCsPriorityFIFO creates a new priority FIFO replacement policy for the Content Store.
func NewCsPriorityFIFO(cs *Cs) *CsPriorityFIFO {
	p := new(CsPriorityFIFO)
	p.cs = cs
	p.unsolicited = list.New()
	p.fifo = list.New()
	p.locations = make(map[uint64]*list.Element)
	return p
}

func (p *CsPriorityFIFO) queueFor(entry *CsEntry) *list.List {
	if entry.unsolicited {
		return p.unsolicited
	}
	return p.fifo
}

func (p *CsPriorityFIFO) remove(index uint64) {
	location, ok := p.locations[index]
	if !ok {
		return
	}
	// Removing from the wrong list is a no-op in container/list, so try both.
	p.unsolicited.Remove(location)
	p.fifo.Remove(location)
	delete(p.locations, index)
}

// AfterInsert is called after a new entry is inserted into the Content Store.
func (p *CsPriorityFIFO) AfterInsert(entry *CsEntry) {
	p.locations[entry.index] = p.queueFor(entry).PushBack(entry)
}

// AfterRefresh is called after a new data packet refreshes an existing entry in the Content Store.
func (p *CsPriorityFIFO) AfterRefresh(entry *CsEntry) {
	p.remove(entry.index)
	p.AfterInsert(entry)
}

// BeforeErase is called before an entry is erased from the Content Store through management.
func (p *CsPriorityFIFO) BeforeErase(entry *CsEntry) {
	p.remove(entry.index)
}

// BeforeUse is called before an entry in the Content Store is used to satisfy a pending Interest.
func (p *CsPriorityFIFO) BeforeUse(entry *CsEntry) {
	// Position depends on insertion only.
}

// EvictEntries is called to instruct the policy to evict enough entries to reduce the Content Store size below its size limit.
func (p *CsPriorityFIFO) EvictEntries() {
	for len(p.locations) > p.cs.capacity {
		victim := p.selectVictim()
		p.remove(victim.index)
		p.cs.eraseFromReplacementPolicy(victim.index)
	}
}

func (p *CsPriorityFIFO) selectVictim() *CsEntry {
	if p.unsolicited.Len() > 0 {
		return p.unsolicited.Front().Value.(*CsEntry)
	}
	for e := p.fifo.Front(); e != nil; e = e.Next() {
		if entry := e.Value.(*CsEntry); !p.cs.isFresh(entry) {
			return entry
		}
	}
	return p.fifo.Front().Value.(*CsEntry)
}
