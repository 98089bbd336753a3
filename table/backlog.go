/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"container/list"
	"math"
	"math/bits"
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/ndn"
	"golang.org/x/exp/slices"
)

// BacklogItem is a Data packet held for a paced face. Only the name is kept: the content is fetched from the
// Content Store when the item is drained.
type BacklogItem struct {
	Name          *ndn.Name
	RequesterFace uint64 // face the Data arrived on, where a re-request goes if it is evicted meanwhile
	Size          int
	EnqueuedAt    time.Time
}

type linkBacklog struct {
	items       *list.List
	queuedBytes uint64
}

// Backlog tracks the per-face FIFO of Data awaiting paced transmission and the bytes queued on each face.
// Warning: All functions must be called on the scheduler goroutine.
type Backlog struct {
	links map[uint64]*linkBacklog
}

// NewBacklog creates an empty backlog tracker.
func NewBacklog() *Backlog {
	b := new(Backlog)
	b.links = make(map[uint64]*linkBacklog)
	return b
}

// Enqueue appends the item to the tail of the face's backlog and adds its size to the face's queued bytes.
func (b *Backlog) Enqueue(face uint64, item BacklogItem) {
	link, ok := b.links[face]
	if !ok {
		link = &linkBacklog{items: list.New()}
		b.links[face] = link
	}
	link.items.PushBack(item)
	if item.Size > 0 {
		link.queuedBytes += uint64(item.Size)
	}
}

// PeekOldest returns the head of the face's backlog without removing it.
func (b *Backlog) PeekOldest(face uint64) (BacklogItem, bool) {
	link, ok := b.links[face]
	if !ok || link.items.Len() == 0 {
		return BacklogItem{}, false
	}
	return link.items.Front().Value.(BacklogItem), true
}

// PopOldest removes and returns the head of the face's backlog. Queued bytes are left untouched: they are
// released by AccountDelivered once the item is actually sent.
func (b *Backlog) PopOldest(face uint64) (BacklogItem, bool) {
	link, ok := b.links[face]
	if !ok || link.items.Len() == 0 {
		return BacklogItem{}, false
	}
	return link.items.Remove(link.items.Front()).(BacklogItem), true
}

// AccountDelivered subtracts size from the face's queued bytes, clamping at zero.
func (b *Backlog) AccountDelivered(face uint64, size int) {
	link, ok := b.links[face]
	if !ok || size <= 0 {
		return
	}
	if uint64(size) > link.queuedBytes {
		core.RaiseInvariant("Backlog", "byte-underflow", "FaceID=", face, " delivered ", size,
			" bytes with ", link.queuedBytes, " queued")
		link.queuedBytes = 0
	} else {
		link.queuedBytes -= uint64(size)
	}
}

// QueuedBytes returns the bytes enqueued on the face and not yet accounted as delivered.
func (b *Backlog) QueuedBytes(face uint64) uint64 {
	if link, ok := b.links[face]; ok {
		return link.queuedBytes
	}
	return 0
}

// Depth returns the number of items in the face's backlog.
func (b *Backlog) Depth(face uint64) int {
	if link, ok := b.links[face]; ok {
		return link.items.Len()
	}
	return 0
}

const maxDuration = time.Duration(math.MaxInt64)

// EstimatedQueueDelay returns the time needed to transmit the face's queued bytes at the given bit rate, saturating
// at the largest Duration.
func (b *Backlog) EstimatedQueueDelay(face uint64, bitRate uint64) time.Duration {
	if bitRate == 0 {
		return 0
	}
	queuedBytes := b.QueuedBytes(face)
	if queuedBytes > math.MaxUint64/8 {
		return maxDuration
	}
	// 128-bit product, so large backlogs do not wrap
	hi, lo := bits.Mul64(queuedBytes*8, uint64(time.Second))
	if hi >= bitRate {
		return maxDuration
	}
	nanoseconds, _ := bits.Div64(hi, lo, bitRate)
	if nanoseconds > uint64(maxDuration) {
		return maxDuration
	}
	return time.Duration(nanoseconds)
}

// Discard drops all backlog state of the face, returning the number of items discarded.
func (b *Backlog) Discard(face uint64) int {
	link, ok := b.links[face]
	if !ok {
		return 0
	}
	delete(b.links, face)
	return link.items.Len()
}

// Faces returns the IDs of faces with backlog state, in ascending order.
func (b *Backlog) Faces() []uint64 {
	faces := make([]uint64, 0, len(b.links))
	for face := range b.links {
		faces = append(faces, face)
	}
	slices.Sort(faces)
	return faces
}
