/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"math/rand"
	"strconv"
	"time"
)

// DefaultInterestLifetime is the lifetime of an Interest that does not specify one.
const DefaultInterestLifetime = 4 * time.Second

// Interest represents an NDN Interest packet.
type Interest struct {
	name        *Name
	canBePrefix bool
	mustBeFresh bool
	nonce       uint32
	lifetime    time.Duration

	IncomingFaceID *uint64
}

// NewInterest creates a new Interest packet with the given name and a random nonce.
func NewInterest(name *Name) *Interest {
	i := new(Interest)
	i.name = name
	i.nonce = rand.Uint32()
	i.lifetime = DefaultInterestLifetime
	return i
}

func (i *Interest) String() string {
	return "Interest(" + i.name.String() + ", nonce=" + strconv.FormatUint(uint64(i.nonce), 16) + ")"
}

// Name returns the name of the Interest packet.
func (i *Interest) Name() *Name {
	return i.name
}

// CanBePrefix returns whether the Interest can be satisfied by Data whose name it is a prefix of.
func (i *Interest) CanBePrefix() bool {
	return i.canBePrefix
}

// SetCanBePrefix sets the CanBePrefix selector.
func (i *Interest) SetCanBePrefix(canBePrefix bool) {
	i.canBePrefix = canBePrefix
}

// MustBeFresh returns whether the Interest can only be satisfied by fresh Data.
func (i *Interest) MustBeFresh() bool {
	return i.mustBeFresh
}

// SetMustBeFresh sets the MustBeFresh selector.
func (i *Interest) SetMustBeFresh(mustBeFresh bool) {
	i.mustBeFresh = mustBeFresh
}

// Nonce returns the nonce of the Interest.
func (i *Interest) Nonce() uint32 {
	return i.nonce
}

// SetNonce sets the nonce of the Interest.
func (i *Interest) SetNonce(nonce uint32) {
	i.nonce = nonce
}

// Lifetime returns the lifetime of the Interest.
func (i *Interest) Lifetime() time.Duration {
	return i.lifetime
}

// SetLifetime sets the lifetime of the Interest.
func (i *Interest) SetLifetime(lifetime time.Duration) {
	i.lifetime = lifetime
}

// MatchesData returns whether the Data packet satisfies the Interest.
func (i *Interest) MatchesData(data *Data) bool {
	if i.canBePrefix {
		return i.name.PrefixOf(data.Name())
	}
	return i.name.Equals(data.Name())
}

// WithoutTags returns a shallow copy of the Interest with all link-layer tags removed.
func (i *Interest) WithoutTags() *Interest {
	out := *i
	out.IncomingFaceID = nil
	return &out
}
