/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "time"

// Data represents an NDN Data packet.
//
// IncomingFaceID and HopCount are link-layer tags. They travel with the packet inside the
// forwarder but are not part of the cached object.
type Data struct {
	name            *Name
	content         []byte
	freshnessPeriod time.Duration

	IncomingFaceID *uint64
	HopCount       *uint64
}

// NewData creates a new Data packet with the given name and content.
func NewData(name *Name, content []byte) *Data {
	d := new(Data)
	d.name = name
	d.content = content
	return d
}

func (d *Data) String() string {
	return "Data(" + d.name.String() + ")"
}

// Name returns the name of the Data packet.
func (d *Data) Name() *Name {
	return d.name
}

// Content returns the content of the Data packet.
func (d *Data) Content() []byte {
	return d.content
}

// Size returns the number of content bytes carried by the Data packet.
func (d *Data) Size() int {
	return len(d.content)
}

// FreshnessPeriod returns the freshness period of the Data packet.
func (d *Data) FreshnessPeriod() time.Duration {
	return d.freshnessPeriod
}

// SetFreshnessPeriod sets the freshness period of the Data packet.
func (d *Data) SetFreshnessPeriod(freshness time.Duration) {
	d.freshnessPeriod = freshness
}

// WithoutTags returns a shallow copy of the Data packet with all link-layer tags removed.
// Name and content are shared since packets are immutable once received.
func (d *Data) WithoutTags() *Data {
	out := *d
	out.IncomingFaceID = nil
	out.HopCount = nil
	return &out
}
