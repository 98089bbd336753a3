/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/cornelk/hashmap"
)

// Measurements is a measurements table keyed by string. Values may be read from management goroutines while the
// forwarder writes them.
type Measurements struct {
	table hashmap.HashMap
}

// NewMeasurements creates an empty measurements table.
func NewMeasurements() *Measurements {
	return new(Measurements)
}

// Get returns the measurement table value at the specified key or nil if it does not exist.
func (m *Measurements) Get(key string) interface{} {
	value, isOk := m.table.GetStringKey(key)
	if !isOk {
		return nil
	}
	return value
}

// Store unconditionally sets the value of the specified key.
func (m *Measurements) Store(key string, value interface{}) {
	m.table.Set(key, value)
}

// AddSampleToEWMA folds a sample into the exponentially weighted moving average stored at the key, starting the
// average at the first sample. Returns the new average. Only the forwarder writes averages.
func (m *Measurements) AddSampleToEWMA(key string, measurement float64, alpha float64) float64 {
	average := measurement
	if previous, ok := m.Get(key).(float64); ok {
		average = previous + alpha*(measurement-previous)
	}
	m.table.Set(key, average)
	return average
}

// Delete removes the specified key.
func (m *Measurements) Delete(key string) {
	m.table.Del(key)
}

// Len returns the number of keys in the table.
func (m *Measurements) Len() int {
	return m.table.Len()
}
