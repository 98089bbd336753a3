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
	"github.com/pkg/errors"
)

// Clock supplies the current time to the tables. In the simulator it is the virtual clock of the scheduler.
type Clock interface {
	Now() time.Time
}

// deadNonceListLifetime is the lifetime of entries in the dead nonce list.
var deadNonceListLifetime = 6 * time.Second

// csCapacity contains the default capacity of each forwarder's Content Store.
var csCapacity = 1000

// csAdmit determines whether contents will be admitted to the Content Store.
var csAdmit = true

// csServe determines whether contents will be served from the Content Store.
var csServe = true

// csReplacementPolicy contains the replacement policy used by Content Stores in the forwarder.
var csReplacementPolicy = "priority_fifo"

// Configure configures the tables from the active configuration.
func Configure() error {
	cfg := core.GetConfig()

	// Content Store
	csCapacity = cfg.Tables.ContentStore.Capacity
	csAdmit = cfg.Tables.ContentStore.Admit
	csServe = cfg.Tables.ContentStore.Serve
	switch cfg.Tables.ContentStore.ReplacementPolicy {
	case "lru", "priority_fifo":
		csReplacementPolicy = cfg.Tables.ContentStore.ReplacementPolicy
	default:
		return errors.Wrapf(core.ErrUnknownPolicy, "content store replacement policy %q",
			cfg.Tables.ContentStore.ReplacementPolicy)
	}

	// Dead Nonce List
	deadNonceListLifetime = time.Duration(cfg.Tables.DeadNonceList.Lifetime) * time.Millisecond
	return nil
}

// CsCapacity returns the configured CS capacity.
func CsCapacity() int {
	return csCapacity
}
