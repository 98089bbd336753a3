/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/pkg/errors"
)

// defaultInterestLifetime is the lifetime of Interests the forwarder originates itself.
var defaultInterestLifetime = 4 * time.Second

// stragglerTime is how long a satisfied PIT entry lingers before removal.
var stragglerTime = 100 * time.Millisecond

// unsolicitedPolicy is the name of the policy applied to Data matching no PIT entry.
var unsolicitedPolicy = "drop-all"

// Configure configures the forwarding system.
func Configure() error {
	cfg := core.GetConfig()
	defaultInterestLifetime = time.Duration(cfg.Fw.DefaultInterestLifetime) * time.Millisecond
	stragglerTime = time.Duration(cfg.Tables.Pit.StragglerTime) * time.Millisecond
	if _, err := NewUnsolicitedDataPolicy(cfg.Fw.UnsolicitedPolicy); err != nil {
		return errors.Wrap(err, "unable to configure forwarder")
	}
	unsolicitedPolicy = cfg.Fw.UnsolicitedPolicy
	return nil
}
