/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import "github.com/named-data/inrpp/core"

// referencePacketSize is the packet size in bytes from which pacing intervals are derived.
var referencePacketSize uint64 = 1500

// Configure configures the face system.
func Configure() {
	referencePacketSize = core.GetConfig().Fw.ReferencePacketSize
}
