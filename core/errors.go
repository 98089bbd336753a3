/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "errors"

// Error definitions
var (
	ErrInvalidBitRate    = errors.New("bit rate must be positive")
	ErrInvalidPacketSize = errors.New("reference packet size must be positive")
	ErrUnknownPolicy     = errors.New("unknown policy")
	ErrUnknownNode       = errors.New("unknown node")
	ErrUnknownFormat     = errors.New("unknown configuration file format")
	ErrNameInvalid       = errors.New("name is not valid")
)
