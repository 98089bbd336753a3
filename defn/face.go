/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package defn

// InvalidFaceID is never assigned to a face.
const InvalidFaceID uint64 = 0

// LocalhostPrefix is the first component of names restricted to local faces.
const LocalhostPrefix = "localhost"
