/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package sim

// Token is a liveness token shared between an owner and the callbacks it schedules. Callbacks check Alive before
// touching state the owner may have released.
type Token struct {
	revoked bool
}

// NewToken returns a live token.
func NewToken() *Token {
	return new(Token)
}

// Alive returns whether the token has not been revoked.
func (t *Token) Alive() bool {
	return t != nil && !t.revoked
}

// Revoke marks the token dead. Returns false if it was already revoked.
func (t *Token) Revoke() bool {
	if t.revoked {
		return false
	}
	t.revoked = true
	return true
}
