/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"

	"github.com/named-data/inrpp/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameCreate(t *testing.T) {
	n := ndn.NewName()
	assert.NotNil(t, n)
	assert.Equal(t, 0, n.Size())
	assert.Equal(t, "/", n.String())
}

func TestNameFromString(t *testing.T) {
	n, err := ndn.NameFromString("/go/ndn")
	require.NoError(t, err)
	assert.Equal(t, 2, n.Size())
	assert.Equal(t, ndn.GenericNameComponent, n.At(0).Typ)
	assert.Equal(t, []byte("go"), n.At(0).Val)
	assert.Equal(t, "ndn", n.At(1).String())
	assert.Equal(t, "/go/ndn", n.String())

	n, err = ndn.NameFromString("/221=go/seq=300/%2Fslash")
	require.NoError(t, err)
	assert.Equal(t, 3, n.Size())
	assert.Equal(t, uint16(221), n.At(0).Typ)
	assert.Equal(t, "221=go", n.At(0).String())
	assert.Equal(t, ndn.SequenceNumNameComponent, n.At(1).Typ)
	assert.Equal(t, uint64(300), n.At(1).Number())
	assert.Equal(t, []byte("/slash"), n.At(2).Val)
	assert.Equal(t, "/221=go/seq=300/%2Fslash", n.String())

	// Escapes are printed in upper case and parsed in either case
	n, err = ndn.NameFromString("/%ab%20x")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xab, ' ', 'x'}, n.At(0).Val)
	assert.Equal(t, "/%AB%20x", n.String())

	n, err = ndn.NameFromString("/")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Size())

	_, err = ndn.NameFromString("no-slash")
	assert.Error(t, err)
	_, err = ndn.NameFromString("/seq=abc")
	assert.Error(t, err)
	_, err = ndn.NameFromString("/a/%4")
	assert.Error(t, err)
}

func TestNameEqualsAndPrefix(t *testing.T) {
	ab := ndn.MustNameFromString("/a/b")
	abc := ndn.MustNameFromString("/a/b/c")
	ab2 := ndn.MustNameFromString("/a/b")

	assert.True(t, ab.Equals(ab2))
	assert.False(t, ab.Equals(abc))
	assert.True(t, ab.PrefixOf(abc))
	assert.True(t, ab.PrefixOf(ab2))
	assert.False(t, abc.PrefixOf(ab))
	assert.True(t, ndn.NewName().PrefixOf(ab))

	assert.True(t, abc.Prefix(2).Equals(ab))
	assert.True(t, abc.Prefix(-1).Equals(ab))
	assert.Equal(t, 3, abc.Prefix(10).Size())
	assert.Equal(t, "c", abc.At(-1).String())
}

func TestNameHash(t *testing.T) {
	ab := ndn.MustNameFromString("/a/b")
	abc := ndn.MustNameFromString("/a/b/c")

	assert.Equal(t, ab.Hash(), ndn.MustNameFromString("/a/b").Hash())
	assert.NotEqual(t, ab.Hash(), abc.Hash())
	assert.Equal(t, ab.Hash(), abc.PrefixHash(2))
	// Component boundaries are part of the hash
	assert.NotEqual(t, ndn.MustNameFromString("/ab/c").Hash(), ndn.MustNameFromString("/a/bc").Hash())
}

func TestNameDeepCopy(t *testing.T) {
	n := ndn.MustNameFromString("/a/b")
	c := n.DeepCopy()
	assert.True(t, n.Equals(c))
	c.At(0).Val[0] = 'z'
	assert.Equal(t, "/a/b", n.String())
}

func TestNameLocalhost(t *testing.T) {
	assert.True(t, ndn.MustNameFromString("/localhost/nfd").IsLocalhost())
	assert.False(t, ndn.MustNameFromString("/localhop/nfd").IsLocalhost())
	assert.False(t, ndn.NewName().IsLocalhost())
}

func TestInterestMatchesData(t *testing.T) {
	interest := ndn.NewInterest(ndn.MustNameFromString("/a"))
	data := ndn.NewData(ndn.MustNameFromString("/a/b"), []byte("hello"))
	assert.False(t, interest.MatchesData(data))
	interest.SetCanBePrefix(true)
	assert.True(t, interest.MatchesData(data))
	assert.Equal(t, 5, data.Size())

	faceID := uint64(4)
	data.IncomingFaceID = &faceID
	stripped := data.WithoutTags()
	assert.Nil(t, stripped.IncomingFaceID)
	assert.NotNil(t, data.IncomingFaceID)
	assert.True(t, stripped.Name().Equals(data.Name()))
}
