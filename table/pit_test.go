package table

import (
	"testing"
	"time"

	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitInsertInterest(t *testing.T) {
	s := sim.NewScheduler()
	pit := NewPit(s)

	interest := ndn.NewInterest(ndn.MustNameFromString("/a/b"))
	entry, existed := pit.InsertInterest(interest)
	assert.False(t, existed)
	assert.Equal(t, 1, pit.Size())

	again, existed := pit.InsertInterest(ndn.NewInterest(ndn.MustNameFromString("/a/b")))
	assert.True(t, existed)
	assert.Same(t, entry, again)

	prefix := ndn.NewInterest(ndn.MustNameFromString("/a/b"))
	prefix.SetCanBePrefix(true)
	other, existed := pit.InsertInterest(prefix)
	assert.False(t, existed)
	assert.NotSame(t, entry, other)
	assert.Equal(t, 2, pit.Size())

	assert.Same(t, entry, pit.FindOrInsert(ndn.MustNameFromString("/a/b")))

	assert.True(t, pit.Remove(entry))
	assert.False(t, pit.Remove(entry))
	assert.Equal(t, 1, pit.Size())
}

func TestPitFindAllDataMatches(t *testing.T) {
	s := sim.NewScheduler()
	pit := NewPit(s)

	exact, _ := pit.InsertInterest(ndn.NewInterest(ndn.MustNameFromString("/a/b")))
	shortExact, _ := pit.InsertInterest(ndn.NewInterest(ndn.MustNameFromString("/a")))
	prefixInterest := ndn.NewInterest(ndn.MustNameFromString("/a"))
	prefixInterest.SetCanBePrefix(true)
	prefix, _ := pit.InsertInterest(prefixInterest)
	pit.InsertInterest(ndn.NewInterest(ndn.MustNameFromString("/c")))

	matches := pit.FindAllDataMatches(makeData("/a/b", 1))
	require.Len(t, matches, 2)
	assert.Same(t, prefix, matches[0])
	assert.Same(t, exact, matches[1])

	matches = pit.FindAllDataMatches(makeData("/a", 1))
	assert.ElementsMatch(t, []*PitEntry{shortExact, prefix}, matches)

	assert.Empty(t, pit.FindAllDataMatches(makeData("/d", 1)))
}

func TestPitRecords(t *testing.T) {
	s := sim.NewScheduler()
	pit := NewPit(s)
	interest := ndn.NewInterest(ndn.MustNameFromString("/a"))
	interest.SetLifetime(time.Second)
	entry, _ := pit.InsertInterest(interest)

	record, existed := entry.InsertInRecord(interest, 3)
	assert.False(t, existed)
	assert.Equal(t, uint64(3), record.Face)
	assert.Equal(t, interest.Nonce(), record.LatestNonce)
	assert.Equal(t, sim.Epoch.Add(time.Second), record.ExpirationTime)

	s.RunFor(500 * time.Millisecond)
	_, existed = entry.InsertInRecord(interest, 3)
	assert.True(t, existed)
	assert.Len(t, entry.InRecords(), 1)

	out := entry.InsertOutRecord(interest, 4)
	assert.Equal(t, uint64(4), out.Face)
	assert.Len(t, entry.OutRecords(), 1)

	entry.UpdateExpirationTime()
	assert.Equal(t, sim.Epoch.Add(1500*time.Millisecond), entry.ExpirationTime())

	entry.DeleteOutRecord(4)
	assert.Empty(t, entry.OutRecords())
	entry.ClearInRecords()
	assert.Empty(t, entry.InRecords())

	entry.UpdateExpirationTime()
	assert.Equal(t, s.Now(), entry.ExpirationTime())

	entry.SetSatisfied(true)
	assert.True(t, entry.Satisfied())
}
