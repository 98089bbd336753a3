package table

import (
	"testing"
	"time"

	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeData(name string, size int) *ndn.Data {
	return ndn.NewData(ndn.MustNameFromString(name), make([]byte, size))
}

func hits(cs ContentStore, name string) bool {
	hit := false
	cs.Find(ndn.MustNameFromString(name),
		func(*ndn.Name, *ndn.Data) { hit = true },
		func(*ndn.Name) { hit = false })
	return hit
}

func TestCsFind(t *testing.T) {
	s := sim.NewScheduler()
	cs, err := NewCsWithPolicy(s, "lru", 10)
	require.NoError(t, err)

	cs.Insert(makeData("/a/b", 100))
	assert.Equal(t, 1, cs.Size())
	assert.Equal(t, 10, cs.Capacity())

	var found *ndn.Data
	missed := false
	cs.Find(ndn.MustNameFromString("/a/b"),
		func(name *ndn.Name, data *ndn.Data) { found = data },
		func(*ndn.Name) { missed = true })
	require.NotNil(t, found)
	assert.False(t, missed)
	assert.Equal(t, 100, found.Size())

	// Find is exact match only
	assert.False(t, hits(cs, "/a"))
	assert.False(t, hits(cs, "/a/b/c"))

	assert.True(t, cs.Erase(ndn.MustNameFromString("/a/b")))
	assert.False(t, cs.Erase(ndn.MustNameFromString("/a/b")))
	assert.False(t, hits(cs, "/a/b"))
	assert.Equal(t, 0, cs.Size())
}

func TestCsUnknownPolicy(t *testing.T) {
	_, err := NewCsWithPolicy(sim.NewScheduler(), "random", 10)
	assert.Error(t, err)
}

func TestCsLRUEviction(t *testing.T) {
	s := sim.NewScheduler()
	cs, err := NewCsWithPolicy(s, "lru", 2)
	require.NoError(t, err)

	cs.Insert(makeData("/a", 1))
	cs.Insert(makeData("/b", 1))
	assert.True(t, hits(cs, "/a")) // /b becomes least recently used
	cs.Insert(makeData("/c", 1))

	assert.Equal(t, 2, cs.Size())
	assert.True(t, hits(cs, "/a"))
	assert.False(t, hits(cs, "/b"))
	assert.True(t, hits(cs, "/c"))

	cs.SetCapacity(1)
	assert.Equal(t, 1, cs.Size())
	assert.True(t, hits(cs, "/c"))
}

func TestCsPriorityFIFOEviction(t *testing.T) {
	s := sim.NewScheduler()
	cs, err := NewCsWithPolicy(s, "priority_fifo", 3)
	require.NoError(t, err)

	fresh := makeData("/fresh", 1)
	fresh.SetFreshnessPeriod(time.Hour)
	cs.Insert(fresh)
	cs.Insert(makeData("/stale", 1)) // zero freshness is stale immediately
	cs.InsertUnsolicited(makeData("/unsolicited", 1))

	cs.Insert(makeData("/next", 1))
	assert.False(t, hits(cs, "/unsolicited"))

	cs.Insert(makeData("/last", 1))
	assert.False(t, hits(cs, "/stale"))
	assert.True(t, hits(cs, "/fresh"))
	assert.Equal(t, 3, cs.Size())
}

func TestCsRefresh(t *testing.T) {
	s := sim.NewScheduler()
	cs, err := NewCsWithPolicy(s, "priority_fifo", 2)
	require.NoError(t, err)

	cs.InsertUnsolicited(makeData("/a", 1))
	cs.Insert(makeData("/a", 5))
	assert.Equal(t, 1, cs.Size())
	cs.Find(ndn.MustNameFromString("/a"),
		func(name *ndn.Name, data *ndn.Data) { assert.Equal(t, 5, data.Size()) },
		func(*ndn.Name) { t.Fail() })

	// The solicited copy is no longer first in line for eviction.
	cs.InsertUnsolicited(makeData("/b", 1))
	cs.Insert(makeData("/c", 1))
	assert.True(t, hits(cs, "/a"))
	assert.False(t, hits(cs, "/b"))
}

func TestCsFindMatchingData(t *testing.T) {
	s := sim.NewScheduler()
	cs, err := NewCsWithPolicy(s, "lru", 10)
	require.NoError(t, err)

	d := makeData("/a/b/1", 10)
	d.SetFreshnessPeriod(time.Second)
	cs.Insert(d)
	cs.Insert(makeData("/a/b/2", 10))

	exact := ndn.NewInterest(ndn.MustNameFromString("/a/b"))
	assert.Nil(t, cs.FindMatchingData(exact))

	prefix := ndn.NewInterest(ndn.MustNameFromString("/a/b"))
	prefix.SetCanBePrefix(true)
	match := cs.FindMatchingData(prefix)
	require.NotNil(t, match)
	assert.Equal(t, "/a/b/1", match.Name().String())

	fresh := ndn.NewInterest(ndn.MustNameFromString("/a/b/1"))
	fresh.SetMustBeFresh(true)
	assert.NotNil(t, cs.FindMatchingData(fresh))
	s.RunFor(2 * time.Second)
	assert.Nil(t, cs.FindMatchingData(fresh))
}

func TestCsAdmitServe(t *testing.T) {
	s := sim.NewScheduler()
	cs, err := NewCsWithPolicy(s, "lru", 10)
	require.NoError(t, err)

	cs.SetAdmitting(false)
	cs.Insert(makeData("/a", 1))
	assert.Equal(t, 0, cs.Size())

	cs.SetAdmitting(true)
	cs.Insert(makeData("/a", 1))
	cs.SetServing(false)
	assert.False(t, hits(cs, "/a"))
	assert.False(t, cs.IsServing())
	assert.True(t, cs.IsAdmitting())
}
