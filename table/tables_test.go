package table

import (
	"testing"
	"time"

	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
	"github.com/stretchr/testify/assert"
)

func TestDeadNonceList(t *testing.T) {
	s := sim.NewScheduler()
	dnl := NewDeadNonceList(s)
	name := ndn.MustNameFromString("/a/b")

	assert.False(t, dnl.Find(name, 1))
	assert.False(t, dnl.Insert(name, 1))
	assert.True(t, dnl.Find(name, 1))
	assert.True(t, dnl.Insert(name, 1))
	assert.False(t, dnl.Find(name, 2))
	assert.False(t, dnl.Find(ndn.MustNameFromString("/a"), 1))
	assert.Equal(t, 1, dnl.Size())

	s.RunFor(deadNonceListLifetime + time.Millisecond)
	assert.False(t, dnl.Find(name, 1))
	assert.Equal(t, 0, dnl.Size())
}

func TestMeasurements(t *testing.T) {
	m := NewMeasurements()
	assert.Nil(t, m.Get("missing"))

	assert.Equal(t, 10.0, m.AddSampleToEWMA("rtt", 10, 0.5))
	assert.Equal(t, 15.0, m.AddSampleToEWMA("rtt", 20, 0.5))
	assert.Equal(t, 15.0, m.Get("rtt"))

	m.Store("delay", time.Millisecond)
	assert.Equal(t, time.Millisecond, m.Get("delay"))
	m.Store("delay", 2*time.Millisecond)
	m.Store("delay", 3*time.Millisecond)
	assert.Equal(t, 3*time.Millisecond, m.Get("delay"))
	assert.Equal(t, 2, m.Len())

	m.Delete("rtt")
	assert.Nil(t, m.Get("rtt"))
	assert.Equal(t, 1, m.Len())
}

func TestFib(t *testing.T) {
	fib := NewFib()
	fib.InsertNextHop(ndn.MustNameFromString("/a"), 1, 10)
	fib.InsertNextHop(ndn.MustNameFromString("/a/b"), 2, 5)
	fib.InsertNextHop(ndn.MustNameFromString("/a/b"), 3, 1)
	fib.InsertNextHop(ndn.MustNameFromString("/a/b"), 3, 7)

	hops := fib.FindNextHops(ndn.MustNameFromString("/a/b/c"))
	assert.Len(t, hops, 2)
	assert.Equal(t, uint64(7), hops[1].Cost)

	hops = fib.FindNextHops(ndn.MustNameFromString("/a/x"))
	assert.Len(t, hops, 1)
	assert.Equal(t, uint64(1), hops[0].Nexthop)

	assert.Nil(t, fib.FindNextHops(ndn.MustNameFromString("/z")))

	fib.RemoveNextHopsByFace(2)
	fib.RemoveNextHopsByFace(3)
	hops = fib.FindNextHops(ndn.MustNameFromString("/a/b/c"))
	assert.Len(t, hops, 1)
	assert.Equal(t, uint64(1), hops[0].Nexthop)
	assert.Len(t, fib.GetAllFIBEntries(), 1)

	fib.InsertNextHop(ndn.NewName(), 9, 0)
	assert.Equal(t, uint64(9), fib.FindNextHops(ndn.MustNameFromString("/z"))[0].Nexthop)
	entries := fib.GetAllFIBEntries()
	assert.Equal(t, "/", entries[0].Name.String())
}
