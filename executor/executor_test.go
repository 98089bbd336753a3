package executor

import (
	"bytes"
	"testing"
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/face"
	"github.com/named-data/inrpp/mgmt"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineConfig() *core.SimConfig {
	return &core.SimConfig{
		Duration: 2000,
		Nodes:    []string{"A", "B"},
		Links:    []core.LinkConfig{{A: "A", B: "B", BitRate: 1000000, Delay: 1}},
		Consumers: []core.ConsumerConfig{
			{Node: "A", Prefix: "/p", Frequency: 10, MaxSeq: 5},
		},
		Producers: []core.ProducerConfig{
			{Node: "B", Prefix: "/p", PayloadSize: 1000},
		},
	}
}

func dumbbellConfig(frequency float64, maxSeq uint64) *core.SimConfig {
	link := func(a string, b string, bitRate uint64) core.LinkConfig {
		return core.LinkConfig{A: a, B: b, BitRate: bitRate, Delay: 10}
	}
	return &core.SimConfig{
		Duration: 5000,
		Nodes:    []string{"Src1", "Src2", "Rtr1", "Rtr2", "Dst1", "Dst2"},
		Links: []core.LinkConfig{
			link("Src1", "Rtr1", 10000000),
			link("Src2", "Rtr1", 10000000),
			link("Rtr1", "Rtr2", 1000000),
			link("Rtr2", "Dst1", 10000000),
			link("Rtr2", "Dst2", 10000000),
		},
		Consumers: []core.ConsumerConfig{
			{Node: "Src1", Prefix: "/dst1", Frequency: frequency, MaxSeq: maxSeq},
			{Node: "Src2", Prefix: "/dst2", Frequency: frequency, MaxSeq: maxSeq},
		},
		Producers: []core.ProducerConfig{
			{Node: "Dst1", Prefix: "/dst1", PayloadSize: 1495},
			{Node: "Dst2", Prefix: "/dst2", PayloadSize: 1495},
		},
	}
}

func faceTowards(t *testing.T, node *Node, neighbor string) uint64 {
	for _, adj := range node.adjacencies {
		if adj.neighbor == neighbor {
			return adj.faceID
		}
	}
	require.Fail(t, "no adjacency", neighbor)
	return 0
}

func TestLineTopology(t *testing.T) {
	e, err := NewExecutor(lineConfig())
	require.NoError(t, err)

	report, err := e.Run()
	require.NoError(t, err)
	require.Len(t, report.Consumers, 1)
	stats := report.Consumers[0]
	assert.Equal(t, uint64(5), stats.NInterests)
	assert.Equal(t, uint64(5), stats.NData)
	assert.Equal(t, uint64(0), stats.NTimeouts)
	// Two propagation delays plus at most one pacing interval
	assert.Greater(t, stats.AverageRTT(), 2*time.Millisecond)
	assert.LessOrEqual(t, stats.AverageRTT(), 14*time.Millisecond)

	// Both link ends are paced and their backlogs drain completely
	for _, name := range []string{"A", "B"} {
		node := e.Node(name)
		for _, adj := range node.adjacencies {
			_, paced := node.Faces.Get(adj.faceID).(*face.PacedLinkService)
			assert.True(t, paced, name)
			assert.Equal(t, 0, node.Forwarder.BacklogDepth(adj.faceID), name)
			assert.Equal(t, uint64(0), node.Forwarder.Backlog().QueuedBytes(adj.faceID), name)
		}
	}

	b := e.Node("B").Forwarder
	assert.Equal(t, uint64(5), b.NDrainHits)
	assert.Equal(t, uint64(0), b.NDrainMisses)
	assert.Equal(t, uint64(5), e.Producers()[0].NData())
	assert.Equal(t, uint64(5), e.Node("A").Forwarder.NOutData)

	var out bytes.Buffer
	require.NoError(t, report.Write(&out))
	assert.Contains(t, out.String(), "CONSUMER")
	out.Reset()
	require.NoError(t, report.WriteMetrics(&out))
	assert.Contains(t, out.String(), `inrpp_drain_hits_total{node="B"} 5`)
}

func TestRoutes(t *testing.T) {
	e, err := NewExecutor(dumbbellConfig(10, 1))
	require.NoError(t, err)

	src1 := e.Node("Src1")
	hops := src1.Forwarder.Fib().FindNextHops(ndn.MustNameFromString("/dst1/seq=0"))
	require.Len(t, hops, 1)
	assert.Equal(t, faceTowards(t, src1, "Rtr1"), hops[0].Nexthop)
	assert.Equal(t, uint64(3), hops[0].Cost)

	rtr2 := e.Node("Rtr2")
	hops = rtr2.Forwarder.Fib().FindNextHops(ndn.MustNameFromString("/dst2"))
	require.Len(t, hops, 1)
	assert.Equal(t, faceTowards(t, rtr2, "Dst2"), hops[0].Nexthop)
	assert.Equal(t, uint64(1), hops[0].Cost)

	// The producer node routes to its application face
	dst1 := e.Node("Dst1")
	hops = dst1.Forwarder.Fib().FindNextHops(ndn.MustNameFromString("/dst1/seq=0"))
	require.Len(t, hops, 1)
	assert.Equal(t, uint64(0), hops[0].Cost)
	assert.Equal(t, defn.Local, dst1.Faces.Get(hops[0].Nexthop).Scope())
}

func TestDumbbell(t *testing.T) {
	e, err := NewExecutor(dumbbellConfig(100, 50))
	require.NoError(t, err)

	report, err := e.Run()
	require.NoError(t, err)
	for _, stats := range report.Consumers {
		assert.Equal(t, uint64(50), stats.NData, stats.Prefix)
		assert.Equal(t, uint64(0), stats.NTimeouts, stats.Prefix)
	}

	rtr2 := e.Node("Rtr2")
	assert.Equal(t, uint64(100), rtr2.Forwarder.NDrainHits)
	assert.Equal(t, uint64(0), rtr2.Forwarder.NDrainMisses)
	bottleneck := faceTowards(t, rtr2, "Rtr1")
	assert.Equal(t, defn.Open, rtr2.Forwarder.CongestionState(bottleneck))
	assert.Equal(t, 0, rtr2.Forwarder.BacklogDepth(bottleneck))
	assert.Equal(t, uint64(0), rtr2.Forwarder.Backlog().QueuedBytes(bottleneck))
}

func TestDumbbellEvictionStalls(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Tables.ContentStore.Capacity = 1
	core.SetConfig(cfg)
	require.NoError(t, table.Configure())
	defer func() {
		core.SetConfig(core.DefaultConfig())
		require.NoError(t, table.Configure())
	}()

	e, err := NewExecutor(dumbbellConfig(100, 50))
	require.NoError(t, err)
	_, err = e.Run()
	require.NoError(t, err)

	rtr2 := e.Node("Rtr2")
	assert.Greater(t, rtr2.Forwarder.NDrainMisses, uint64(0))
	assert.Equal(t, defn.Stalled, rtr2.Forwarder.CongestionState(faceTowards(t, rtr2, "Rtr1")))
	assert.Greater(t, e.Producers()[0].NData()+e.Producers()[1].NData(), uint64(100))
}

func TestSampleConfig(t *testing.T) {
	defer core.SetConfig(core.DefaultConfig())
	require.NoError(t, core.LoadConfig("testdata/dumbbell.toml"))

	e, err := NewExecutor(&core.GetConfig().Sim)
	require.NoError(t, err)
	assert.Len(t, e.Consumers(), 2)
	assert.Len(t, e.Producers(), 2)

	rtr1 := e.Node("Rtr1")
	bottleneck := mgmt.MakeFaceStatus(rtr1.Forwarder, rtr1.Faces.Get(faceTowards(t, rtr1, "Rtr2")))
	assert.Equal(t, uint64(1000000), bottleneck.BitRate)
	assert.Equal(t, 12*time.Millisecond, bottleneck.PacingInterval)
}

func TestConfigErrors(t *testing.T) {
	cfg := lineConfig()
	cfg.Links[0].B = "Z"
	_, err := NewExecutor(cfg)
	assert.ErrorIs(t, err, core.ErrUnknownNode)

	cfg = lineConfig()
	cfg.Links[0].BitRate = 0
	_, err = NewExecutor(cfg)
	assert.ErrorIs(t, err, core.ErrInvalidBitRate)

	cfg = lineConfig()
	cfg.Nodes = append(cfg.Nodes, "A")
	_, err = NewExecutor(cfg)
	assert.Error(t, err)

	cfg = lineConfig()
	cfg.Consumers[0].Frequency = 0
	_, err = NewExecutor(cfg)
	assert.Error(t, err)

	cfg = lineConfig()
	cfg.Producers[0].Prefix = "p"
	_, err = NewExecutor(cfg)
	assert.Error(t, err)
}
