package mgmt

import (
	"strconv"
	"testing"
	"time"

	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/face"
	"github.com/named-data/inrpp/fw"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	scheduler *sim.Scheduler
	faces     *face.Table
	forwarder *fw.Forwarder
	manager   *Thread
	appFace   uint64
	pacedFace uint64
}

func newTestNode(t *testing.T) *testNode {
	n := new(testNode)
	n.scheduler = sim.NewScheduler()
	n.faces = face.NewTable()
	var err error
	n.forwarder, err = fw.NewForwarder("node", n.scheduler, n.faces)
	require.NoError(t, err)
	n.faces.SetForwarder(n.forwarder)

	n.appFace = n.faces.Add(face.MakeDirectLinkService(face.MakeNullTransport(defn.Local)))
	paced, err := face.MakePacedLinkService(face.MakeNullTransport(defn.NonLocal), face.MakePacedLinkServiceOptions(),
		n.forwarder, 1000000, n.scheduler)
	require.NoError(t, err)
	n.pacedFace = n.faces.Add(paced)
	paced.Run()

	n.manager = MakeMgmtThread(n.forwarder, n.faces, n.scheduler)
	return n
}

func faceParams(faceID uint64) *ControlParameters {
	return &ControlParameters{FaceID: &faceID}
}

func TestCommandDispatch(t *testing.T) {
	n := newTestNode(t)

	assert.Equal(t, uint64(400), n.manager.CommandString("/localhost/nfd/fib", nil).StatusCode)
	assert.Equal(t, uint64(400), n.manager.CommandString("/localhost/other/fib/list", nil).StatusCode)
	assert.Equal(t, uint64(400), n.manager.CommandString("localhost/nfd/fib/list", nil).StatusCode)
	assert.Equal(t, uint64(501), n.manager.CommandString("/localhost/nfd/rib/register", nil).StatusCode)
	assert.Equal(t, uint64(501), n.manager.CommandString("/localhost/nfd/fib/frobnicate", nil).StatusCode)
	assert.True(t, n.manager.CommandString("/localhost/nfd/status/general", nil).OK())
}

func TestFibCommands(t *testing.T) {
	n := newTestNode(t)
	prefix := ndn.MustNameFromString("/a")
	cost := uint64(3)

	response := n.manager.CommandString("/localhost/nfd/fib/add-nexthop",
		&ControlParameters{Name: prefix, FaceID: &n.pacedFace, Cost: &cost})
	require.True(t, response.OK())

	unknown := uint64(99)
	response = n.manager.CommandString("/localhost/nfd/fib/add-nexthop", &ControlParameters{Name: prefix, FaceID: &unknown})
	assert.Equal(t, uint64(410), response.StatusCode)
	response = n.manager.CommandString("/localhost/nfd/fib/add-nexthop", faceParams(n.pacedFace))
	assert.Equal(t, uint64(400), response.StatusCode)

	response = n.manager.CommandString("/localhost/nfd/fib/list", nil)
	require.True(t, response.OK())
	dataset := response.Body.([]FibEntryStatus)
	require.Len(t, dataset, 1)
	assert.Equal(t, "/a", dataset[0].Name)
	assert.Equal(t, []NextHopRecord{{FaceID: n.pacedFace, Cost: 3}}, dataset[0].NextHopRecords)

	response = n.manager.CommandString("/localhost/nfd/fib/remove-nexthop", &ControlParameters{Name: prefix, FaceID: &n.pacedFace})
	require.True(t, response.OK())
	assert.Empty(t, n.forwarder.Fib().GetAllFIBEntries())
}

func TestFaceCommands(t *testing.T) {
	n := newTestNode(t)

	response := n.manager.CommandString("/localhost/nfd/faces/list", nil)
	require.True(t, response.OK())
	dataset := response.Body.([]*FaceStatus)
	require.Len(t, dataset, 2)
	assert.Equal(t, defn.Local, dataset[0].Scope)
	assert.Equal(t, uint64(0), dataset[0].BitRate)
	assert.Equal(t, uint64(1000000), dataset[1].BitRate)
	assert.Equal(t, 12*time.Millisecond, dataset[1].PacingInterval)

	// A drain that misses the Content Store stalls the face
	n.forwarder.OnOutgoingData(ndn.NewData(ndn.MustNameFromString("/a/b"), make([]byte, 500)), n.appFace, n.pacedFace)
	response = n.manager.CommandString("/localhost/nfd/faces/query", faceParams(n.pacedFace))
	require.True(t, response.OK())
	status := response.Body.(*FaceStatus)
	assert.Equal(t, 1, status.BacklogDepth)
	assert.Equal(t, uint64(500), status.QueuedBytes)

	n.scheduler.RunFor(12 * time.Millisecond)
	status = n.manager.CommandString("/localhost/nfd/faces/query", faceParams(n.pacedFace)).Body.(*FaceStatus)
	assert.Equal(t, defn.Stalled, status.CongestionState)
	assert.Equal(t, 0, status.BacklogDepth)
	assert.Equal(t, uint64(1), status.NPacingFires)
	assert.Equal(t, 4*time.Millisecond, status.QueueDelay)
	assert.InDelta(t, float64(4*time.Millisecond), float64(status.QueueDelayAverage), 10)

	require.True(t, n.manager.CommandString("/localhost/nfd/faces/reset-congestion", faceParams(n.pacedFace)).OK())
	assert.Equal(t, defn.Open, n.forwarder.CongestionState(n.pacedFace))

	assert.Equal(t, uint64(400), n.manager.CommandString("/localhost/nfd/faces/query", nil).StatusCode)
	require.True(t, n.manager.CommandString("/localhost/nfd/faces/destroy", faceParams(n.pacedFace)).OK())
	assert.Nil(t, n.faces.Get(n.pacedFace))
	assert.Equal(t, uint64(0), n.forwarder.Backlog().QueuedBytes(n.pacedFace))
	assert.Equal(t, uint64(410), n.manager.CommandString("/localhost/nfd/faces/query", faceParams(n.pacedFace)).StatusCode)
}

func TestContentStoreCommands(t *testing.T) {
	n := newTestNode(t)
	capacity := uint64(10)
	flags := uint64(0)
	mask := CsEnableAdmit

	response := n.manager.CommandString("/localhost/nfd/cs/config", &ControlParameters{Capacity: &capacity, Flags: &flags, Mask: &mask})
	require.True(t, response.OK())
	params := response.Body.(*ControlParameters)
	assert.Equal(t, uint64(10), *params.Capacity)
	assert.Equal(t, CsEnableServe, *params.Flags)
	assert.False(t, n.forwarder.ContentStore().IsAdmitting())

	response = n.manager.CommandString("/localhost/nfd/cs/config", &ControlParameters{Flags: &flags})
	assert.Equal(t, uint64(409), response.StatusCode)

	response = n.manager.CommandString("/localhost/nfd/cs/info", nil)
	require.True(t, response.OK())
	assert.Equal(t, &CsInfo{Capacity: 10, NEntries: 0, Flags: CsEnableServe}, response.Body)
}

func TestGeneralStatus(t *testing.T) {
	n := newTestNode(t)
	n.forwarder.Fib().InsertNextHop(ndn.MustNameFromString("/a"), n.pacedFace, 1)
	n.forwarder.OnIncomingInterest(ndn.NewInterest(ndn.MustNameFromString("/a/1")), n.appFace)
	n.scheduler.RunFor(time.Second)

	response := n.manager.CommandString("/localhost/nfd/status/general", nil)
	require.True(t, response.OK())
	status := response.Body.(*GeneralStatus)
	assert.Equal(t, uint64(1), status.NFibEntries)
	assert.Equal(t, uint64(1), status.NPitEntries)
	assert.Equal(t, uint64(1), status.NInInterests)
	assert.Equal(t, uint64(1), status.NOutInterests)
	assert.Equal(t, sim.Epoch.Add(time.Second), status.CurrentTimestamp)
}

func findMetric(t *testing.T, families []*dto.MetricFamily, name string, faceID uint64) *dto.Metric {
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if faceID == 0 {
				return metric
			}
			for _, label := range metric.GetLabel() {
				if label.GetName() == "face" && label.GetValue() == strconv.FormatUint(faceID, 10) {
					return metric
				}
			}
		}
	}
	require.Fail(t, "metric not found", name)
	return nil
}

func TestCollector(t *testing.T) {
	n := newTestNode(t)
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(n.manager))

	n.forwarder.OnOutgoingData(ndn.NewData(ndn.MustNameFromString("/a/b"), make([]byte, 500)), n.appFace, n.pacedFace)
	n.forwarder.OnOutgoingData(ndn.NewData(ndn.MustNameFromString("/a/c"), make([]byte, 700)), n.appFace, n.pacedFace)
	n.scheduler.RunFor(12 * time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)

	assert.Equal(t, 1.0, findMetric(t, families, "inrpp_drain_misses_total", 0).GetCounter().GetValue())
	assert.Equal(t, 1.0, findMetric(t, families, "inrpp_face_backlog_depth", n.pacedFace).GetGauge().GetValue())
	assert.Equal(t, 1200.0, findMetric(t, families, "inrpp_face_queued_bytes", n.pacedFace).GetGauge().GetValue())
	assert.Equal(t, 1.0, findMetric(t, families, "inrpp_face_stalled", n.pacedFace).GetGauge().GetValue())
	assert.Equal(t, 0.0, findMetric(t, families, "inrpp_face_stalled", n.appFace).GetGauge().GetValue())
	assert.Equal(t, 1.0, findMetric(t, families, "inrpp_face_pacing_fires_total", n.pacedFace).GetCounter().GetValue())
	assert.InDelta(t, 0.0096, findMetric(t, families, "inrpp_face_queue_delay_average_seconds", n.pacedFace).GetGauge().GetValue(), 1e-9)
}
