package face

import (
	"testing"
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drainCall struct {
	faceID  uint64
	bitRate uint64
	at      time.Duration
}

type fakePacer struct {
	scheduler *sim.Scheduler
	calls     []drainCall
	onDrain   func()
}

func (p *fakePacer) DrainRequest(faceID uint64, bitRate uint64) {
	p.calls = append(p.calls, drainCall{faceID, bitRate, p.scheduler.Elapsed()})
	if p.onDrain != nil {
		p.onDrain()
	}
}

func (p *fakePacer) BacklogDepth(faceID uint64) int {
	return 0
}

type fakeForwarder struct {
	interests []*ndn.Interest
	data      []*ndn.Data
	inFaces   []uint64
	removed   []uint64
	onRemoved func(faceID uint64)
}

func (f *fakeForwarder) String() string {
	return "FakeForwarder"
}

func (f *fakeForwarder) OnIncomingInterest(interest *ndn.Interest, inFace uint64) {
	f.interests = append(f.interests, interest)
	f.inFaces = append(f.inFaces, inFace)
}

func (f *fakeForwarder) OnIncomingData(data *ndn.Data, inFace uint64) {
	f.data = append(f.data, data)
	f.inFaces = append(f.inFaces, inFace)
}

func (f *fakeForwarder) OnFaceRemoved(faceID uint64) {
	f.removed = append(f.removed, faceID)
	if f.onRemoved != nil {
		f.onRemoved(faceID)
	}
}

func TestPacingInterval(t *testing.T) {
	interval, err := PacingInterval(1500, 1000000)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(12000000), interval)

	interval, err = PacingInterval(1500, 10000000)
	require.NoError(t, err)
	assert.Equal(t, 1200*time.Microsecond, interval)

	_, err = PacingInterval(1500, 0)
	assert.ErrorIs(t, err, core.ErrInvalidBitRate)
	_, err = PacingInterval(0, 1000000)
	assert.ErrorIs(t, err, core.ErrInvalidPacketSize)
}

func TestMakePacedLinkServiceInvalid(t *testing.T) {
	s := sim.NewScheduler()
	_, err := MakePacedLinkService(MakeNullTransport(defn.NonLocal), MakePacedLinkServiceOptions(), &fakePacer{scheduler: s}, 0, s)
	assert.ErrorIs(t, err, core.ErrInvalidBitRate)
}

func TestPacedLinkServiceDrains(t *testing.T) {
	s := sim.NewScheduler()
	pacer := &fakePacer{scheduler: s}
	fw := &fakeForwarder{}
	table := NewTable()
	table.SetForwarder(fw)

	l, err := MakePacedLinkService(MakeNullTransport(defn.NonLocal), PacedLinkServiceOptions{ReferencePacketSize: 1500}, pacer, 1000000, s)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Millisecond, l.Interval())
	assert.Equal(t, PacingIdle, l.Timer().State())

	id := table.Add(l)
	l.Run()
	assert.Equal(t, PacingArmed, l.Timer().State())

	// Fires re-arm even though nothing is drained
	s.RunFor(36 * time.Millisecond)
	require.Len(t, pacer.calls, 3)
	for i, call := range pacer.calls {
		assert.Equal(t, id, call.faceID)
		assert.Equal(t, uint64(1000000), call.bitRate)
		assert.Equal(t, time.Duration(i+1)*12*time.Millisecond, call.at)
	}
	assert.Equal(t, uint64(3), l.Timer().NFires())

	fw.onRemoved = func(faceID uint64) {
		assert.Equal(t, PacingCancelled, l.Timer().State())
	}
	assert.True(t, table.Remove(id))
	assert.Equal(t, []uint64{id}, fw.removed)
	assert.Equal(t, defn.Down, l.State())
	assert.False(t, l.Timer().Cancel())

	s.RunFor(100 * time.Millisecond)
	assert.Len(t, pacer.calls, 3)
	assert.Equal(t, 0, s.Pending())
}

func TestPacedLinkServiceRemovedDuringDrain(t *testing.T) {
	s := sim.NewScheduler()
	pacer := &fakePacer{scheduler: s}
	table := NewTable()
	table.SetForwarder(&fakeForwarder{})

	l, err := MakePacedLinkService(MakeNullTransport(defn.NonLocal), PacedLinkServiceOptions{ReferencePacketSize: 1500}, pacer, 1000000, s)
	require.NoError(t, err)
	id := table.Add(l)
	l.Run()
	pacer.onDrain = func() {
		table.Remove(id)
	}

	s.Run()
	assert.Len(t, pacer.calls, 1)
	assert.Equal(t, PacingCancelled, l.Timer().State())
}

func TestPointToPointTransport(t *testing.T) {
	s := sim.NewScheduler()
	fwA, fwB := &fakeForwarder{}, &fakeForwarder{}
	tableA, tableB := NewTable(), NewTable()
	tableA.SetForwarder(fwA)
	tableB.SetForwarder(fwB)

	ta, tb := MakePointToPointTransports(s, "A", "B", 5*time.Millisecond)
	la := MakeDirectLinkService(ta)
	lb := MakeDirectLinkService(tb)
	tableA.Add(la)
	tableB.Add(MakeDirectLinkService(MakeNullTransport(defn.Local)))
	idB := tableB.Add(lb)

	assert.Equal(t, defn.NonLocal, la.Scope())
	assert.Equal(t, "sim://B", la.RemoteURI())
	assert.Equal(t, "sim://A", la.LocalURI())

	data := ndn.NewData(ndn.MustNameFromString("/a"), make([]byte, 100))
	tag := uint64(7)
	data.IncomingFaceID = &tag
	la.SendData(data)
	la.SendInterest(ndn.NewInterest(ndn.MustNameFromString("/b")))

	s.RunFor(4 * time.Millisecond)
	assert.Empty(t, fwB.data)

	s.RunFor(time.Millisecond)
	require.Len(t, fwB.data, 1)
	require.Len(t, fwB.interests, 1)
	assert.Nil(t, fwB.data[0].IncomingFaceID)
	assert.Equal(t, []uint64{idB, idB}, fwB.inFaces)
	assert.Equal(t, uint64(1), la.NOutData())
	assert.Equal(t, uint64(1), la.NOutInterests())
	assert.Equal(t, uint64(100), la.NOutBytes())
	assert.Equal(t, uint64(1), lb.NInData())
	assert.Equal(t, uint64(100), lb.NInBytes())

	// Packets in flight towards a closed end are dropped.
	la.SendData(data)
	tableB.Remove(idB)
	s.Run()
	assert.Len(t, fwB.data, 1)
}

func TestInternalTransport(t *testing.T) {
	s := sim.NewScheduler()
	fw := &fakeForwarder{}
	table := NewTable()
	table.SetForwarder(fw)

	l, app := RegisterInternalTransport(table, s, "consumer")
	assert.Equal(t, defn.Local, l.Scope())
	assert.Equal(t, uint64(0), l.BitRate())

	var received []*ndn.Data
	app.SetReceiver(nil, func(data *ndn.Data) { received = append(received, data) })

	app.ExpressInterest(ndn.NewInterest(ndn.MustNameFromString("/a")))
	require.Len(t, fw.interests, 1)
	assert.Equal(t, []uint64{l.FaceID()}, fw.inFaces)

	l.SendData(ndn.NewData(ndn.MustNameFromString("/a"), []byte("x")))
	assert.Empty(t, received)
	s.Run()
	require.Len(t, received, 1)
	assert.Equal(t, "/a", received[0].Name().String())

	// Interests are ignored without a receiver
	l.SendInterest(ndn.NewInterest(ndn.MustNameFromString("/b")))
	s.Run()
}

func TestTable(t *testing.T) {
	table := NewTable()
	a := MakeDirectLinkService(MakeNullTransport(defn.Local))
	b := MakeDirectLinkService(MakeNullTransport(defn.NonLocal))
	assert.Equal(t, uint64(1), table.Add(a))
	assert.Equal(t, uint64(2), table.Add(b))

	assert.Equal(t, a, table.Get(1))
	assert.Nil(t, table.Get(3))
	assert.Nil(t, table.GetFace(3))
	assert.NotNil(t, table.GetFace(2))
	assert.Equal(t, []LinkService{a, b}, table.GetAll())

	// No forwarder set: removal still closes the face
	assert.True(t, table.Remove(1))
	assert.False(t, table.Remove(1))
	assert.Equal(t, defn.Down, a.State())
	assert.Len(t, table.GetAll(), 1)
}

func TestCongestionState(t *testing.T) {
	l := MakeDirectLinkService(MakeNullTransport(defn.NonLocal))
	assert.Equal(t, defn.Open, l.CongestionState())
	l.SetCongestionState(defn.Stalled)
	assert.Equal(t, defn.Stalled, l.CongestionState())
}
