/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/dispatch"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/sim"
	"github.com/named-data/inrpp/table"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Counters are the packet counters of a forwarder.
type Counters struct {
	NInInterests          uint64
	NInData               uint64
	NOutInterests         uint64
	NOutData              uint64
	NSatisfiedInterests   uint64
	NUnsatisfiedInterests uint64
	NUnsolicitedData      uint64
	NDrainHits            uint64
	NDrainMisses          uint64
}

// Forwarder is the forwarding engine of a node. Data sent towards non-local faces is held in a per-face backlog
// and drained by the faces' pacing timers; Data sent towards local faces goes out at once.
//
// Warning: All functions must be called on the scheduler goroutine.
type Forwarder struct {
	name          string
	scheduler     *sim.Scheduler
	faces         dispatch.FaceTable
	pit           *table.Pit
	cs            table.ContentStore
	fib           *table.Fib
	deadNonceList *table.DeadNonceList
	backlog       *table.Backlog
	congestion    *CongestionSignal
	measurements  *table.Measurements
	strategy      Strategy
	unsolicited   UnsolicitedDataPolicy

	Counters
}

// NewForwarder creates a forwarder with a Content Store built from the configuration.
func NewForwarder(name string, scheduler *sim.Scheduler, faces dispatch.FaceTable) (*Forwarder, error) {
	cs, err := table.NewCs(scheduler)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create forwarder %s", name)
	}
	return NewForwarderWithContentStore(name, scheduler, faces, cs)
}

// NewForwarderWithContentStore creates a forwarder around the given Content Store.
func NewForwarderWithContentStore(name string, scheduler *sim.Scheduler, faces dispatch.FaceTable, cs table.ContentStore) (*Forwarder, error) {
	policy, err := NewUnsolicitedDataPolicy(unsolicitedPolicy)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create forwarder %s", name)
	}

	f := new(Forwarder)
	f.name = name
	f.scheduler = scheduler
	f.faces = faces
	f.pit = table.NewPit(scheduler)
	f.cs = cs
	f.fib = table.NewFib()
	f.deadNonceList = table.NewDeadNonceList(scheduler)
	f.backlog = table.NewBacklog()
	f.congestion = NewCongestionSignal()
	f.measurements = table.NewMeasurements()
	f.strategy = NewBestRoute(f)
	f.unsolicited = policy
	return f, nil
}

func (f *Forwarder) String() string {
	return "Forwarder-" + f.name
}

// Name returns the name of the node the forwarder runs on.
func (f *Forwarder) Name() string {
	return f.name
}

// Pit returns the PIT of the forwarder.
func (f *Forwarder) Pit() *table.Pit {
	return f.pit
}

// ContentStore returns the Content Store of the forwarder.
func (f *Forwarder) ContentStore() table.ContentStore {
	return f.cs
}

// Fib returns the FIB of the forwarder.
func (f *Forwarder) Fib() *table.Fib {
	return f.fib
}

// Backlog returns the backlog tracker of the forwarder.
func (f *Forwarder) Backlog() *table.Backlog {
	return f.backlog
}

// Congestion returns the congestion signal of the forwarder.
func (f *Forwarder) Congestion() *CongestionSignal {
	return f.congestion
}

// Measurements returns the measurements table of the forwarder.
func (f *Forwarder) Measurements() *table.Measurements {
	return f.measurements
}

// SetUnsolicitedDataPolicy replaces the policy applied to unsolicited Data.
func (f *Forwarder) SetUnsolicitedDataPolicy(policy UnsolicitedDataPolicy) {
	f.unsolicited = policy
}

func isViolatingLocalhost(face dispatch.Face, name *ndn.Name) bool {
	return face.Scope() == defn.NonLocal && name.IsLocalhost()
}

// OnIncomingInterest is the incoming Interest pipeline.
func (f *Forwarder) OnIncomingInterest(interest *ndn.Interest, inFace uint64) {
	incomingFace := f.faces.GetFace(inFace)
	if incomingFace == nil {
		core.LogError(f, "Non-existent incoming FaceID=", inFace, " for Interest=", interest.Name(), " - DROP")
		return
	}

	core.LogTrace(f, "OnIncomingInterest: ", interest.Name(), ", FaceID=", inFace)

	// Check if violates /localhost
	if isViolatingLocalhost(incomingFace, interest.Name()) {
		core.LogDebug(f, "Interest ", interest.Name(), " from non-local FaceID=", inFace, " violates /localhost scope - DROP")
		return
	}

	interest.IncomingFaceID = &inFace
	f.NInInterests++

	// Detect duplicate nonce by comparing against Dead Nonce List
	if f.deadNonceList.Find(interest.Name(), interest.Nonce()) {
		core.LogTrace(f, "Interest ", interest.Name(), " matches Dead Nonce List - DROP")
		return
	}

	pitEntry, _ := f.pit.InsertInterest(interest)

	// Same nonce from another face means the Interest is looping
	for faceID, inRecord := range pitEntry.InRecords() {
		if faceID != inFace && inRecord.LatestNonce == interest.Nonce() {
			core.LogDebug(f, "Interest ", interest.Name(), " is looping - DROP")
			return
		}
	}
	for _, outRecord := range pitEntry.OutRecords() {
		if outRecord.LatestNonce == interest.Nonce() {
			core.LogDebug(f, "Interest ", interest.Name(), " is looping - DROP")
			return
		}
	}

	f.cancelTimers(pitEntry)
	pitEntry.SetSatisfied(false)

	// Add in-record and determine if already pending
	_, isAlreadyPending := pitEntry.InsertInRecord(interest, inFace)
	if !isAlreadyPending && f.cs.IsServing() {
		if data := f.cs.FindMatchingData(interest); data != nil {
			core.LogTrace(f, "Content Store hit for Interest ", interest.Name())
			f.strategy.AfterContentStoreHit(pitEntry, inFace, data)
			if len(pitEntry.InRecords()) > 0 {
				pitEntry.UpdateExpirationTime()
				f.setExpiryTimer(pitEntry)
			}
			return
		}
	}

	// Update PIT entry expiration timer
	pitEntry.UpdateExpirationTime()
	f.setExpiryTimer(pitEntry)

	f.strategy.AfterReceiveInterest(pitEntry, inFace, interest, f.fib.FindNextHops(interest.Name()))
}

// OnOutgoingInterest is the outgoing Interest pipeline. It records an out-record on the PIT entry and transmits
// the Interest on the face.
func (f *Forwarder) OnOutgoingInterest(pitEntry *table.PitEntry, outFace uint64, interest *ndn.Interest) {
	core.LogTrace(f, "OnOutgoingInterest: ", interest.Name(), ", FaceID=", outFace)

	outgoingFace := f.faces.GetFace(outFace)
	if outgoingFace == nil {
		core.LogWarn(f, "Non-existent nexthop FaceID=", outFace, " for Interest=", interest.Name(), " - DROP")
		return
	}

	if isViolatingLocalhost(outgoingFace, interest.Name()) {
		core.LogDebug(f, "Interest ", interest.Name(), " cannot be sent to non-local FaceID=", outFace, " since violates /localhost scope - DROP")
		return
	}

	// Create or update out-record
	pitEntry.InsertOutRecord(interest, outFace)

	outgoingFace.SendInterest(interest)
	f.NOutInterests++
}

// OnIncomingData is the incoming Data pipeline.
func (f *Forwarder) OnIncomingData(data *ndn.Data, inFace uint64) {
	incomingFace := f.faces.GetFace(inFace)
	if incomingFace == nil {
		core.LogWarn(f, "Non-existent incoming FaceID=", inFace, " for Data=", data.Name(), " - DROP")
		return
	}

	core.LogDebug(f, "OnIncomingData: ", data.Name(), ", FaceID=", inFace)

	// Check if violates /localhost
	if isViolatingLocalhost(incomingFace, data.Name()) {
		core.LogDebug(f, "Data ", data.Name(), " from non-local FaceID=", inFace, " violates /localhost scope - DROP")
		return
	}

	data.IncomingFaceID = &inFace
	f.NInData++

	// Check for matching PIT entries
	pitEntries := f.pit.FindAllDataMatches(data)
	if len(pitEntries) == 0 {
		f.onDataUnsolicited(incomingFace, data)
		return
	}

	f.cs.Insert(data.WithoutTags())

	now := f.scheduler.Now()
	pendingDownstreams := make([]uint64, 0)
	for _, pitEntry := range pitEntries {
		core.LogTrace(f, "OnIncomingData matching=", pitEntry.Name())
		f.cancelTimers(pitEntry)

		for faceID, inRecord := range pitEntry.InRecords() {
			if inRecord.ExpirationTime.After(now) && !slices.Contains(pendingDownstreams, faceID) {
				pendingDownstreams = append(pendingDownstreams, faceID)
			}
		}

		// Insert into dead nonce list
		for _, outRecord := range pitEntry.OutRecords() {
			f.deadNonceList.Insert(pitEntry.Name(), outRecord.LatestNonce)
		}

		pitEntry.SetSatisfied(true)
		pitEntry.ClearInRecords()
		pitEntry.DeleteOutRecord(inFace)
		f.setStragglerTimer(pitEntry, true, data.FreshnessPeriod())
	}

	slices.Sort(pendingDownstreams)
	for _, downstream := range pendingDownstreams {
		if downstream == inFace {
			continue
		}
		f.NSatisfiedInterests++
		f.OnOutgoingData(data, inFace, downstream)
	}
}

// OnOutgoingData is the outgoing Data pipeline. Data for local faces is transmitted immediately; Data for other
// faces joins the face's backlog, to be sent by its pacing timer.
func (f *Forwarder) OnOutgoingData(data *ndn.Data, inFace uint64, outFace uint64) {
	if outFace == defn.InvalidFaceID {
		core.LogWarn(f, "OnOutgoingData face=invalid data=", data.Name(), " - DROP")
		return
	}
	outgoingFace := f.faces.GetFace(outFace)
	if outgoingFace == nil {
		core.LogWarn(f, "Non-existent nexthop FaceID=", outFace, " for Data=", data.Name(), " - DROP")
		return
	}

	core.LogTrace(f, "OnOutgoingData: ", data.Name(), ", FaceID=", outFace, ", Scope=", outgoingFace.Scope())

	if isViolatingLocalhost(outgoingFace, data.Name()) {
		core.LogDebug(f, "Data ", data.Name(), " cannot be sent to non-local FaceID=", outFace, " since violates /localhost scope - DROP")
		return
	}

	if outgoingFace.Scope() == defn.Local {
		outgoingFace.SendData(data)
		f.NOutData++
		return
	}

	f.backlog.Enqueue(outFace, table.BacklogItem{
		Name:          data.Name(),
		RequesterFace: inFace,
		Size:          data.Size(),
		EnqueuedAt:    f.scheduler.Now(),
	})
	core.LogTrace(f, "Enqueued Data ", data.Name(), " size=", data.Size(), " on FaceID=", outFace,
		", bytes in queue=", f.backlog.QueuedBytes(outFace))
}

// OnFaceRemoved releases the backlog, congestion state and routes of a face that has been removed from the face
// table. The face's pacing timer is already cancelled at this point.
func (f *Forwarder) OnFaceRemoved(faceID uint64) {
	discarded := f.backlog.Discard(faceID)
	f.congestion.Reset(faceID)
	f.fib.RemoveNextHopsByFace(faceID)
	f.measurements.Delete(queueDelayKey(faceID))
	f.measurements.Delete(queueDelayAverageKey(faceID))
	core.LogInfo(f, "Removed FaceID=", faceID, ", discarded ", discarded, " queued Data")
}

func (f *Forwarder) cancelTimers(pitEntry *table.PitEntry) {
	if timer := pitEntry.Timer(); timer != nil {
		timer.Cancel()
		pitEntry.SetTimer(nil)
	}
}

// setExpiryTimer arms the timer that finalizes the entry, unsatisfied, at its expiration time.
func (f *Forwarder) setExpiryTimer(pitEntry *table.PitEntry) {
	f.cancelTimers(pitEntry)
	pitEntry.SetTimer(f.scheduler.ScheduleAt(pitEntry.ExpirationTime(), func() {
		pitEntry.SetTimer(nil)
		f.finalizeInterest(pitEntry)
	}))
}

// setStragglerTimer arms the timer that removes the entry once stragglers had time to arrive.
func (f *Forwarder) setStragglerTimer(pitEntry *table.PitEntry, isSatisfied bool, freshness time.Duration) {
	f.cancelTimers(pitEntry)
	core.LogTrace(f, "Straggler timer for ", pitEntry.Name(), " satisfied=", isSatisfied, " freshness=", freshness)
	pitEntry.SetSatisfied(isSatisfied)
	pitEntry.SetTimer(f.scheduler.Schedule(stragglerTime, func() {
		pitEntry.SetTimer(nil)
		f.finalizeInterest(pitEntry)
	}))
}

func (f *Forwarder) finalizeInterest(pitEntry *table.PitEntry) {
	core.LogTrace(f, "OnFinalizeInterest: ", pitEntry.Name())

	// Check for nonces to insert into dead nonce list
	for _, outRecord := range pitEntry.OutRecords() {
		f.deadNonceList.Insert(pitEntry.Name(), outRecord.LatestNonce)
	}

	// Counters
	if !pitEntry.Satisfied() {
		f.NUnsatisfiedInterests += uint64(len(pitEntry.InRecords()))
	}

	// Remove from PIT
	f.pit.Remove(pitEntry)
}
