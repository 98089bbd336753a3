/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"strconv"
	"time"

	"github.com/named-data/inrpp/core"
	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/dispatch"
	"github.com/named-data/inrpp/ndn"
	"github.com/named-data/inrpp/table"
)

// queueDelayAlpha is the weight of a new sample in the average queue delay of a face.
const queueDelayAlpha = 0.125

func queueDelayKey(faceID uint64) string {
	return "queue-delay/" + strconv.FormatUint(faceID, 10)
}

func queueDelayAverageKey(faceID uint64) string {
	return "queue-delay-avg/" + strconv.FormatUint(faceID, 10)
}

// DrainRequest sends at most one Data packet from the face's backlog. The oldest queued name is looked up in the
// Content Store: on a hit the Data goes out on the face; on a miss the face is marked Stalled and the Data is
// requested again from the face it originally arrived on.
func (f *Forwarder) DrainRequest(faceID uint64, bitRate uint64) {
	outgoingFace := f.faces.GetFace(faceID)
	if outgoingFace == nil {
		core.LogWarn(f, "Drain on non-existent FaceID=", faceID, " - IGNORE")
		return
	}
	item, ok := f.backlog.PopOldest(faceID)
	if !ok {
		return
	}

	core.LogTrace(f, "Drain FaceID=", faceID, " Data=", item.Name, ", CS size=", f.cs.Size(), "/", f.cs.Capacity())
	f.cs.Find(item.Name,
		func(name *ndn.Name, data *ndn.Data) {
			f.onDrainHit(outgoingFace, item, data)
		},
		func(name *ndn.Name) {
			f.onDrainMiss(outgoingFace, item)
		})

	delay := f.backlog.EstimatedQueueDelay(faceID, bitRate)
	f.measurements.Store(queueDelayKey(faceID), delay)
	f.measurements.AddSampleToEWMA(queueDelayAverageKey(faceID), delay.Seconds(), queueDelayAlpha)
	core.LogTrace(f, "FaceID=", faceID, " bytes in queue=", f.backlog.QueuedBytes(faceID), ", queue time=", delay)
}

func (f *Forwarder) onDrainHit(outgoingFace dispatch.Face, item table.BacklogItem, data *ndn.Data) {
	core.LogDebug(f, "onContentStoreHit FaceID=", outgoingFace.FaceID(), " Data=", data.Name())
	outgoingFace.SendData(data)
	f.NOutData++
	f.NDrainHits++
	// Account the popped item's size, which may differ from the cached Data's.
	f.backlog.AccountDelivered(outgoingFace.FaceID(), item.Size)
}

func (f *Forwarder) onDrainMiss(outgoingFace dispatch.Face, item table.BacklogItem) {
	core.LogDebug(f, "onContentStoreMiss FaceID=", outgoingFace.FaceID(), " Data=", item.Name,
		", re-requesting from FaceID=", item.RequesterFace)
	f.NDrainMisses++
	if f.congestion.stall(outgoingFace.FaceID()) {
		core.LogInfo(f, "FaceID=", outgoingFace.FaceID(), " is now ", defn.Stalled)
	}
	outgoingFace.SetCongestionState(defn.Stalled)

	if f.faces.GetFace(item.RequesterFace) == nil {
		core.LogWarn(f, "Non-existent requester FaceID=", item.RequesterFace, " for Data=", item.Name, " - DROP")
		return
	}

	// NewInterest draws a fresh nonce
	interest := ndn.NewInterest(item.Name)
	interest.SetLifetime(defaultInterestLifetime)

	// The paced face becomes a downstream of the re-request, so the returning Data is queued on it again.
	pitEntry := f.pit.FindOrInsert(item.Name)
	pitEntry.InsertInRecord(interest, outgoingFace.FaceID())
	pitEntry.SetSatisfied(false)
	pitEntry.UpdateExpirationTime()
	f.setExpiryTimer(pitEntry)

	f.OnOutgoingInterest(pitEntry, item.RequesterFace, interest)
}

// BacklogDepth returns the number of Data packets queued on the face.
func (f *Forwarder) BacklogDepth(faceID uint64) int {
	return f.backlog.Depth(faceID)
}

// CongestionState returns the congestion state of the face.
func (f *Forwarder) CongestionState(faceID uint64) defn.CongestionState {
	return f.congestion.State(faceID)
}

// ResetCongestion marks the face Open again.
func (f *Forwarder) ResetCongestion(faceID uint64) {
	f.congestion.Reset(faceID)
	if face := f.faces.GetFace(faceID); face != nil {
		face.SetCongestionState(defn.Open)
	}
	core.LogInfo(f, "FaceID=", faceID, " is now ", defn.Open)
}

// QueueDelay returns the queue delay of the face estimated at its most recent drain.
func (f *Forwarder) QueueDelay(faceID uint64) time.Duration {
	if delay, ok := f.measurements.Get(queueDelayKey(faceID)).(time.Duration); ok {
		return delay
	}
	return 0
}

// QueueDelayAverage returns the moving average of the queue delay of the face over its drains.
func (f *Forwarder) QueueDelayAverage(faceID uint64) time.Duration {
	if seconds, ok := f.measurements.Get(queueDelayAverageKey(faceID)).(float64); ok {
		return time.Duration(seconds * float64(time.Second))
	}
	return 0
}
