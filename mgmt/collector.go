/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"strconv"

	"github.com/named-data/inrpp/defn"
	"github.com/named-data/inrpp/fw"
	"github.com/prometheus/client_golang/prometheus"
)

type counterMetric struct {
	desc  *prometheus.Desc
	value func(c *fw.Counters) uint64
}

func newCounterMetric(name string, help string, value func(c *fw.Counters) uint64) counterMetric {
	return counterMetric{
		desc:  prometheus.NewDesc("inrpp_"+name+"_total", help, []string{"node"}, nil),
		value: value,
	}
}

// Collector exports the counters and backlog state of managed forwarders as Prometheus metrics.
// Collect reads forwarder state, so it must run on the scheduler goroutine.
type Collector struct {
	managers []*Thread

	counters []counterMetric

	pitEntries   *prometheus.Desc
	csEntries    *prometheus.Desc
	backlogDepth *prometheus.Desc
	queuedBytes  *prometheus.Desc
	queueDelay   *prometheus.Desc
	queueAverage *prometheus.Desc
	stalled      *prometheus.Desc
	pacingFires  *prometheus.Desc
	faceInBytes  *prometheus.Desc
	faceOutBytes *prometheus.Desc
}

// NewCollector creates a collector over the forwarders of the given managers.
func NewCollector(managers ...*Thread) *Collector {
	faceLabels := []string{"node", "face", "uri"}
	c := &Collector{
		managers: managers,
		counters: []counterMetric{
			newCounterMetric("interests_in", "Interests received.", func(c *fw.Counters) uint64 { return c.NInInterests }),
			newCounterMetric("data_in", "Data received.", func(c *fw.Counters) uint64 { return c.NInData }),
			newCounterMetric("interests_out", "Interests sent.", func(c *fw.Counters) uint64 { return c.NOutInterests }),
			newCounterMetric("data_out", "Data sent.", func(c *fw.Counters) uint64 { return c.NOutData }),
			newCounterMetric("interests_satisfied", "Interests satisfied.", func(c *fw.Counters) uint64 { return c.NSatisfiedInterests }),
			newCounterMetric("interests_unsatisfied", "Interests expired unsatisfied.", func(c *fw.Counters) uint64 { return c.NUnsatisfiedInterests }),
			newCounterMetric("data_unsolicited", "Data matching no pending Interest.", func(c *fw.Counters) uint64 { return c.NUnsolicitedData }),
			newCounterMetric("drain_hits", "Backlog drains served from the Content Store.", func(c *fw.Counters) uint64 { return c.NDrainHits }),
			newCounterMetric("drain_misses", "Backlog drains that missed the Content Store.", func(c *fw.Counters) uint64 { return c.NDrainMisses }),
		},
		pitEntries:   prometheus.NewDesc("inrpp_pit_entries", "Entries in the PIT.", []string{"node"}, nil),
		csEntries:    prometheus.NewDesc("inrpp_cs_entries", "Entries in the Content Store.", []string{"node"}, nil),
		backlogDepth: prometheus.NewDesc("inrpp_face_backlog_depth", "Data packets queued on the face.", faceLabels, nil),
		queuedBytes:  prometheus.NewDesc("inrpp_face_queued_bytes", "Bytes queued on the face.", faceLabels, nil),
		queueDelay:   prometheus.NewDesc("inrpp_face_queue_delay_seconds", "Queue delay estimated at the last drain.", faceLabels, nil),
		queueAverage: prometheus.NewDesc("inrpp_face_queue_delay_average_seconds", "Moving average of the queue delay over drains.", faceLabels, nil),
		stalled:      prometheus.NewDesc("inrpp_face_stalled", "Whether the face is Stalled.", faceLabels, nil),
		pacingFires:  prometheus.NewDesc("inrpp_face_pacing_fires_total", "Pacing timer fires.", faceLabels, nil),
		faceInBytes:  prometheus.NewDesc("inrpp_face_in_bytes_total", "Bytes received on the face.", faceLabels, nil),
		faceOutBytes: prometheus.NewDesc("inrpp_face_out_bytes_total", "Bytes sent on the face.", faceLabels, nil),
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, counter := range c.counters {
		ch <- counter.desc
	}
	ch <- c.pitEntries
	ch <- c.csEntries
	ch <- c.backlogDepth
	ch <- c.queuedBytes
	ch <- c.queueDelay
	ch <- c.queueAverage
	ch <- c.stalled
	ch <- c.pacingFires
	ch <- c.faceInBytes
	ch <- c.faceOutBytes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, manager := range c.managers {
		forwarder := manager.forwarder
		node := forwarder.Name()
		for _, counter := range c.counters {
			ch <- prometheus.MustNewConstMetric(counter.desc, prometheus.CounterValue,
				float64(counter.value(&forwarder.Counters)), node)
		}
		ch <- prometheus.MustNewConstMetric(c.pitEntries, prometheus.GaugeValue, float64(forwarder.Pit().Size()), node)
		ch <- prometheus.MustNewConstMetric(c.csEntries, prometheus.GaugeValue, float64(forwarder.ContentStore().Size()), node)

		for _, link := range manager.faces.GetAll() {
			status := MakeFaceStatus(forwarder, link)
			labels := []string{node, strconv.FormatUint(status.FaceID, 10), status.URI}
			stalled := 0.0
			if status.CongestionState == defn.Stalled {
				stalled = 1
			}
			ch <- prometheus.MustNewConstMetric(c.backlogDepth, prometheus.GaugeValue, float64(status.BacklogDepth), labels...)
			ch <- prometheus.MustNewConstMetric(c.queuedBytes, prometheus.GaugeValue, float64(status.QueuedBytes), labels...)
			ch <- prometheus.MustNewConstMetric(c.queueDelay, prometheus.GaugeValue, status.QueueDelay.Seconds(), labels...)
			ch <- prometheus.MustNewConstMetric(c.queueAverage, prometheus.GaugeValue, status.QueueDelayAverage.Seconds(), labels...)
			ch <- prometheus.MustNewConstMetric(c.stalled, prometheus.GaugeValue, stalled, labels...)
			ch <- prometheus.MustNewConstMetric(c.pacingFires, prometheus.CounterValue, float64(status.NPacingFires), labels...)
			ch <- prometheus.MustNewConstMetric(c.faceInBytes, prometheus.CounterValue, float64(status.NInBytes), labels...)
			ch <- prometheus.MustNewConstMetric(c.faceOutBytes, prometheus.CounterValue, float64(status.NOutBytes), labels...)
		}
	}
}
