/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package executor

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/named-data/inrpp/mgmt"
	"github.com/pkg/errors"
	dto "github.com/prometheus/client_model/go"
)

// NodeReport is the final state of a node.
type NodeReport struct {
	Name   string
	Status *mgmt.GeneralStatus
	Faces  []*mgmt.FaceStatus
}

// Report is the outcome of a simulation run.
type Report struct {
	Duration  time.Duration
	Nodes     []*NodeReport
	Consumers []ConsumerStats
	Metrics   []*dto.MetricFamily
}

func (e *Executor) report(duration time.Duration) (*Report, error) {
	r := &Report{Duration: duration}
	for _, name := range e.nodeNames {
		node := e.nodes[name]
		nodeReport := &NodeReport{
			Name:   name,
			Status: mgmt.MakeGeneralStatus(node.Forwarder, e.scheduler.Now()),
		}
		for _, link := range node.Faces.GetAll() {
			nodeReport.Faces = append(nodeReport.Faces, mgmt.MakeFaceStatus(node.Forwarder, link))
		}
		r.Nodes = append(r.Nodes, nodeReport)
	}
	for _, consumer := range e.consumers {
		r.Consumers = append(r.Consumers, consumer.Stats())
	}

	metrics, err := e.registry.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "unable to gather metrics")
	}
	r.Metrics = metrics
	return r, nil
}

// Write prints the report as text tables.
func (r *Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Simulated %v\n\n", r.Duration)

	fmt.Fprintln(tw, "NODE\tIN-INT\tIN-DATA\tOUT-INT\tOUT-DATA\tSATISFIED\tUNSATISFIED\tDRAIN-HIT\tDRAIN-MISS\tPIT\tCS")
	for _, node := range r.Nodes {
		s := node.Status
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n", node.Name,
			s.NInInterests, s.NInData, s.NOutInterests, s.NOutData, s.NSatisfiedInterests, s.NUnsatisfiedInterests,
			s.NDrainHits, s.NDrainMisses, s.NPitEntries, s.NCsEntries)
	}

	fmt.Fprintln(tw, "\nNODE\tFACE\tURI\tBITRATE\tINTERVAL\tSTATE\tBACKLOG\tBYTES\tQUEUE-DELAY\tOUT-BYTES")
	for _, node := range r.Nodes {
		for _, f := range node.Faces {
			if f.BitRate == 0 {
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%v\t%v\t%d\t%d\t%v\t%d\n", node.Name, f.FaceID, f.URI, f.BitRate,
				f.PacingInterval, f.CongestionState, f.BacklogDepth, f.QueuedBytes, f.QueueDelay, f.NOutBytes)
		}
	}

	fmt.Fprintln(tw, "\nCONSUMER\tPREFIX\tINTERESTS\tDATA\tTIMEOUTS\tAVG-RTT")
	for _, c := range r.Consumers {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%v\n", c.Node, c.Prefix, c.NInterests, c.NData, c.NTimeouts, c.AverageRTT())
	}
	return tw.Flush()
}

// WriteMetrics prints the gathered metrics, one sample per line.
func (r *Report) WriteMetrics(w io.Writer) error {
	for _, family := range r.Metrics {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
			}
			var value float64
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				value = metric.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				value = metric.GetGauge().GetValue()
			default:
				continue
			}
			if _, err := fmt.Fprintf(w, "%s{%s} %g\n", family.GetName(), strings.Join(labels, ","), value); err != nil {
				return err
			}
		}
	}
	return nil
}
