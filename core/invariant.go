/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	promclient "github.com/prometheus/client_model/go"
)

var invariantsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inrpp_invariants_total",
	Help: "Violated invariants that were repaired in place.",
}, []string{
	"module", // The module that repaired the violation.
	"type",   // The invariant that was violated.
})

// RaiseInvariant counts a violated invariant and logs it at WARN level.
func RaiseInvariant(module string, invariantType string, components ...interface{}) {
	invariantsMetric.WithLabelValues(module, invariantType).Inc()
	LogWarn(module, append([]interface{}{"Invariant ", invariantType, " violated: "}, components...)...)
}

// InvariantCount returns how many times the invariant was raised by the module.
func InvariantCount(module string, invariantType string) int {
	metric := &promclient.Metric{}
	if err := invariantsMetric.WithLabelValues(module, invariantType).Write(metric); err != nil {
		LogError(module, "Unable to read invariant counter: ", err)
		return 0
	}
	return int(metric.GetCounter().GetValue())
}
