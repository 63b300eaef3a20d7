// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Falco Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics collects counters about the calls crossing the C
// boundary. Metrics live in a private registry so that the library never
// interferes with a host that also embeds the Prometheus client.
package metrics

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/falcosecurity/counter-ffi-go/pkg/cgo"
)

const namespace = "counter_ffi"

// Reasons for which a boundary call can degrade to its zero default.
const (
	ReasonNull     = "null"
	ReasonInvalid  = "invalid"
	ReasonBadArray = "bad_array"
)

var (
	registry = prometheus.NewRegistry()

	// Calls counts every call of an exported operation.
	Calls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Total number of calls of exported operations",
		},
		[]string{"op"},
	)

	// DegradedCalls counts the calls that returned a zero default
	// instead of operating on a counter.
	DegradedCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_calls_total",
			Help:      "Number of calls answered with a zero default",
		},
		[]string{"op", "reason"},
	)

	// LiveAllocations tracks the C allocations owned by live counters.
	LiveAllocations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_allocations",
			Help:      "Number of C allocations owned by live counters",
		},
	)

	liveHandles = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_handles",
			Help:      "Number of valid counter handles",
		},
		func() float64 { return float64(cgo.Count()) },
	)
)

func init() {
	registry.MustRegister(Calls, DegradedCalls, LiveAllocations, liveHandles)
}

// Registry returns the registry holding the library metrics.
func Registry() *prometheus.Registry {
	return registry
}

// Text renders all the library metrics in the Prometheus text format.
func Text() (string, error) {
	families, err := registry.Gather()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
