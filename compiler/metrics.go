// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import "github.com/prometheus/client_golang/prometheus"

// Metrics is optional instrumentation around CompileExpression. A nil
// *Metrics is a no-op on every method — instrumentation must never be
// required for correctness.
type Metrics struct {
	compileTotal     prometheus.Counter
	diagnosticsTotal *prometheus.CounterVec
	duration         prometheus.Histogram
}

// NewMetrics builds and registers a Metrics against reg. Passing a nil
// registerer returns a nil *Metrics, whose methods are all safe no-ops.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		compileTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "malloy_compile_total",
			Help: "Total number of CompileExpression calls.",
		}),
		diagnosticsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "malloy_compile_diagnostics_total",
			Help: "Total diagnostics emitted, labeled by error kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "malloy_compile_duration_seconds",
			Help: "CompileExpression wall-clock duration.",
		}),
	}
	reg.MustRegister(m.compileTotal, m.diagnosticsTotal, m.duration)
	return m
}

func (m *Metrics) observeCompile(seconds float64) {
	if m == nil {
		return
	}
	m.compileTotal.Inc()
	m.duration.Observe(seconds)
}

func (m *Metrics) observeDiagnostic(kind string) {
	if m == nil {
		return
	}
	m.diagnosticsTotal.WithLabelValues(kind).Inc()
}
