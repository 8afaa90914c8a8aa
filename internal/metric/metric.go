// Copyright 2025 the original author or authors.
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

// Package metric exposes Prometheus metrics about decoded augmented diffs.
package metric

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"m4o.io/adiff/model"
)

const (
	namespace = "adiff"

	statusOK    = "ok"
	statusError = "error"
)

// Metrics holds the decoder collectors.  A nil *Metrics records nothing.
type Metrics struct {
	Documents     *prometheus.CounterVec
	Changes       *prometheus.CounterVec
	Elements      *prometheus.CounterVec
	ParseDuration prometheus.Histogram
}

// New creates the collectors without registering them.
func New() *Metrics {
	return &Metrics{
		Documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "documents_total",
				Help:      "Total number of augmented diff documents decoded",
			},
			[]string{"status"},
		),

		Changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "changes_total",
				Help:      "Total number of actions decoded",
			},
			[]string{"kind"},
		),

		Elements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "elements_total",
				Help:      "Total number of elements decoded, including referenced ones",
			},
			[]string{"kind"},
		),

		ParseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "decoder",
				Name:      "parse_duration_seconds",
				Help:      "Time taken to read and parse a document",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
	}
}

// Register registers every collector with reg.  Collectors that are already
// registered are reused.
func (m *Metrics) Register(reg prometheus.Registerer) (err error) {
	if m.Documents, err = register(reg, m.Documents); err != nil {
		return err
	}

	if m.Changes, err = register(reg, m.Changes); err != nil {
		return err
	}

	if m.Elements, err = register(reg, m.Elements); err != nil {
		return err
	}

	if m.ParseDuration, err = register(reg, m.ParseDuration); err != nil {
		return err
	}

	return nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

// Observe records the outcome of decoding one document.
func (m *Metrics) Observe(diff *model.Diff, took time.Duration, err error) {
	if m == nil {
		return
	}

	m.ParseDuration.Observe(took.Seconds())

	if err != nil {
		m.Documents.WithLabelValues(statusError).Inc()

		return
	}

	m.Documents.WithLabelValues(statusOK).Inc()

	for _, c := range diff.Changes {
		m.Changes.WithLabelValues(c.Kind.String()).Inc()
	}

	for e := range diff.Elements() {
		m.Elements.WithLabelValues(e.GetKind().String()).Inc()
	}
}
