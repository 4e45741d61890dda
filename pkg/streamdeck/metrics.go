// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Frame directions used as metric labels.
const (
	directionIn  = "in"
	directionOut = "out"
)

// Metrics records runtime activity. A nil *Metrics records nothing.
type Metrics struct {
	FramesTotal     *prometheus.CounterVec
	HandlerDuration *prometheus.HistogramVec
	HandlerErrors   *prometheus.CounterVec
	Connected       prometheus.Gauge
}

// NewMetrics creates and registers runtime metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deckkit_frames_total",
				Help: "Total number of frames by direction and event",
			},
			[]string{"direction", "event"},
		),
		HandlerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "deckkit_handler_duration_seconds",
				Help:    "Handler run time by scope and event",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"scope", "event"},
		),
		HandlerErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deckkit_handler_errors_total",
				Help: "Total number of handler errors by scope and event",
			},
			[]string{"scope", "event"},
		),
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deckkit_connected",
			Help: "1 while the runtime holds an open channel",
		}),
	}

	reg.MustRegister(m.FramesTotal)
	reg.MustRegister(m.HandlerDuration)
	reg.MustRegister(m.HandlerErrors)
	reg.MustRegister(m.Connected)

	return m
}

func (m *Metrics) frame(direction, event string) {
	if m == nil {
		return
	}
	m.FramesTotal.WithLabelValues(direction, event).Inc()
}

func (m *Metrics) observeHandler(scope, event string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.HandlerDuration.WithLabelValues(scope, event).Observe(d.Seconds())
	if err != nil {
		m.HandlerErrors.WithLabelValues(scope, event).Inc()
	}
}

func (m *Metrics) setConnected(up bool) {
	if m == nil {
		return
	}
	if up {
		m.Connected.Set(1)
		return
	}
	m.Connected.Set(0)
}
