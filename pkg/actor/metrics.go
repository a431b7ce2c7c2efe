// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package actor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	tickCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tickactor",
			Subsystem: "system",
			Name:      "ticks_total",
			Help:      "The total number of ticks run by an actor system.",
		}, []string{"name"})
	dispatchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tickactor",
			Subsystem: "system",
			Name:      "dispatched_total",
			Help:      "The total number of messages handled by actors.",
		}, []string{"name", "source"})
	dropCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tickactor",
			Subsystem: "system",
			Name:      "dropped_total",
			Help:      "The total number of messages discarded because no actor was bound to their tag.",
		}, []string{"name", "source"})
	actorGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tickactor",
			Subsystem: "system",
			Name:      "number_of_actors",
			Help:      "The number of actors bound in an actor system.",
		}, []string{"name"})
	pendingTimerGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tickactor",
			Subsystem: "system",
			Name:      "pending_timers",
			Help:      "The number of delayed deliveries waiting for their deadline.",
		}, []string{"name"})
	actDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tickactor",
			Subsystem: "system",
			Name:      "act_duration_seconds",
			Help:      "Bucketed histogram of the time spent in a single Act call.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20), // 10us ~ 5s
		}, []string{"name"})
)

// InitMetrics registers all metrics in this file
func InitMetrics(registry *prometheus.Registry) {
	registry.MustRegister(tickCounter)
	registry.MustRegister(dispatchCounter)
	registry.MustRegister(dropCounter)
	registry.MustRegister(actorGauge)
	registry.MustRegister(pendingTimerGauge)
	registry.MustRegister(actDuration)
}

// dispatchSource tells where a dispatched message came from.
type dispatchSource int

const (
	sourceMailbox dispatchSource = iota
	sourceTimer
)

func (s dispatchSource) String() string {
	if s == sourceTimer {
		return "timer"
	}
	return "mailbox"
}

// systemMetrics caches the metric children of one system.
type systemMetrics struct {
	ticks         prometheus.Counter
	dispatched    [2]prometheus.Counter
	dropped       [2]prometheus.Counter
	actors        prometheus.Gauge
	pendingTimers prometheus.Gauge
	actDuration   prometheus.Observer
}

func newSystemMetrics(name string) systemMetrics {
	m := systemMetrics{
		ticks:         tickCounter.WithLabelValues(name),
		actors:        actorGauge.WithLabelValues(name),
		pendingTimers: pendingTimerGauge.WithLabelValues(name),
		actDuration:   actDuration.WithLabelValues(name),
	}
	for _, src := range []dispatchSource{sourceMailbox, sourceTimer} {
		m.dispatched[src] = dispatchCounter.WithLabelValues(name, src.String())
		m.dropped[src] = dropCounter.WithLabelValues(name, src.String())
	}
	return m
}

func removeSystemMetrics(name string) {
	tickCounter.DeleteLabelValues(name)
	actorGauge.DeleteLabelValues(name)
	pendingTimerGauge.DeleteLabelValues(name)
	actDuration.DeleteLabelValues(name)
	for _, src := range []dispatchSource{sourceMailbox, sourceTimer} {
		dispatchCounter.DeleteLabelValues(name, src.String())
		dropCounter.DeleteLabelValues(name, src.String())
	}
}
