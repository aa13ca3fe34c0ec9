/*
Copyright 2026 The PowerDNS Migrator Authors.

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

// Package pdnsmetrics exposes the batch executor's progress counters as
// prometheus counters and gauges, served over /metrics.
package pdnsmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ZonesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pdns_migrator",
		Subsystem: "batch",
		Name:      "zones_processed_total",
		Help:      "Number of zones the batch executor has processed (succeeded, failed or skipped).",
	})
	ZonesSucceededTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pdns_migrator",
		Subsystem: "batch",
		Name:      "zones_succeeded_total",
		Help:      "Number of zones migrated without error.",
	})
	ZonesFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pdns_migrator",
		Subsystem: "batch",
		Name:      "zones_failed_total",
		Help:      "Number of zones that failed to migrate.",
	})
	ZonesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pdns_migrator",
		Subsystem: "batch",
		Name:      "zones_skipped_total",
		Help:      "Number of zones skipped after stop_requested was set.",
	})
	LastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pdns_migrator",
		Subsystem: "batch",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last completed run (single zone or batch).",
	})
)

func init() {
	prometheus.MustRegister(
		ZonesProcessedTotal,
		ZonesSucceededTotal,
		ZonesFailedTotal,
		ZonesSkippedTotal,
		LastRunTimestamp,
	)
}

// Serve exposes /metrics and /healthz on address, blocking until the server
// exits or errors. Call it from a goroutine in cmd/pdns-migrate.
func Serve(address string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	log.WithField("address", address).Info("serving metrics")
	return http.ListenAndServe(address, mux)
}
