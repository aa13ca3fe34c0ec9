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

package main

import (
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/railadeividas/powerdns-migrator/internal/pdnserr"
)

// Config is the fully parsed set of flags for one invocation: source and
// target connection details, zone selection, retry policy, reconciliation
// toggles, batch concurrency, and logging/metrics options.
type Config struct {
	SourceURL      string
	SourceAPIKey   string
	SourceServerID string
	SourceInsecure bool

	TargetURL      string
	TargetAPIKey   string
	TargetServerID string
	TargetInsecure bool

	Zone      string
	ZonesFile string

	Timeout         time.Duration
	Retries         int
	RetryBackoff    time.Duration
	RetryMaxBackoff time.Duration
	RetryJitter     time.Duration

	Recreate                    bool
	DryRun                      bool
	IgnoreSOASerial             bool
	AutoFixCNAMEConflicts       bool
	AutoFixDoubleCNAMEConflicts bool
	NormalizeTXTEscapes         bool

	Concurrency       int
	OnError           string
	ProgressIntervalS float64
	GracefulTimeoutS  float64

	MetricsAddress string
	LogFormat      string
	LogLevel       string
}

// NewConfig returns a zero-value Config ready for ParseFlags.
func NewConfig() *Config {
	return &Config{}
}

// ParseFlags registers every flag on a fresh kingpin Application and parses
// args into cfg, using the app.Flag(name, help).Default(def).XVar(&field)
// registration style throughout.
func (cfg *Config) ParseFlags(args []string) error {
	app := kingpin.New("pdns-migrate", "Reconcile PowerDNS zones from a source server onto a target server.")

	app.Flag("source-url", "Base URL of the source PowerDNS API.").Required().StringVar(&cfg.SourceURL)
	app.Flag("source-api-key", "API key for the source server.").Required().StringVar(&cfg.SourceAPIKey)
	app.Flag("source-server-id", "Server id of the source PowerDNS instance.").Default("localhost").StringVar(&cfg.SourceServerID)
	app.Flag("insecure-source", "Skip TLS certificate verification against the source.").Default("false").BoolVar(&cfg.SourceInsecure)

	app.Flag("target-url", "Base URL of the target PowerDNS API.").Required().StringVar(&cfg.TargetURL)
	app.Flag("target-api-key", "API key for the target server.").Required().StringVar(&cfg.TargetAPIKey)
	app.Flag("target-server-id", "Server id of the target PowerDNS instance.").Default("localhost").StringVar(&cfg.TargetServerID)
	app.Flag("insecure-target", "Skip TLS certificate verification against the target.").Default("false").BoolVar(&cfg.TargetInsecure)

	app.Flag("zone", "Single zone name to migrate. Mutually exclusive with --zones-file.").StringVar(&cfg.Zone)
	app.Flag("zones-file", "Path to a file of zone names, one per line. Mutually exclusive with --zone.").StringVar(&cfg.ZonesFile)

	app.Flag("timeout", "Per-request HTTP timeout.").Default("10s").DurationVar(&cfg.Timeout)
	app.Flag("retries", "Maximum retry attempts per logical API call.").Default("3").IntVar(&cfg.Retries)
	app.Flag("retry-backoff", "Base retry backoff delay.").Default("500ms").DurationVar(&cfg.RetryBackoff)
	app.Flag("retry-max-backoff", "Maximum retry backoff delay.").Default("5s").DurationVar(&cfg.RetryMaxBackoff)
	app.Flag("retry-jitter", "Maximum random jitter added to each retry delay.").Default("100ms").DurationVar(&cfg.RetryJitter)

	app.Flag("recreate", "Delete and recreate the target zone instead of patching.").Default("false").BoolVar(&cfg.Recreate)
	app.Flag("dry-run", "Compute the migration result without issuing writes.").Default("false").BoolVar(&cfg.DryRun)
	app.Flag("ignore-soa-serial", "Treat SOA records differing only in serial as equal.").Default("false").BoolVar(&cfg.IgnoreSOASerial)
	app.Flag("auto-fix-cname-conflicts", "Apply the CNAME coexistence policy during sanitize.").Default("false").BoolVar(&cfg.AutoFixCNAMEConflicts)
	app.Flag("auto-fix-double-cname-conflicts", "Trim multi-record CNAME rrsets to their first record.").Default("false").BoolVar(&cfg.AutoFixDoubleCNAMEConflicts)
	app.Flag("normalize-txt-escapes", "Canonicalize TXT record escape sequences.").Default("false").BoolVar(&cfg.NormalizeTXTEscapes)

	app.Flag("concurrency", "Number of concurrent batch workers.").Default("4").IntVar(&cfg.Concurrency)
	app.Flag("on-error", "Batch failure policy.").Default("continue").EnumVar(&cfg.OnError, "continue", "stop")
	app.Flag("progress-interval", "Seconds between progress log lines; 0 disables.").Default("30").Float64Var(&cfg.ProgressIntervalS)
	app.Flag("graceful-timeout", "Seconds to wait for in-flight zones to finish after an interrupt.").Default("30").Float64Var(&cfg.GracefulTimeoutS)

	app.Flag("metrics-address", "Address to serve /metrics and /healthz on; empty disables.").Default("").StringVar(&cfg.MetricsAddress)
	app.Flag("log-format", "Log output format.").Default("text").EnumVar(&cfg.LogFormat, "text", "json")
	app.Flag("log-level", "Log verbosity.").Default("info").StringVar(&cfg.LogLevel)

	_, err := app.Parse(args)
	if err != nil {
		return err
	}
	return cfg.validate()
}

func (cfg *Config) validate() error {
	if cfg.Zone == "" && cfg.ZonesFile == "" {
		return pdnserr.NewConfigError("exactly one of --zone or --zones-file is required")
	}
	if cfg.Zone != "" && cfg.ZonesFile != "" {
		return pdnserr.NewConfigError("--zone and --zones-file are mutually exclusive")
	}
	return nil
}
