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
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/railadeividas/powerdns-migrator/internal/batch"
	"github.com/railadeividas/powerdns-migrator/internal/ingest"
	"github.com/railadeividas/powerdns-migrator/internal/pdns"
	"github.com/railadeividas/powerdns-migrator/internal/pdnsmetrics"
	"github.com/railadeividas/powerdns-migrator/internal/reconcile"
)

// engineMigrator adapts *reconcile.Engine to batch.Migrator, discarding the
// full MigrationResult since the batch executor only needs success/failure.
type engineMigrator struct {
	engine *reconcile.Engine
}

func (m engineMigrator) Migrate(ctx context.Context, zoneName string) error {
	_, err := m.engine.Migrate(ctx, zoneName)
	return err
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg := NewConfig()
	if err := cfg.ParseFlags(os.Args[1:]); err != nil {
		log.Errorf("flag parsing error: %v", err)
		return 1
	}

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Errorf("invalid log level %q: %v", cfg.LogLevel, err)
		return 1
	}
	log.SetLevel(level)

	if cfg.DryRun {
		log.Info("running in dry-run mode, no writes will be issued")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddress != "" {
		go func() {
			if err := pdnsmetrics.Serve(cfg.MetricsAddress); err != nil {
				log.WithError(err).Error("metrics server exited")
			}
		}()
	}

	sourceClient := pdns.NewClient(
		pdns.NewConnectionDescriptor(cfg.SourceURL, cfg.SourceAPIKey, cfg.SourceServerID, !cfg.SourceInsecure),
		clientConfig(cfg),
	)
	targetClient := pdns.NewClient(
		pdns.NewConnectionDescriptor(cfg.TargetURL, cfg.TargetAPIKey, cfg.TargetServerID, !cfg.TargetInsecure),
		clientConfig(cfg),
	)

	engine := reconcile.NewEngine(sourceClient, targetClient, reconcileOptions(cfg))
	defer engine.Close()

	if cfg.Zone != "" {
		return runSingleZone(ctx, engine, cfg.Zone)
	}
	return runBatch(ctx, engine, cfg)
}

func clientConfig(cfg *Config) pdns.ClientConfig {
	return pdns.ClientConfig{
		Timeout:         cfg.Timeout,
		Retries:         cfg.Retries,
		RetryBackoff:    cfg.RetryBackoff,
		RetryMaxBackoff: cfg.RetryMaxBackoff,
		RetryJitter:     cfg.RetryJitter,
	}
}

func reconcileOptions(cfg *Config) reconcile.Options {
	return reconcile.Options{
		Recreate:                    cfg.Recreate,
		DryRun:                      cfg.DryRun,
		IgnoreSOASerial:             cfg.IgnoreSOASerial,
		AutoFixCNAMEConflicts:       cfg.AutoFixCNAMEConflicts,
		AutoFixDoubleCNAMEConflicts: cfg.AutoFixDoubleCNAMEConflicts,
		NormalizeTXTEscapes:         cfg.NormalizeTXTEscapes,
	}
}

func runSingleZone(ctx context.Context, engine *reconcile.Engine, zone string) int {
	result, err := engine.Migrate(ctx, zone)
	pdnsmetrics.LastRunTimestamp.Set(float64(time.Now().Unix()))
	if err != nil {
		if ctx.Err() != nil {
			log.Warn("interrupted")
			return 130
		}
		log.WithError(err).WithField("zone", zone).Error("migration failed")
		return 1
	}
	log.WithFields(log.Fields{
		"zone":    zone,
		"action":  result.MigratorAction,
		"changes": len(result.Changes),
	}).Info("migration complete")
	return 0
}

func runBatch(ctx context.Context, engine *reconcile.Engine, cfg *Config) int {
	source, err := ingest.NewFileSource(cfg.ZonesFile)
	if err != nil {
		log.WithError(err).Error("failed to open zones file")
		return 1
	}
	defer source.Close()

	executor := batch.NewExecutor(engineMigrator{engine: engine}, batch.Config{
		Concurrency:       cfg.Concurrency,
		OnError:           cfg.OnError,
		ProgressIntervalS: cfg.ProgressIntervalS,
		GracefulTimeoutS:  cfg.GracefulTimeoutS,
	})

	snapshot, err := executor.Run(ctx, source)
	pdnsmetrics.LastRunTimestamp.Set(float64(time.Now().Unix()))
	log.WithFields(log.Fields{
		"processed": snapshot.Processed,
		"success":   snapshot.Success,
		"failed":    snapshot.Failed,
		"skipped":   snapshot.Skipped,
	}).Info("batch run complete")

	if err != nil && ctx.Err() != nil {
		log.Warn("interrupted")
		return 130
	}
	if err != nil {
		log.WithError(err).Error("batch run failed")
		return 1
	}
	if snapshot.Failed > 0 {
		return 1
	}
	return 0
}
