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

package batch

import (
	"context"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	OnErrorContinue = "continue"
	OnErrorStop     = "stop"
)

// Config is the executor's tunable policy: worker concurrency, the
// continue-or-stop failure mode, and progress/graceful-shutdown timing.
type Config struct {
	Concurrency       int
	OnError           string
	ProgressIntervalS float64
	GracefulTimeoutS  float64
}

// Migrator is the narrow surface the executor needs from the reconciliation
// engine: migrate one zone, report success or failure.
type Migrator interface {
	Migrate(ctx context.Context, zoneName string) error
}

// Sized is an optional capability a Source can implement to report its
// total item count up front, enabling an ETA in progress logs.
type Sized interface {
	Total() (count int, known bool)
}

// Executor drives Migrator over a Source with bounded concurrency, a
// single-lock Stats block, and an on_error policy.
type Executor struct {
	migrator      Migrator
	cfg           Config
	stats         Stats
	stopRequested atomic.Bool
}

// NewExecutor builds an Executor. Concurrency below 1 is clamped to 1; an
// empty OnError defaults to "continue".
func NewExecutor(migrator Migrator, cfg Config) *Executor {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.OnError == "" {
		cfg.OnError = OnErrorContinue
	}
	return &Executor{migrator: migrator, cfg: cfg}
}

// Snapshot returns the current counters.
func (e *Executor) Snapshot() Snapshot {
	return e.stats.snapshot()
}

// Run drains src through the worker pool until exhaustion, ctx
// cancellation, or the on_error=stop policy trips. It returns the final
// Snapshot and the first hard error encountered (a Source error, never a
// per-zone migration failure, which is only ever counted).
func (e *Executor) Run(ctx context.Context, src Source) (Snapshot, error) {
	queueCap := e.cfg.Concurrency * 2
	if queueCap < 1 {
		queueCap = 1
	}
	zones := make(chan string, queueCap)

	workCtx, cancelWork := context.WithCancel(context.Background())
	defer cancelWork()

	g, gctx := errgroup.WithContext(ctx)

	start := time.Now()
	total, knownTotal := 0, false
	if sized, ok := src.(Sized); ok {
		total, knownTotal = sized.Total()
	}

	g.Go(func() error {
		defer close(zones)
		for {
			if e.stopRequested.Load() {
				return nil
			}
			zone, ok, err := src.Next(gctx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			select {
			case zones <- zone:
			case <-gctx.Done():
				return nil
			}
		}
	})

	for i := 0; i < e.cfg.Concurrency; i++ {
		g.Go(func() error {
			for zone := range zones {
				if e.stopRequested.Load() {
					e.stats.recordSkipped()
					continue
				}
				if err := e.migrator.Migrate(workCtx, zone); err != nil {
					log.WithError(err).WithField("zone", zone).Error("zone migration failed")
					e.stats.recordFailure()
					if e.cfg.OnError == OnErrorStop {
						e.stopRequested.Store(true)
					}
					continue
				}
				e.stats.recordSuccess()
			}
			return nil
		})
	}

	if e.cfg.ProgressIntervalS > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(time.Duration(e.cfg.ProgressIntervalS * float64(time.Second)))
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					e.logProgress(start, total, knownTotal)
				case <-gctx.Done():
					return nil
				}
			}
		})
	}

	done := make(chan struct{})
	go e.superviseShutdown(ctx, done, cancelWork)

	err := g.Wait()
	close(done)

	return e.stats.snapshot(), err
}

// superviseShutdown implements the graceful-shutdown rules once ctx
// is canceled: set stopRequested immediately, then wait up to
// graceful_timeout_s for in-flight workers before canceling them. With no
// graceful timeout, workers are canceled outright under on_error=stop and
// otherwise waited for without a bound.
func (e *Executor) superviseShutdown(ctx context.Context, done <-chan struct{}, cancelWork context.CancelFunc) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}

	e.stopRequested.Store(true)
	log.Warn("interrupt received, draining in-flight zones")

	switch {
	case e.cfg.GracefulTimeoutS > 0:
		select {
		case <-time.After(time.Duration(e.cfg.GracefulTimeoutS * float64(time.Second))):
			log.Warn("graceful shutdown timeout elapsed, canceling remaining work")
			cancelWork()
		case <-done:
		}
	case e.cfg.OnError == OnErrorStop:
		cancelWork()
	default:
		<-done
	}
}

func (e *Executor) logProgress(start time.Time, total int, knownTotal bool) {
	snap := e.stats.snapshot()
	elapsed := time.Since(start).Seconds()
	fields := log.Fields{
		"processed": snap.Processed,
		"success":   snap.Success,
		"failed":    snap.Failed,
		"skipped":   snap.Skipped,
		"elapsed_s": elapsed,
	}
	if elapsed > 0 && snap.Processed > 0 {
		rate := float64(snap.Processed) / elapsed
		fields["rate"] = rate
		if knownTotal && rate > 0 {
			remaining := total - snap.Processed
			if remaining < 0 {
				remaining = 0
			}
			fields["eta_s"] = float64(remaining) / rate
		}
	}
	log.WithFields(fields).Info("batch progress")
}
