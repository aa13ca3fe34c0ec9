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

package reconcile

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/railadeividas/powerdns-migrator/internal/pdns"
)

// Engine drives the full reconciliation of one zone between a source and a
// target PowerDNS server: sanitize, diff, and dispatch to the appropriate
// write action.
type Engine struct {
	Source *pdns.Client
	Target *pdns.Client
	Opts   Options
}

// NewEngine builds an Engine over an already-constructed source and target
// client pair.
func NewEngine(source, target *pdns.Client, opts Options) *Engine {
	return &Engine{Source: source, Target: target, Opts: opts}
}

// Close releases both underlying clients.
func (e *Engine) Close() error {
	if err := e.Source.Close(); err != nil {
		return err
	}
	return e.Target.Close()
}

// Migrate reconciles a single zone: target absent creates, no diff no-ops,
// otherwise patches or recreates
// depending on Opts.Recreate. Opts.DryRun computes the full result without
// issuing any write request.
func (e *Engine) Migrate(ctx context.Context, zoneName string) (pdns.MigrationResult, error) {
	zone := pdns.Normalize(zoneName)

	rawSource, err := e.Source.GetZone(ctx, zone)
	if err != nil {
		return pdns.MigrationResult{}, fmt.Errorf("fetching source zone %s: %w", zone, err)
	}

	sanitizedSource := Sanitize(*rawSource, e.Opts)
	sanitizedSource.Rrsets = ApplyCNAMEConflictPolicy(zone, sanitizedSource.Rrsets, e.Opts)

	rawTarget, err := e.Target.ZoneExists(ctx, zone)
	if err != nil {
		return pdns.MigrationResult{}, fmt.Errorf("checking target zone %s: %w", zone, err)
	}

	result := pdns.MigrationResult{
		SourceZone: sanitizedSource,
		TargetZone: rawTarget,
	}

	if rawTarget == nil {
		result.MigratorAction = pdns.ActionCreateZone
		log.WithField("zone", zone).Info("target zone absent, will create")
		if e.Opts.DryRun {
			return result, nil
		}
		created, err := e.Target.CreateZone(ctx, sanitizedSource)
		if err != nil {
			return result, fmt.Errorf("creating target zone %s: %w", zone, err)
		}
		result.TargetZone = created
		return result, nil
	}

	changes := Diff(sanitizedSource.Rrsets, rawTarget.Rrsets, e.Opts)
	result.Changes = changes

	if len(changes) == 0 {
		result.MigratorAction = pdns.ActionNoop
		return result, nil
	}

	if e.Opts.Recreate {
		result.MigratorAction = pdns.ActionRecreateZone
		log.WithField("zone", zone).Info("diff found, recreating zone")
		if e.Opts.DryRun {
			return result, nil
		}
		if err := e.Target.DeleteZone(ctx, zone); err != nil {
			return result, fmt.Errorf("deleting target zone %s for recreate: %w", zone, err)
		}
		created, err := e.Target.CreateZone(ctx, sanitizedSource)
		if err != nil {
			return result, fmt.Errorf("recreating target zone %s: %w", zone, err)
		}
		result.TargetZone = created
		return result, nil
	}

	result.MigratorAction = pdns.ActionPatchZone
	log.WithFields(log.Fields{"zone": zone, "changes": len(changes)}).Info("diff found, patching zone")
	if e.Opts.DryRun {
		return result, nil
	}
	if err := e.Target.PatchZoneRrsets(ctx, zone, changes); err != nil {
		return result, fmt.Errorf("patching target zone %s: %w", zone, err)
	}
	return result, nil
}
