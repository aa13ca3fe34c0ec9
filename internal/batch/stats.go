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
	"sync"

	"github.com/railadeividas/powerdns-migrator/internal/pdnsmetrics"
)

// Stats is the single-lock counter block shared by every worker and read by
// the progress reporter. All mutation goes through the methods below.
type Stats struct {
	mu        sync.Mutex
	processed int
	success   int
	failed    int
	skipped   int
}

func (s *Stats) recordSuccess() {
	s.mu.Lock()
	s.processed++
	s.success++
	s.mu.Unlock()
	pdnsmetrics.ZonesProcessedTotal.Inc()
	pdnsmetrics.ZonesSucceededTotal.Inc()
}

func (s *Stats) recordFailure() {
	s.mu.Lock()
	s.processed++
	s.failed++
	s.mu.Unlock()
	pdnsmetrics.ZonesProcessedTotal.Inc()
	pdnsmetrics.ZonesFailedTotal.Inc()
}

func (s *Stats) recordSkipped() {
	s.mu.Lock()
	s.processed++
	s.skipped++
	s.mu.Unlock()
	pdnsmetrics.ZonesProcessedTotal.Inc()
	pdnsmetrics.ZonesSkippedTotal.Inc()
}

// Snapshot is a point-in-time copy of the counters, safe to read without
// holding the lock.
type Snapshot struct {
	Processed int
	Success   int
	Failed    int
	Skipped   int
}

func (s *Stats) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Processed: s.processed,
		Success:   s.success,
		Failed:    s.failed,
		Skipped:   s.skipped,
	}
}
