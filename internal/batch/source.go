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

// Package batch drives the reconciliation engine over a stream of zone
// names with bounded worker concurrency, a single-lock stats block, and
// signal-driven graceful shutdown.
package batch

import "context"

// Source produces a finite sequence of zone names. Implementations may read
// from a file, a database cursor, or a message consumer. The executor calls
// Next until ok is false, Next returns an error, the run is canceled, or a
// stop is requested; it never calls Close, which is left to the Source's owner.
type Source interface {
	Next(ctx context.Context) (zone string, ok bool, err error)
	Close() error
}
