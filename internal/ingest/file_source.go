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

// Package ingest provides batch.Source implementations for feeding zone
// names into the batch executor.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSource reads zone names from a text file, one per line, skipping
// blank lines and lines starting with "#". It reads the whole file up
// front so it can report a total count for progress ETA.
type FileSource struct {
	zones []string
	idx   int
}

// NewFileSource opens path and pre-scans it into the ordered list of zone
// names it will yield.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening zones file %s: %w", path, err)
	}
	defer f.Close()

	zones, err := readZoneLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading zones file %s: %w", path, err)
	}
	return &FileSource{zones: zones}, nil
}

func readZoneLines(r io.Reader) ([]string, error) {
	var zones []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		zones = append(zones, line)
	}
	return zones, scanner.Err()
}

// Next returns the next zone name in file order.
func (f *FileSource) Next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if f.idx >= len(f.zones) {
		return "", false, nil
	}
	zone := f.zones[f.idx]
	f.idx++
	return zone, true, nil
}

// Close is a no-op; the file is only held open during NewFileSource.
func (f *FileSource) Close() error { return nil }

// Total reports the number of zones read from the file.
func (f *FileSource) Total() (int, bool) {
	return len(f.zones), true
}
