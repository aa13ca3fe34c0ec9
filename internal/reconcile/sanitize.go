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

// Package reconcile implements the zone reconciliation engine: sanitizing
// a source zone document, diffing it against a target zone, and producing
// the minimal PATCH change set (or a create/recreate decision).
package reconcile

import "github.com/railadeividas/powerdns-migrator/internal/pdns"

const (
	defaultTTL  = 3600
	defaultKind = "Native"
)

// Options are the policy flags that steer sanitize, the CNAME conflict
// policy, and the diff phase.
type Options struct {
	Recreate                    bool
	DryRun                      bool
	IgnoreSOASerial             bool
	AutoFixCNAMEConflicts       bool
	AutoFixDoubleCNAMEConflicts bool
	NormalizeTXTEscapes         bool
}

// Sanitize strips a raw source zone down to the whitelisted fields,
// normalizes every name, and defaults TTL/kind.
func Sanitize(zone pdns.Zone, opts Options) pdns.Zone {
	sanitized := pdns.Zone{
		Name:        pdns.Normalize(zone.Name),
		Kind:        zone.Kind,
		Masters:     zone.Masters,
		Nameservers: zone.Nameservers,
		Account:     zone.Account,
		SOAEdit:     zone.SOAEdit,
		SOAEditAPI:  zone.SOAEditAPI,
		Rrsets:      sanitizeRrsets(zone.Rrsets, opts),
	}
	if sanitized.Kind == "" {
		sanitized.Kind = defaultKind
	}
	return sanitized
}

func sanitizeRrsets(rrsets []pdns.Rrset, opts Options) []pdns.Rrset {
	cleaned := make([]pdns.Rrset, 0, len(rrsets))
	for _, rr := range rrsets {
		ttl := rr.TTL
		if ttl == 0 {
			ttl = defaultTTL
		}
		records := make([]pdns.Record, 0, len(rr.Records))
		for _, rec := range rr.Records {
			content := rec.Content
			if opts.NormalizeTXTEscapes && rr.Type == "TXT" {
				content = NormalizeTXTEscapes(content)
			}
			records = append(records, pdns.Record{
				Content:  content,
				Disabled: rec.Disabled,
				Priority: rec.Priority,
			})
		}
		out := pdns.Rrset{
			Name:    pdns.Normalize(rr.Name),
			Type:    rr.Type,
			TTL:     ttl,
			Records: records,
		}
		if len(rr.Comments) > 0 {
			out.Comments = rr.Comments
		}
		cleaned = append(cleaned, out)
	}
	return cleaned
}
