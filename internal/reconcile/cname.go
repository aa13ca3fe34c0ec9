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
	log "github.com/sirupsen/logrus"

	"github.com/railadeividas/powerdns-migrator/internal/pdns"
)

const typeCNAME = "CNAME"

// ApplyCNAMEConflictPolicy groups rrsets by normalized name and, within each
// group, resolves CNAME coexistence per the zone-apex and non-apex rules. When
// AutoFixDoubleCNAMEConflicts is set it also trims any multi-record CNAME
// rrset down to its first record, logging what was dropped.
func ApplyCNAMEConflictPolicy(zoneName string, rrsets []pdns.Rrset, opts Options) []pdns.Rrset {
	if !opts.AutoFixCNAMEConflicts {
		return rrsets
	}
	apex := pdns.Normalize(zoneName)

	groups := make(map[string][]pdns.Rrset)
	order := make([]string, 0)
	for _, rr := range rrsets {
		name := pdns.Normalize(rr.Name)
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], rr)
	}

	result := make([]pdns.Rrset, 0, len(rrsets))
	for _, name := range order {
		group := groups[name]
		var kept []pdns.Rrset
		hasCNAME := false
		hasOther := false
		for _, rr := range group {
			if rr.Type == typeCNAME {
				hasCNAME = true
			} else {
				hasOther = true
			}
		}

		switch {
		case name == apex:
			for _, rr := range group {
				if rr.Type == typeCNAME {
					log.WithField("name", name).Warn("dropping CNAME at zone apex")
					continue
				}
				kept = append(kept, rr)
			}
		case hasCNAME && hasOther:
			var droppedTypes []string
			for _, rr := range group {
				if rr.Type == typeCNAME {
					kept = append(kept, rr)
					continue
				}
				droppedTypes = append(droppedTypes, rr.Type)
			}
			log.WithFields(log.Fields{
				"name":    name,
				"dropped": droppedTypes,
			}).Warn("non-apex name has CNAME and other records; keeping CNAME only")
		default:
			kept = group
		}

		result = append(result, kept...)
	}

	if opts.AutoFixDoubleCNAMEConflicts {
		result = trimMultiRecordCNAMEs(result)
	}

	return result
}

func trimMultiRecordCNAMEs(rrsets []pdns.Rrset) []pdns.Rrset {
	out := make([]pdns.Rrset, 0, len(rrsets))
	for _, rr := range rrsets {
		if rr.Type == typeCNAME && len(rr.Records) > 1 {
			kept := rr.Records[0]
			removed := rr.Records[1:]
			removedContents := make([]string, 0, len(removed))
			for _, r := range removed {
				removedContents = append(removedContents, r.Content)
			}
			log.WithFields(log.Fields{
				"name":    rr.Name,
				"kept":    kept.Content,
				"removed": removedContents,
			}).Warn("trimming multi-record CNAME to its first record")
			rr.Records = []pdns.Record{kept}
		}
		out = append(out, rr)
	}
	return out
}
