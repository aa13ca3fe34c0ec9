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
	"sort"
	"strings"

	"github.com/railadeividas/powerdns-migrator/internal/pdns"
)

const typeSOA = "SOA"

// Diff maps source and target rrsets by (name, type), emits a DELETE for
// every target-only key and a REPLACE
// for every key that is new or semantically changed on the source side,
// and returns them in deletes-creates-updates order.
func Diff(source, target []pdns.Rrset, opts Options) []pdns.ChangeOp {
	sourceByKey := indexByKey(source)
	targetByKey := indexByKey(target)

	var deletes, creates, updates []pdns.ChangeOp

	for key, tRR := range targetByKey {
		if _, inSource := sourceByKey[key]; !inSource {
			deletes = append(deletes, pdns.ChangeOp{
				Name:       tRR.Name,
				Type:       tRR.Type,
				ChangeType: pdns.ChangeDelete,
			})
		}
	}

	for key, sRR := range sourceByKey {
		tRR, inTarget := targetByKey[key]
		if !inTarget {
			creates = append(creates, replaceOp(sRR))
			continue
		}
		if rrsetsEqual(sRR, tRR, opts) {
			continue
		}
		if key.Type == typeSOA && opts.IgnoreSOASerial {
			sRR = preserveTargetSerial(sRR, tRR)
		}
		updates = append(updates, replaceOp(sRR))
	}

	sortOps(deletes)
	sortOps(creates)
	sortOps(updates)

	changes := make([]pdns.ChangeOp, 0, len(deletes)+len(creates)+len(updates))
	changes = append(changes, deletes...)
	changes = append(changes, creates...)
	changes = append(changes, updates...)
	return changes
}

func indexByKey(rrsets []pdns.Rrset) map[pdns.RrsetKey]pdns.Rrset {
	out := make(map[pdns.RrsetKey]pdns.Rrset, len(rrsets))
	for _, rr := range rrsets {
		out[rr.Key()] = rr
	}
	return out
}

func replaceOp(rr pdns.Rrset) pdns.ChangeOp {
	return pdns.ChangeOp{
		Name:       rr.Name,
		Type:       rr.Type,
		ChangeType: pdns.ChangeReplace,
		TTL:        rr.TTL,
		Records:    rr.Records,
		Comments:   rr.Comments,
	}
}

func sortOps(ops []pdns.ChangeOp) {
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Name != ops[j].Name {
			return ops[i].Name < ops[j].Name
		}
		return ops[i].Type < ops[j].Type
	})
}

type recordKey struct {
	content  string
	disabled bool
	priority int
	hasPrio  bool
}

type commentKey struct {
	content    string
	disabled   bool
	account    string
	hasAccount bool
	modifiedAt int64
	hasMod     bool
}

// rrsetsEqual applies the semantic-equality rule: same (name, type, ttl)
// plus equal sorted multisets of normalized records and comments.
func rrsetsEqual(a, b pdns.Rrset, opts Options) bool {
	if pdns.Normalize(a.Name) != pdns.Normalize(b.Name) || a.Type != b.Type || a.TTL != b.TTL {
		return false
	}
	return recordsEqual(a, b, opts) && commentsEqual(a.Comments, b.Comments)
}

func recordsEqual(a, b pdns.Rrset, opts Options) bool {
	if len(a.Records) != len(b.Records) {
		return false
	}
	ignoreSerial := a.Type == typeSOA && opts.IgnoreSOASerial
	ak := recordKeys(a.Records, ignoreSerial)
	bk := recordKeys(b.Records, ignoreSerial)
	sortRecordKeys(ak)
	sortRecordKeys(bk)
	for i := range ak {
		if ak[i] != bk[i] {
			return false
		}
	}
	return true
}

func recordKeys(records []pdns.Record, ignoreSOASerial bool) []recordKey {
	out := make([]recordKey, len(records))
	for i, r := range records {
		content := r.Content
		if ignoreSOASerial {
			content = normalizeSOASerial(content)
		}
		k := recordKey{content: content, disabled: r.Disabled}
		if r.Priority != nil {
			k.hasPrio = true
			k.priority = *r.Priority
		}
		out[i] = k
	}
	return out
}

func sortRecordKeys(keys []recordKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].content != keys[j].content {
			return keys[i].content < keys[j].content
		}
		if keys[i].disabled != keys[j].disabled {
			return !keys[i].disabled
		}
		if keys[i].priority != keys[j].priority {
			return keys[i].priority < keys[j].priority
		}
		return !keys[i].hasPrio && keys[j].hasPrio
	})
}

func commentsEqual(a, b []pdns.Comment) bool {
	if len(a) != len(b) {
		return false
	}
	ak := commentKeys(a)
	bk := commentKeys(b)
	sortCommentKeys(ak)
	sortCommentKeys(bk)
	for i := range ak {
		if ak[i] != bk[i] {
			return false
		}
	}
	return true
}

func commentKeys(comments []pdns.Comment) []commentKey {
	out := make([]commentKey, len(comments))
	for i, c := range comments {
		k := commentKey{content: c.Content, disabled: c.Disabled}
		if c.Account != nil {
			k.hasAccount = true
			k.account = *c.Account
		}
		if c.ModifiedAt != nil {
			k.hasMod = true
			k.modifiedAt = *c.ModifiedAt
		}
		out[i] = k
	}
	return out
}

func sortCommentKeys(keys []commentKey) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.content != b.content {
			return a.content < b.content
		}
		if a.disabled != b.disabled {
			return !a.disabled
		}
		if a.hasAccount != b.hasAccount || a.account != b.account {
			return !a.hasAccount || (b.hasAccount && a.account < b.account)
		}
		if a.hasMod != b.hasMod {
			return !a.hasMod
		}
		return a.modifiedAt < b.modifiedAt
	})
}

// normalizeSOASerial zeroes the serial (third whitespace-delimited field) of
// an SOA content string when it has at least 7 parts.
func normalizeSOASerial(content string) string {
	parts := strings.Fields(content)
	if len(parts) < 7 {
		return content
	}
	parts[2] = "0"
	return strings.Join(parts, " ")
}

// preserveTargetSerial rewrites a source SOA rrset's sole record to carry
// the target's current serial, so a REPLACE under ignore_soa_serial leaves
// the target's serial counter untouched.
func preserveTargetSerial(source, target pdns.Rrset) pdns.Rrset {
	if len(source.Records) == 0 || len(target.Records) == 0 {
		return source
	}
	sourceParts := strings.Fields(source.Records[0].Content)
	targetParts := strings.Fields(target.Records[0].Content)
	if len(sourceParts) < 7 || len(targetParts) < 7 {
		return source
	}
	sourceParts[2] = targetParts[2]

	rewritten := source
	rewritten.Records = make([]pdns.Record, len(source.Records))
	copy(rewritten.Records, source.Records)
	rewritten.Records[0].Content = strings.Join(sourceParts, " ")
	return rewritten
}
