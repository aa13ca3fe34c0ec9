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

package pdns

// Record is a single resource record within an rrset. Content is opaque
// except for the narrow SOA and TXT handling in package reconcile.
type Record struct {
	Content  string `json:"content"`
	Disabled bool   `json:"disabled,omitempty"`
	Priority *int   `json:"priority,omitempty"`
}

// Comment annotates an rrset, as returned verbatim by the PowerDNS API.
type Comment struct {
	Content    string  `json:"content"`
	Disabled   bool    `json:"disabled,omitempty"`
	Account    *string `json:"account,omitempty"`
	ModifiedAt *int64  `json:"modified_at,omitempty"`
}

// Rrset is the set of records sharing a (name, type) within a zone. The
// identity key is (Name, Type).
type Rrset struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	TTL      int       `json:"ttl"`
	Records  []Record  `json:"records"`
	Comments []Comment `json:"comments,omitempty"`
}

// Zone is the sanitized subset of a PowerDNS zone document: only the
// fields in this struct ever round-trip through this tool. Other fields
// returned by the API (serial, edited_serial, dnssec, url, ...) are
// dropped by fromPgoZone when converting from the generated client's type.
type Zone struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind,omitempty"`
	Masters     []string `json:"masters,omitempty"`
	Nameservers []string `json:"nameservers,omitempty"`
	Account     *string  `json:"account,omitempty"`
	SOAEdit     *string  `json:"soa_edit,omitempty"`
	SOAEditAPI  *string  `json:"soa_edit_api,omitempty"`
	Rrsets      []Rrset  `json:"rrsets"`
}

// ChangeOp is a single DELETE or REPLACE operation in a PATCH /zones/{id}
// request body's rrsets array.
type ChangeOp struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	ChangeType string    `json:"changetype"`
	TTL        int       `json:"ttl,omitempty"`
	Records    []Record  `json:"records"`
	Comments   []Comment `json:"comments,omitempty"`
}

// ChangeType values for ChangeOp.ChangeType.
const (
	ChangeDelete  = "DELETE"
	ChangeReplace = "REPLACE"
)

// MigratorAction reports which top-level action the reconciliation engine
// took (or would take, under dry-run) for a zone.
type MigratorAction string

const (
	ActionNoop         MigratorAction = "NOOP"
	ActionCreateZone   MigratorAction = "CREATE_ZONE"
	ActionPatchZone    MigratorAction = "PATCH_ZONE"
	ActionRecreateZone MigratorAction = "RECREATE_ZONE"
)

// MigrationResult is the outcome of reconciling one zone.
type MigrationResult struct {
	SourceZone     Zone
	TargetZone     *Zone
	Changes        []ChangeOp
	MigratorAction MigratorAction
}

// RrsetKey identifies an rrset by its (name, type) pair.
type RrsetKey struct {
	Name string
	Type string
}

// Key returns the (name, type) identity of an rrset.
func (r Rrset) Key() RrsetKey {
	return RrsetKey{Name: Normalize(r.Name), Type: r.Type}
}
