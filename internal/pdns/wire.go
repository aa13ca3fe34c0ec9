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

import pgo "github.com/ffledgling/pdns-go"

// toPgoZone converts a sanitized domain Zone into the wire shape the
// generated client encodes. Only the whitelisted fields are copied: the
// generated pgo.Zone has no knowledge of our whitelist, so the encoder's
// narrowness lives entirely in this function, not in the library.
func toPgoZone(z Zone) pgo.Zone {
	out := pgo.Zone{
		Name:        z.Name,
		Kind:        z.Kind,
		Masters:     z.Masters,
		Nameservers: z.Nameservers,
		Rrsets:      make([]pgo.RrSet, len(z.Rrsets)),
	}
	if z.Account != nil {
		out.Account = *z.Account
	}
	if z.SOAEdit != nil {
		out.SoaEdit = *z.SOAEdit
	}
	if z.SOAEditAPI != nil {
		out.SoaEditApi = *z.SOAEditAPI
	}
	for i, rr := range z.Rrsets {
		out.Rrsets[i] = toPgoRrset(rr)
	}
	return out
}

// fromPgoZone narrows a wire Zone back down to the subset this tool
// understands, dropping everything the API returns that isn't part of the
// whitelist (serial, edited_serial, dnssec, url, ...).
func fromPgoZone(z pgo.Zone) Zone {
	out := Zone{
		Name:        z.Name,
		Kind:        z.Kind,
		Masters:     z.Masters,
		Nameservers: z.Nameservers,
		Rrsets:      make([]Rrset, len(z.Rrsets)),
	}
	if z.Account != "" {
		account := z.Account
		out.Account = &account
	}
	if z.SoaEdit != "" {
		soaEdit := z.SoaEdit
		out.SOAEdit = &soaEdit
	}
	if z.SoaEditApi != "" {
		soaEditAPI := z.SoaEditApi
		out.SOAEditAPI = &soaEditAPI
	}
	for i, rr := range z.Rrsets {
		out.Rrsets[i] = fromPgoRrset(rr)
	}
	return out
}

func toPgoRrset(rr Rrset) pgo.RrSet {
	out := pgo.RrSet{
		Name:     rr.Name,
		Type_:    rr.Type,
		Ttl:      int32(rr.TTL),
		Records:  make([]pgo.Record, len(rr.Records)),
		Comments: make([]pgo.Comment, len(rr.Comments)),
	}
	for i, r := range rr.Records {
		out.Records[i] = toPgoRecord(r)
	}
	for i, c := range rr.Comments {
		out.Comments[i] = toPgoComment(c)
	}
	return out
}

func fromPgoRrset(rr pgo.RrSet) Rrset {
	out := Rrset{
		Name:     rr.Name,
		Type:     rr.Type_,
		TTL:      int(rr.Ttl),
		Records:  make([]Record, len(rr.Records)),
		Comments: make([]Comment, len(rr.Comments)),
	}
	for i, r := range rr.Records {
		out.Records[i] = fromPgoRecord(r)
	}
	for i, c := range rr.Comments {
		out.Comments[i] = fromPgoComment(c)
	}
	return out
}

// toPgoChangeOp builds the RrSet shape used in a PATCH body: identical to a
// plain rrset but with Changetype populated.
func toPgoChangeOp(op ChangeOp) pgo.RrSet {
	out := pgo.RrSet{
		Name:       op.Name,
		Type_:      op.Type,
		Ttl:        int32(op.TTL),
		Changetype: op.ChangeType,
		Records:    make([]pgo.Record, len(op.Records)),
		Comments:   make([]pgo.Comment, len(op.Comments)),
	}
	for i, r := range op.Records {
		out.Records[i] = toPgoRecord(r)
	}
	for i, c := range op.Comments {
		out.Comments[i] = toPgoComment(c)
	}
	return out
}

// toPgoRecord drops Priority: the PowerDNS v1 API has no separate priority
// field on a record (MX/SRV priority lives in Content), so Priority exists
// only for this tool's own semantic-equality comparisons in package
// reconcile and never round-trips over the wire.
func toPgoRecord(r Record) pgo.Record {
	return pgo.Record{Content: r.Content, Disabled: r.Disabled}
}

func fromPgoRecord(r pgo.Record) Record {
	return Record{Content: r.Content, Disabled: r.Disabled}
}

func toPgoComment(c Comment) pgo.Comment {
	out := pgo.Comment{Content: c.Content, Disabled: c.Disabled}
	if c.Account != nil {
		out.Account = *c.Account
	}
	if c.ModifiedAt != nil {
		out.ModifiedAt = *c.ModifiedAt
	}
	return out
}

func fromPgoComment(c pgo.Comment) Comment {
	out := Comment{Content: c.Content, Disabled: c.Disabled}
	if c.Account != "" {
		account := c.Account
		out.Account = &account
	}
	if c.ModifiedAt != 0 {
		modifiedAt := c.ModifiedAt
		out.ModifiedAt = &modifiedAt
	}
	return out
}
