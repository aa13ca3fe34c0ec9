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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railadeividas/powerdns-migrator/internal/pdns"
)

func TestDiffEmptyWhenIdentical(t *testing.T) {
	rrsets := []pdns.Rrset{
		{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "1.2.3.4"}}},
	}
	changes := Diff(rrsets, rrsets, Options{})
	assert.Empty(t, changes)
}

func TestDiffDeletesTargetOnlyRrset(t *testing.T) {
	source := []pdns.Rrset{}
	target := []pdns.Rrset{
		{Name: "old.example.com.", Type: "A", Records: []pdns.Record{{Content: "1.2.3.4"}}},
	}
	changes := Diff(source, target, Options{})
	require.Len(t, changes, 1)
	assert.Equal(t, pdns.ChangeDelete, changes[0].ChangeType)
}

func TestDiffCreatesSourceOnlyRrsetBeforeUpdates(t *testing.T) {
	source := []pdns.Rrset{
		{Name: "new.example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "1.1.1.1"}}},
		{Name: "changed.example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "2.2.2.2"}}},
	}
	target := []pdns.Rrset{
		{Name: "changed.example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "9.9.9.9"}}},
		{Name: "gone.example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "3.3.3.3"}}},
	}
	changes := Diff(source, target, Options{})
	require.Len(t, changes, 3)
	assert.Equal(t, pdns.ChangeDelete, changes[0].ChangeType, "expected deletes first")
	assert.Equal(t, "gone.example.com.", changes[0].Name)
	for _, c := range changes[1:] {
		assert.Equal(t, pdns.ChangeReplace, c.ChangeType, "expected only REPLACE after the delete")
	}
	assert.Equal(t, "new.example.com.", changes[1].Name, "expected creates before updates")
}

func TestDiffIgnoresRecordOrderWithinRrset(t *testing.T) {
	source := []pdns.Rrset{
		{Name: "multi.example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{
			{Content: "1.1.1.1"}, {Content: "2.2.2.2"},
		}},
	}
	target := []pdns.Rrset{
		{Name: "multi.example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{
			{Content: "2.2.2.2"}, {Content: "1.1.1.1"},
		}},
	}
	changes := Diff(source, target, Options{})
	assert.Empty(t, changes, "expected record order to not matter")
}

func TestDiffIgnoreSOASerialSkipsSerialOnlyChange(t *testing.T) {
	source := []pdns.Rrset{
		{Name: "example.com.", Type: "SOA", TTL: 3600, Records: []pdns.Record{
			{Content: "ns1.example.com. hostmaster.example.com. 5 3600 600 604800 3600"},
		}},
	}
	target := []pdns.Rrset{
		{Name: "example.com.", Type: "SOA", TTL: 3600, Records: []pdns.Record{
			{Content: "ns1.example.com. hostmaster.example.com. 99 3600 600 604800 3600"},
		}},
	}
	changes := Diff(source, target, Options{IgnoreSOASerial: true})
	assert.Empty(t, changes, "expected serial-only SOA change to be ignored")
}

func TestDiffIgnoreSOASerialPreservesTargetSerialOnReplace(t *testing.T) {
	source := []pdns.Rrset{
		{Name: "example.com.", Type: "SOA", TTL: 3600, Records: []pdns.Record{
			{Content: "ns1.example.com. hostmaster.example.com. 5 3600 600 604800 1800"},
		}},
	}
	target := []pdns.Rrset{
		{Name: "example.com.", Type: "SOA", TTL: 3600, Records: []pdns.Record{
			{Content: "ns1.example.com. hostmaster.example.com. 99 3600 600 604800 3600"},
		}},
	}
	changes := Diff(source, target, Options{IgnoreSOASerial: true})
	require.Len(t, changes, 1, "expected one REPLACE for the differing minimum TTL")
	assert.Equal(t, "ns1.example.com. hostmaster.example.com. 99 3600 600 604800 1800", changes[0].Records[0].Content)
}

func TestDiffWithoutIgnoreSOASerialTreatsSerialAsSignificant(t *testing.T) {
	source := []pdns.Rrset{
		{Name: "example.com.", Type: "SOA", TTL: 3600, Records: []pdns.Record{
			{Content: "ns1.example.com. hostmaster.example.com. 5 3600 600 604800 3600"},
		}},
	}
	target := []pdns.Rrset{
		{Name: "example.com.", Type: "SOA", TTL: 3600, Records: []pdns.Record{
			{Content: "ns1.example.com. hostmaster.example.com. 99 3600 600 604800 3600"},
		}},
	}
	changes := Diff(source, target, Options{IgnoreSOASerial: false})
	assert.Len(t, changes, 1, "expected serial difference to matter when not ignored")
}

func TestDiffChangeOpShapeMatchesExpected(t *testing.T) {
	source := []pdns.Rrset{
		{Name: "www.example.com.", Type: "A", TTL: 300, Records: []pdns.Record{{Content: "1.1.1.1"}}},
	}
	target := []pdns.Rrset{}

	want := []pdns.ChangeOp{
		{Name: "www.example.com.", Type: "A", ChangeType: pdns.ChangeReplace, TTL: 300, Records: []pdns.Record{{Content: "1.1.1.1"}}},
	}
	got := Diff(source, target, Options{})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Diff() mismatch (-want +got):\n%s", diff)
	}
}
