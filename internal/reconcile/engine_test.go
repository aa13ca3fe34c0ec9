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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railadeividas/powerdns-migrator/internal/pdns"
)

type fakeZoneServer struct {
	zone    *pdns.Zone
	created *pdns.Zone
	deleted bool
	patched []pdns.ChangeOp
}

func newFakeZoneServer(zone *pdns.Zone) *httptest.Server {
	f := &fakeZoneServer{zone: zone}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/servers/localhost/zones/example.com.", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if f.zone == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(f.zone)
		case http.MethodDelete:
			f.deleted = true
			f.zone = nil
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPatch:
			var body struct {
				Rrsets []pdns.ChangeOp `json:"rrsets"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.patched = body.Rrsets
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/servers/localhost/zones", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var z pdns.Zone
		json.NewDecoder(r.Body).Decode(&z)
		f.created = &z
		f.zone = &z
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(z)
	})
	return httptest.NewServer(mux)
}

func testClient(srv *httptest.Server) *pdns.Client {
	conn := pdns.NewConnectionDescriptor(srv.URL, "secret", "localhost", true)
	return pdns.NewClient(conn, pdns.DefaultClientConfig())
}

func TestEngineMigrateCreatesWhenTargetAbsent(t *testing.T) {
	sourceZone := &pdns.Zone{
		Name: "example.com.",
		Kind: "Native",
		Rrsets: []pdns.Rrset{
			{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "1.2.3.4"}}},
		},
	}
	sourceSrv := newFakeZoneServer(sourceZone)
	defer sourceSrv.Close()
	targetSrv := newFakeZoneServer(nil)
	defer targetSrv.Close()

	engine := NewEngine(testClient(sourceSrv), testClient(targetSrv), Options{})
	defer engine.Close()

	result, err := engine.Migrate(context.Background(), "example.com.")
	require.NoError(t, err)
	assert.Equal(t, pdns.ActionCreateZone, result.MigratorAction)
}

func TestEngineMigrateNoopWhenZonesMatch(t *testing.T) {
	zoneBody := func() *pdns.Zone {
		return &pdns.Zone{
			Name: "example.com.",
			Kind: "Native",
			Rrsets: []pdns.Rrset{
				{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "1.2.3.4"}}},
			},
		}
	}
	sourceSrv := newFakeZoneServer(zoneBody())
	defer sourceSrv.Close()
	targetSrv := newFakeZoneServer(zoneBody())
	defer targetSrv.Close()

	engine := NewEngine(testClient(sourceSrv), testClient(targetSrv), Options{})
	defer engine.Close()

	result, err := engine.Migrate(context.Background(), "example.com.")
	require.NoError(t, err)
	assert.Equal(t, pdns.ActionNoop, result.MigratorAction)
}

func TestEngineMigratePatchesOnDiff(t *testing.T) {
	sourceSrv := newFakeZoneServer(&pdns.Zone{
		Name: "example.com.",
		Kind: "Native",
		Rrsets: []pdns.Rrset{
			{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "1.2.3.4"}}},
		},
	})
	defer sourceSrv.Close()
	targetSrv := newFakeZoneServer(&pdns.Zone{
		Name: "example.com.",
		Kind: "Native",
		Rrsets: []pdns.Rrset{
			{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "9.9.9.9"}}},
		},
	})
	defer targetSrv.Close()

	engine := NewEngine(testClient(sourceSrv), testClient(targetSrv), Options{})
	defer engine.Close()

	result, err := engine.Migrate(context.Background(), "example.com.")
	require.NoError(t, err)
	assert.Equal(t, pdns.ActionPatchZone, result.MigratorAction)
	assert.Len(t, result.Changes, 1)
}

func TestEngineMigrateDryRunIssuesNoWrites(t *testing.T) {
	sourceSrv := newFakeZoneServer(&pdns.Zone{
		Name: "example.com.",
		Kind: "Native",
		Rrsets: []pdns.Rrset{
			{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "1.2.3.4"}}},
		},
	})
	defer sourceSrv.Close()
	targetSrv := newFakeZoneServer(nil)
	defer targetSrv.Close()

	engine := NewEngine(testClient(sourceSrv), testClient(targetSrv), Options{DryRun: true})
	defer engine.Close()

	result, err := engine.Migrate(context.Background(), "example.com.")
	require.NoError(t, err)
	assert.Equal(t, pdns.ActionCreateZone, result.MigratorAction, "expected computed action even under dry run")
}

func TestEngineMigrateRecreateDeletesThenCreates(t *testing.T) {
	sourceSrv := newFakeZoneServer(&pdns.Zone{
		Name: "example.com.",
		Kind: "Native",
		Rrsets: []pdns.Rrset{
			{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "1.2.3.4"}}},
		},
	})
	defer sourceSrv.Close()
	targetSrv := newFakeZoneServer(&pdns.Zone{
		Name: "example.com.",
		Kind: "Native",
		Rrsets: []pdns.Rrset{
			{Name: "example.com.", Type: "A", TTL: 3600, Records: []pdns.Record{{Content: "9.9.9.9"}}},
		},
	})
	defer targetSrv.Close()

	engine := NewEngine(testClient(sourceSrv), testClient(targetSrv), Options{Recreate: true})
	defer engine.Close()

	result, err := engine.Migrate(context.Background(), "example.com.")
	require.NoError(t, err)
	assert.Equal(t, pdns.ActionRecreateZone, result.MigratorAction)
}
