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

import "strings"

// ConnectionDescriptor is an immutable description of a single PowerDNS
// API endpoint. It outlives any Client built from it.
type ConnectionDescriptor struct {
	BaseURL   string
	APIKey    string
	ServerID  string
	VerifySSL bool
}

// NewConnectionDescriptor fills in the ServerID default the way the
// original powerdns_migrator.config.PowerDNSConnection dataclass does.
func NewConnectionDescriptor(baseURL, apiKey, serverID string, verifySSL bool) ConnectionDescriptor {
	if serverID == "" {
		serverID = "localhost"
	}
	return ConnectionDescriptor{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ServerID:  serverID,
		VerifySSL: verifySSL,
	}
}

// Endpoint composes the full URL for a server-scoped API path, e.g.
// Endpoint("/zones/example.com.") -> "{base}/api/v1/servers/{id}/zones/example.com.".
func (c ConnectionDescriptor) Endpoint(path string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	return base + "/api/v1/servers/" + c.ServerID + path
}
