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

// Normalize ensures a zone or rrset name ends with a trailing dot, the
// canonical form the PowerDNS API expects everywhere. It is idempotent.
func Normalize(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "."
}
