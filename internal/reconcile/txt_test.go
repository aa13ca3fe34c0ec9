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

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTXTEscapesCollapsesRuns(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", `"hello \"world\""`, `"hello \"world\""`},
		{"double escaped quote", `"hello \\\"world\\\""`, `"hello \"world\""`},
		{"run not followed by quote or backslash is untouched", `"a\\\\b"`, `"a\\\\b"`},
		{"lone backslash before other char untouched", `"a\nb"`, `"a\nb"`},
		{"multiple quoted segments", `"a\\\"b" "c\\\"d"`, `"a\"b" "c\"d"`},
		{"outside quotes untouched", `a\\\"b`, `a\\\"b`},
		{"no escapes", `"plain text"`, `"plain text"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTXTEscapes(tc.in))
		})
	}
}

func TestNormalizeTXTEscapesIdempotent(t *testing.T) {
	in := `"hello \\\"world\\\""`
	once := NormalizeTXTEscapes(in)
	twice := NormalizeTXTEscapes(once)
	assert.Equal(t, once, twice, "expected idempotent normalization")
}
