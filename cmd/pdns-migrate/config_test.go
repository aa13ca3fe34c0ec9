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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsRequiresZoneOrZonesFile(t *testing.T) {
	cfg := NewConfig()
	err := cfg.ParseFlags([]string{
		"--source-url=https://source", "--source-api-key=s",
		"--target-url=https://target", "--target-api-key=t",
	})
	assert.Error(t, err, "expected an error when neither --zone nor --zones-file is given")
}

func TestParseFlagsRejectsBothZoneAndZonesFile(t *testing.T) {
	cfg := NewConfig()
	err := cfg.ParseFlags([]string{
		"--source-url=https://source", "--source-api-key=s",
		"--target-url=https://target", "--target-api-key=t",
		"--zone=example.com.", "--zones-file=/tmp/zones.txt",
	})
	assert.Error(t, err, "expected an error when both --zone and --zones-file are given")
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg := NewConfig()
	err := cfg.ParseFlags([]string{
		"--source-url=https://source", "--source-api-key=s",
		"--target-url=https://target", "--target-api-key=t",
		"--zone=example.com.",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "continue", cfg.OnError)
	assert.Equal(t, "localhost", cfg.SourceServerID)
	assert.Equal(t, "localhost", cfg.TargetServerID)
}
