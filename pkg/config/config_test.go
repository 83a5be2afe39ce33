// Copyright (c) 2025 The Fabricsight Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fabricsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
domains:
  - address: ucs-01.lab
    username: admin
    password: secret
  - address: ucs-02.lab
    username: readonly
    passwordRef: lab-readonly
    insecure: true
collection:
  skipStats: true
  concurrency: 4
  schedule: "0 */6 * * *"
mail:
  host: smtp.lab
  to: [ops@lab.example]
`)

	f, err := Load(path)
	require.NoError(t, err)

	require.Len(t, f.Domains, 2)
	assert.Equal(t, "ucs-01.lab", f.Domains[0].Address)
	assert.Equal(t, "lab-readonly", f.Domains[1].PasswordRef)
	assert.True(t, f.Domains[1].Insecure)
	assert.True(t, f.Collection.SkipStats)
	assert.Equal(t, 4, f.Collection.Concurrency)
	assert.Equal(t, "0 */6 * * *", f.Collection.Schedule)
	assert.True(t, f.Mail.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no domains",
			content: `domains: []`,
			wantErr: "no domains",
		},
		{
			name: "missing username",
			content: `
domains:
  - address: ucs-01.lab
    password: x
`,
			wantErr: "no username",
		},
		{
			name: "no credential",
			content: `
domains:
  - address: ucs-01.lab
    username: admin
`,
			wantErr: "neither password nor passwordRef",
		},
		{
			name: "both credentials",
			content: `
domains:
  - address: ucs-01.lab
    username: admin
    password: x
    passwordRef: y
`,
			wantErr: "both password and passwordRef",
		},
		{
			name: "duplicate address",
			content: `
domains:
  - {address: ucs-01.lab, username: admin, password: x}
  - {address: ucs-01.lab, username: admin, password: x}
`,
			wantErr: "listed twice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
