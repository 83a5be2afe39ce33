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

// Package config loads the YAML run configuration: the domains to
// collect, collection options, and the optional server and mail
// settings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "github.com/fabricsight/fabricsight/pkg/errors"
)

// File is the top-level configuration document.
type File struct {
	Domains    []Domain   `yaml:"domains"`
	Collection Collection `yaml:"collection,omitempty"`
	Server     Server     `yaml:"server,omitempty"`
	Mail       Mail       `yaml:"mail,omitempty"`
}

// Domain is one management domain target.
type Domain struct {
	Address  string `yaml:"address"`
	Username string `yaml:"username"`

	// Password is the literal credential. Mutually exclusive with
	// PasswordRef.
	Password string `yaml:"password,omitempty"`

	// PasswordRef names an entry in the credential store, resolved before
	// dispatch.
	PasswordRef string `yaml:"passwordRef,omitempty"`

	// Insecure skips TLS verification for this domain.
	Insecure bool `yaml:"insecure,omitempty"`
}

// Collection holds pass-wide collection options.
type Collection struct {
	// SkipStats skips the bulk telemetry pull for every domain.
	SkipStats bool `yaml:"skipStats,omitempty"`

	// Concurrency caps simultaneously collected domains; zero uses the
	// default pool size.
	Concurrency int `yaml:"concurrency,omitempty"`

	// DomainTimeout bounds one domain's pass; zero uses the default.
	DomainTimeout time.Duration `yaml:"domainTimeout,omitempty"`

	// Schedule is a cron expression for periodic re-collection in serve
	// mode; empty collects once at startup.
	Schedule string `yaml:"schedule,omitempty"`
}

// Server holds serve-mode options.
type Server struct {
	Port int `yaml:"port,omitempty"`
}

// Mail holds optional summary-delivery settings. Delivery is enabled
// when Host and at least one recipient are set.
type Mail struct {
	Host string   `yaml:"host,omitempty"`
	Port int      `yaml:"port,omitempty"`
	From string   `yaml:"from,omitempty"`
	To   []string `yaml:"to,omitempty"`
}

// Enabled reports whether mail delivery is configured.
func (m Mail) Enabled() bool {
	return m.Host != "" && len(m.To) > 0
}

// Load reads and validates a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeNotFound,
			fmt.Sprintf("reading config %s", path), err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("parsing config %s", path), err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the configuration for structural errors.
func (f *File) Validate() error {
	if len(f.Domains) == 0 {
		return ferrors.New(ferrors.ErrCodeInvalidRequest, "config names no domains")
	}
	seen := make(map[string]bool, len(f.Domains))
	for i, d := range f.Domains {
		if d.Address == "" {
			return ferrors.New(ferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("domain %d has no address", i))
		}
		if seen[d.Address] {
			return ferrors.New(ferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("domain %s listed twice", d.Address))
		}
		seen[d.Address] = true
		if d.Username == "" {
			return ferrors.New(ferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("domain %s has no username", d.Address))
		}
		if d.Password == "" && d.PasswordRef == "" {
			return ferrors.New(ferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("domain %s has neither password nor passwordRef", d.Address))
		}
		if d.Password != "" && d.PasswordRef != "" {
			return ferrors.New(ferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("domain %s sets both password and passwordRef", d.Address))
		}
	}
	return nil
}
