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

// Package stats extracts per-device performance counters from the single
// bulk telemetry snapshot pulled once per collection pass.
//
// Section builders never query the API for counters; they filter the
// cached dump by DN and RN patterns. When telemetry collection is skipped
// for a pass, the cache synthesizes one uniformly shaped zero record per
// real device, so builders index results by device identity without
// branching on whether telemetry was collected.
package stats

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/fabricsight/fabricsight/pkg/record"
)

// IdentifierField is the projected field that carries the device DN
// instead of a counter value.
const IdentifierField = "Dn"

const zeroValue = "0"

// Counter is one telemetry record projected to a requested field list.
// Every requested field is present: a real value, or a zero placeholder.
type Counter struct {
	Dn      string            `json:"dn" yaml:"dn"`
	Rn      string            `json:"rn" yaml:"rn"`
	Suspect bool              `json:"suspect,omitempty" yaml:"suspect,omitempty"`
	Values  map[string]string `json:"values" yaml:"values"`
}

// Get returns the projected field value, or "0" for a field that was not
// requested. Counters never expose absent fields.
func (c Counter) Get(field string) string {
	if v, ok := c.Values[field]; ok {
		return v
	}
	return zeroValue
}

// Cache holds the pass-scoped telemetry dump plus the real device DNs used
// to synthesize placeholders in skip-telemetry mode. It is read-only after
// construction and safe for concurrent Filter calls.
type Cache struct {
	dump       []record.Raw
	chassisDns []string
	serverDns  []string
	enabled    bool
}

// NewCache wraps a bulk telemetry dump for filtering.
func NewCache(dump []record.Raw) *Cache {
	return &Cache{dump: dump, enabled: true}
}

// NewDisabledCache creates a cache for a pass where telemetry collection
// was skipped. chassisDns and serverDns enumerate the real devices so
// placeholder records carry true identifiers.
func NewDisabledCache(chassisDns, serverDns []string) *Cache {
	return &Cache{
		chassisDns: append([]string(nil), chassisDns...),
		serverDns:  append([]string(nil), serverDns...),
	}
}

// Enabled reports whether real telemetry backs this cache.
func (c *Cache) Enabled() bool { return c.enabled }

// Filter returns the counters whose DN matches dnPattern and RN matches
// rnPattern, projected to exactly fields. Matching is case-sensitive
// regex. In skip-telemetry mode it returns one zero record per real
// device of the pattern's device class instead (or a single zero record
// for a non-device-scoped pattern).
//
// Filter never fails the pipeline: an invalid pattern logs and yields no
// matches; a field absent from a matched record projects to zero.
func (c *Cache) Filter(dnPattern, rnPattern string, fields []string) []Counter {
	if !c.enabled {
		return c.placeholders(dnPattern, fields)
	}

	dnRe, err := regexp.Compile(dnPattern)
	if err != nil {
		slog.Warn("bad counter DN pattern", "pattern", dnPattern, "error", err)
		return []Counter{}
	}
	rnRe, err := regexp.Compile(rnPattern)
	if err != nil {
		slog.Warn("bad counter RN pattern", "pattern", rnPattern, "error", err)
		return []Counter{}
	}

	out := []Counter{}
	for _, r := range c.dump {
		if !dnRe.MatchString(r.Dn) || !rnRe.MatchString(r.Rn()) {
			continue
		}
		out = append(out, project(r, fields))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dn < out[j].Dn })
	return out
}

func project(r record.Raw, fields []string) Counter {
	c := Counter{
		Dn:      r.Dn,
		Rn:      r.Rn(),
		Suspect: r.Bool("suspect"),
		Values:  make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if f == IdentifierField {
			c.Values[f] = r.Dn
			continue
		}
		c.Values[f] = r.StrOr(f, zeroValue)
	}
	return c
}

// placeholders synthesizes the skip-telemetry result shape: one zero
// record per real device the DN pattern addresses, with the identifier
// field carrying the true device DN. A pattern anchored on one device DN
// yields only that device's record, so per-device lookups stay attributed
// to the right device.
func (c *Cache) placeholders(dnPattern string, fields []string) []Counter {
	devices := matchDevices(c.scopeDevices(dnPattern), dnPattern)
	if len(devices) == 0 {
		return []Counter{zeroCounter("", fields)}
	}

	out := make([]Counter, 0, len(devices))
	for _, dn := range devices {
		out = append(out, zeroCounter(dn, fields))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dn < out[j].Dn })
	return out
}

// scopeDevices picks the device enumeration a DN pattern addresses.
// Patterns naming blades or rack units scope to servers; patterns naming
// chassis scope to chassis; anything else is not device-scoped.
func (c *Cache) scopeDevices(dnPattern string) []string {
	switch {
	case strings.Contains(dnPattern, "blade") || strings.Contains(dnPattern, "rack-unit"):
		return c.serverDns
	case strings.Contains(dnPattern, "chassis"):
		return c.chassisDns
	default:
		return nil
	}
}

// matchDevices narrows a device enumeration to the devices a DN pattern
// addresses. Builder patterns anchor on one quoted device DN followed by
// a sub-path; a device matches when the pattern body continues its DN at
// a segment boundary. Class-wide patterns that anchor on no particular
// device keep the whole enumeration.
func matchDevices(devices []string, dnPattern string) []string {
	body := strings.TrimPrefix(dnPattern, "^")

	var out []string
	for _, dn := range devices {
		quoted := regexp.QuoteMeta(dn)
		if !strings.HasPrefix(body, quoted) {
			continue
		}
		rest := body[len(quoted):]
		if rest == "" || rest == "$" || strings.HasPrefix(rest, "/") {
			out = append(out, dn)
		}
	}
	if len(out) == 0 {
		return devices
	}
	return out
}

func zeroCounter(dn string, fields []string) Counter {
	c := Counter{
		Dn:     dn,
		Rn:     record.LastSegment(dn),
		Values: make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if f == IdentifierField {
			c.Values[f] = dn
			continue
		}
		c.Values[f] = zeroValue
	}
	return c
}
