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

// Package collect runs collection passes: one collector per domain
// walking a fixed phase order, and an orchestrator fanning collectors
// out across domains with bounded concurrency and aggregated progress.
package collect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
	"github.com/fabricsight/fabricsight/pkg/section"
	"github.com/fabricsight/fabricsight/pkg/stats"
)

// Collection phase names, in execution order. No phase starts before the
// phase producing its data dependency has finished.
const (
	PhaseConnect   = "connect"
	PhasePull      = "pull"
	PhaseSystem    = "system"
	PhaseFabricIC  = "fi-inventory"
	PhaseEquipment = "equipment-inventory"
	PhasePolicies  = "policies"
	PhaseProfiles  = "profiles"
	PhaseLan       = "lan"
	PhaseSan       = "san"
	PhaseFaults    = "faults"
)

// Checkpoint values reported as each phase completes. Values are absolute
// positions, not increments; the final few points are reserved for fault
// assembly and session teardown.
var checkpoints = map[string]int{
	PhaseConnect:   1,
	PhasePull:      12,
	PhaseSystem:    24,
	PhaseFabricIC:  36,
	PhaseEquipment: 48,
	PhasePolicies:  60,
	PhaseProfiles:  72,
	PhaseLan:       84,
	PhaseSan:       96,
}

// Collector produces one DomainReport per Collect call.
type Collector struct {
	// Version is the build version recorded in report envelopes.
	Version string

	// SkipTelemetry skips the bulk stats pull; counter sections are
	// populated with uniformly shaped zero records instead.
	SkipTelemetry bool
}

// Collect runs one full collection pass against a domain. progress, when
// non-nil, receives absolute checkpoint values as phases complete,
// starting at 0. The returned report is complete or the error is fatal
// for this domain; there are no partial successes.
func (c *Collector) Collect(ctx context.Context, target fabric.Target, progress func(int)) (*report.DomainReport, error) {
	if progress == nil {
		progress = func(int) {}
	}
	progress(0)

	rep := report.New(c.Version)
	rep.Collection.PassID = uuid.NewString()
	rep.Collection.StartedAt = time.Now().UTC()
	rep.Collection.Version = c.Version
	rep.Collection.TelemetryMode = report.TelemetryFull
	if c.SkipTelemetry {
		rep.Collection.TelemetryMode = report.TelemetrySkipped
	}

	start := time.Now()
	defer func() {
		passDuration.Observe(time.Since(start).Seconds())
	}()

	phase := func(name string, fn func() error) error {
		phaseStart := time.Now()
		err := fn()
		d := time.Since(phaseStart)
		phaseDuration.WithLabelValues(name).Observe(d.Seconds())
		rep.Collection.Phases = append(rep.Collection.Phases, report.PhaseTiming{Name: name, Duration: d})
		if err != nil {
			return fmt.Errorf("phase %s: %w", name, err)
		}
		if pct, ok := checkpoints[name]; ok {
			progress(pct)
		}
		return nil
	}

	var session fabric.Session
	if err := phase(PhaseConnect, func() (err error) {
		session, err = target.Factory.Connect(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("session close failed", "target", target.ID, "error", err)
		}
	}()

	var idx *record.Index
	var cache *stats.Cache
	if err := phase(PhasePull, func() error {
		collections, err := session.ResolveClasses(ctx, fabric.CollectionClasses)
		if err != nil {
			return err
		}
		idx = record.NewIndex(collections)

		if c.SkipTelemetry {
			cache = stats.NewDisabledCache(dnsOf(idx, fabric.ClassChassis), serverDns(idx))
			return nil
		}
		dump, err := session.StatsDump(ctx)
		if err != nil {
			return err
		}
		cache = stats.NewCache(dump)
		return nil
	}); err != nil {
		return nil, err
	}

	cat := section.NewCatalog(idx)
	rep.SetMeta("domain", session.DomainName())

	steps := []struct {
		name string
		fn   func()
	}{
		{PhaseSystem, func() { rep.System = section.BuildSystem(idx) }},
		{PhaseFabricIC, func() { rep.Inventory.FabricInterconnects = section.BuildFabricInterconnects(idx, cache) }},
		{PhaseEquipment, func() {
			rep.Inventory.Chassis = section.BuildChassis(idx, cache)
			rep.Inventory.Servers = section.BuildServers(idx, cache, cat)
		}},
		{PhasePolicies, func() { rep.Policies = section.BuildPolicies(idx) }},
		{PhaseProfiles, func() { rep.Profiles = section.BuildProfiles(idx) }},
		{PhaseLan, func() { rep.Lan = section.BuildLan(idx, cache) }},
		{PhaseSan, func() { rep.San = section.BuildSan(idx, cache) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := phase(step.name, func() error { step.fn(); return nil }); err != nil {
			return nil, err
		}
	}

	if err := phase(PhaseFaults, func() error {
		rep.Faults = section.BuildFaults(idx)
		return nil
	}); err != nil {
		return nil, err
	}

	rep.Collection.FinishedAt = time.Now().UTC()
	rep.Collection.Duration = rep.Collection.FinishedAt.Sub(rep.Collection.StartedAt)
	return rep, nil
}

func dnsOf(idx *record.Index, class string) []string {
	rs := idx.Class(class)
	dns := make([]string, 0, len(rs))
	for _, r := range rs {
		dns = append(dns, r.Dn)
	}
	return dns
}

func serverDns(idx *record.Index) []string {
	return append(dnsOf(idx, fabric.ClassBlade), dnsOf(idx, fabric.ClassRackUnit)...)
}
