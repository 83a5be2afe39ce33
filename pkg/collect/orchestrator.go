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

package collect

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fabricsight/fabricsight/pkg/defaults"
	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/header"
	"github.com/fabricsight/fabricsight/pkg/report"
)

// Result is one domain's outcome: a complete report, or the error that
// stopped its collection. Exactly one of Report and Err is set.
type Result struct {
	// Domain is the self-reported domain name on success, the configured
	// target ID on failure.
	Domain string `json:"domain" yaml:"domain"`

	// Target is the configured target ID the result came from.
	Target string `json:"target" yaml:"target"`

	Report *report.DomainReport `json:"report,omitempty" yaml:"report,omitempty"`
	Err    string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether this domain's collection failed.
func (r Result) Failed() bool { return r.Err != "" }

// ResultSet is the outcome of one orchestrated run: one entry per
// configured domain, successes and failures side by side.
type ResultSet struct {
	header.Header `json:",inline" yaml:",inline"`

	Results map[string]Result `json:"results" yaml:"results"`
}

// Failures returns the results for domains whose collection failed.
func (s *ResultSet) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// Orchestrator fans one collector out across all configured domains.
// A failing domain never affects another domain's collection.
type Orchestrator struct {
	// Collector runs each domain's pass. Required.
	Collector *Collector

	// Concurrency caps simultaneously collected domains; zero uses
	// defaults.MaxConcurrentDomains.
	Concurrency int

	// DomainTimeout bounds one domain's pass; zero uses
	// defaults.DomainTimeout.
	DomainTimeout time.Duration

	// Sink receives aggregated progress while the run is in flight; nil
	// disables progress reporting.
	Sink ProgressSink

	// PollInterval is the progress reporting cadence; zero uses
	// defaults.ProgressPollInterval.
	PollInterval time.Duration
}

// RunAll collects every target and returns the merged result set. The
// set carries one entry per target regardless of individual failures;
// RunAll itself fails only when the parent context is canceled before
// the run completes.
func (o *Orchestrator) RunAll(ctx context.Context, targets []fabric.Target) (*ResultSet, error) {
	set := &ResultSet{Results: make(map[string]Result, len(targets))}
	set.Init(header.KindReportSet, header.APIVersionV1, o.Collector.Version)

	board := NewProgressBoard()
	for _, t := range targets {
		board.Set(t.ID, 0)
	}

	pollerDone := o.startPoller(ctx, board)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	limit := o.Concurrency
	if limit <= 0 {
		limit = defaults.MaxConcurrentDomains
	}
	g.SetLimit(limit)

	for _, target := range targets {
		target := target
		g.Go(func() error {
			timeout := o.DomainTimeout
			if timeout <= 0 {
				timeout = defaults.DomainTimeout
			}
			dctx, cancel := context.WithTimeout(gctx, timeout)
			defer cancel()

			rep, err := o.Collector.Collect(dctx, target, func(pct int) {
				board.Set(target.ID, pct)
			})

			res := Result{Domain: target.ID, Target: target.ID}
			if err != nil {
				slog.Error("domain collection failed", "target", target.ID, "error", err)
				domainCollectionTotal.WithLabelValues("error").Inc()
				res.Err = err.Error()
			} else {
				if meta := rep.GetMetadata(); meta["domain"] != "" {
					res.Domain = meta["domain"]
				}
				res.Report = rep
				domainCollectionTotal.WithLabelValues("success").Inc()
				lastReportTimestamp.WithLabelValues(res.Domain).SetToCurrentTime()
				board.Set(target.ID, 100)
			}

			mu.Lock()
			set.Results[res.Domain] = res
			mu.Unlock()

			// Per-domain failures are recorded, never propagated: one bad
			// domain must not cancel the group.
			return nil
		})
	}

	err := g.Wait()
	close(pollerDone)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return set, ctxErr
	}
	if o.Sink != nil {
		o.Sink.Update(board.Mean(), false)
	}
	return set, err
}

// startPoller reports the mean checkpoint to the sink on a fixed cadence
// until the returned channel is closed.
func (o *Orchestrator) startPoller(ctx context.Context, board *ProgressBoard) chan struct{} {
	done := make(chan struct{})
	if o.Sink == nil {
		return done
	}
	interval := o.PollInterval
	if interval <= 0 {
		interval = defaults.ProgressPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				o.Sink.Update(board.Mean(), true)
			}
		}
	}()
	return done
}
