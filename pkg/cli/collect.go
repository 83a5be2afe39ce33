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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fabricsight/fabricsight/pkg/collect"
	"github.com/fabricsight/fabricsight/pkg/config"
	"github.com/fabricsight/fabricsight/pkg/credstore"
	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/mailer"
	"github.com/fabricsight/fabricsight/pkg/serializer"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "Run one collection pass across all configured domains",
		Description: `Connect to every domain in the configuration, pull the record
collection, and emit the merged result set including:
  - System identity and cluster state
  - Fabric interconnect, chassis, and server inventory
  - Boot, firmware, scrub, and maintenance policies with pool usage
  - Service profiles
  - LAN and SAN networking with per-server VIF paths
  - Active faults

Domains are collected concurrently and fail independently: a domain
that cannot be reached appears in the result set with its error, next
to the successful reports.

The result set can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			configFlag,
			outputFlag,
			formatFlag,
			credStoreFlag,
			&cli.StringSliceFlag{
				Name:    "domain",
				Aliases: []string{"d"},
				Usage:   "Domain to collect (format: host=user:pass, or an address from the config; can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "skip-stats",
				Usage: "Skip the bulk telemetry pull (counter sections carry zero placeholders)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Maximum number of domains collected at once (overrides config)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-domain collection timeout (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "mail-to",
				Usage: "Summary mail recipient (overrides config; can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "no-mail",
				Usage: "Skip the summary mail even when configured",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			domainFlags := cmd.StringSlice("domain")
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				// Inline --domain targets carry their own credentials and can
				// run without a config file.
				if !allInline(domainFlags) {
					return err
				}
				slog.Debug("running without config file", "error", err)
				cfg = &config.File{}
			}
			if err := applyDomainFlags(cfg, domainFlags); err != nil {
				return err
			}
			if cmd.Bool("skip-stats") {
				cfg.Collection.SkipStats = true
			}
			if v := int(cmd.Int("concurrency")); v > 0 {
				cfg.Collection.Concurrency = v
			}
			if d := cmd.Duration("timeout"); d > 0 {
				cfg.Collection.DomainTimeout = d
			}
			if to := cmd.StringSlice("mail-to"); len(to) > 0 {
				cfg.Mail.To = to
			}

			targets, err := buildTargets(cfg, credStorePath(cmd.String("cred-store")))
			if err != nil {
				return err
			}

			orch := &collect.Orchestrator{
				Collector: &collect.Collector{
					Version:       version,
					SkipTelemetry: cfg.Collection.SkipStats,
				},
				Concurrency:   cfg.Collection.Concurrency,
				DomainTimeout: cfg.Collection.DomainTimeout,
				Sink:          collect.NewLogSink(),
			}
			set, err := orch.RunAll(ctx, targets)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			if err := w.Serialize(ctx, set); err != nil {
				return err
			}

			if cfg.Mail.Enabled() && !cmd.Bool("no-mail") {
				if err := sendSummary(cfg, set); err != nil {
					slog.Warn("summary mail delivery failed", "error", err)
				}
			}

			if n := len(set.Failures()); n > 0 {
				slog.Warn("collection finished with failures",
					"failed", n, "total", len(set.Results))
			}
			return nil
		},
	}
}

// allInline reports whether every --domain value carries inline
// credentials.
func allInline(flags []string) bool {
	if len(flags) == 0 {
		return false
	}
	for _, f := range flags {
		if !strings.Contains(f, "=") {
			return false
		}
	}
	return true
}

// applyDomainFlags narrows the configured domains to the --domain
// selection. host=user:pass values define ad-hoc targets; bare values
// select config entries by address.
func applyDomainFlags(cfg *config.File, flags []string) error {
	if len(flags) == 0 {
		return nil
	}

	selected := make([]config.Domain, 0, len(flags))
	for _, f := range flags {
		if host, cred, ok := strings.Cut(f, "="); ok {
			user, pass, ok := strings.Cut(cred, ":")
			if host == "" || user == "" || !ok {
				return fmt.Errorf("invalid --domain %q, want host=user:pass", f)
			}
			selected = append(selected, config.Domain{
				Address:  host,
				Username: user,
				Password: pass,
			})
			continue
		}

		found := false
		for _, d := range cfg.Domains {
			if d.Address == f {
				selected = append(selected, d)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("domain %q not in config", f)
		}
	}

	cfg.Domains = selected
	return cfg.Validate()
}

// buildTargets converts configured domains into connection targets,
// resolving credential store references. The store is opened lazily, so
// configurations with literal passwords never touch it.
func buildTargets(cfg *config.File, storePath string) ([]fabric.Target, error) {
	var store *credstore.Store

	targets := make([]fabric.Target, 0, len(cfg.Domains))
	for _, d := range cfg.Domains {
		password := d.Password
		if d.PasswordRef != "" {
			if store == nil {
				passphrase := os.Getenv(passphraseEnvVar)
				if passphrase == "" {
					return nil, fmt.Errorf("config references credential store entries but %s is not set", passphraseEnvVar)
				}
				store = credstore.Open(storePath, []byte(passphrase))
			}
			p, err := store.Get(d.PasswordRef)
			if err != nil {
				return nil, fmt.Errorf("resolving credentials for %s: %w", d.Address, err)
			}
			password = p
		}

		targets = append(targets, fabric.Target{
			ID: d.Address,
			Factory: fabric.NewRestFactory(fabric.Config{
				Address:  d.Address,
				Username: d.Username,
				Password: password,
				Insecure: d.Insecure,
			}),
		})
	}
	return targets, nil
}

// sendSummary delivers a plain-text run summary to the configured
// recipients.
func sendSummary(cfg *config.File, set *collect.ResultSet) error {
	m := &mailer.Mailer{
		Host: cfg.Mail.Host,
		Port: cfg.Mail.Port,
		From: cfg.Mail.From,
	}
	if m.From == "" {
		m.From = name + "@" + cfg.Mail.Host
	}

	failed := len(set.Failures())
	subject := fmt.Sprintf("%s: %d/%d domains collected",
		name, len(set.Results)-failed, len(set.Results))
	return m.Send(cfg.Mail.To, subject, buildSummary(set))
}

// buildSummary renders one line per domain, sorted by name, with failure
// details indented under the failing domain.
func buildSummary(set *collect.ResultSet) []byte {
	names := make([]string, 0, len(set.Results))
	for n := range set.Results {
		names = append(names, n)
	}
	sort.Strings(names)

	titler := cases.Title(language.English)
	var b strings.Builder
	for _, n := range names {
		res := set.Results[n]
		status := "collected"
		if res.Failed() {
			status = "failed"
		}
		fmt.Fprintf(&b, "%s: %s\n", n, titler.String(status))
		if res.Failed() {
			fmt.Fprintf(&b, "    %s\n", res.Err)
		}
	}
	return []byte(b.String())
}
