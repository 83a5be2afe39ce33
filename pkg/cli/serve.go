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

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"

	"github.com/fabricsight/fabricsight/pkg/collect"
	"github.com/fabricsight/fabricsight/pkg/config"
	"github.com/fabricsight/fabricsight/pkg/logging"
	"github.com/fabricsight/fabricsight/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the latest collected reports over HTTP",
		Description: `Run an initial collection pass, then serve the results:

  GET /v1/reports           full latest result set
  GET /v1/reports/{domain}  one domain's report or recorded failure
  GET /health               liveness probe
  GET /ready                readiness probe (503 until the first pass)
  GET /metrics              prometheus metrics

With a cron schedule (--schedule or collection.schedule in the config)
the domains are re-collected periodically and the served result set is
replaced atomically after each pass.`,
		Flags: []cli.Flag{
			configFlag,
			credStoreFlag,
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP listen port (overrides config)",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:  "schedule",
				Usage: `Cron expression for periodic re-collection (e.g. "0 */6 * * *")`,
			},
			&cli.BoolFlag{
				Name:  "skip-stats",
				Usage: "Skip the bulk telemetry pull on every pass",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if cmd.Bool("skip-stats") {
				cfg.Collection.SkipStats = true
			}

			targets, err := buildTargets(cfg, credStorePath(cmd.String("cred-store")))
			if err != nil {
				return err
			}

			srvConfig := server.NewConfig()
			srvConfig.Name = name
			srvConfig.Version = version
			if p := int(cmd.Int("port")); p > 0 {
				srvConfig.Port = p
			} else if cfg.Server.Port > 0 {
				srvConfig.Port = cfg.Server.Port
			}
			srv := server.New(srvConfig, server.NewReportStore())

			orch := &collect.Orchestrator{
				Collector: &collect.Collector{
					Version:       version,
					SkipTelemetry: cfg.Collection.SkipStats,
				},
				Concurrency:   cfg.Collection.Concurrency,
				DomainTimeout: cfg.Collection.DomainTimeout,
				Sink:          server.MetricsSink{},
			}

			runPass := func() {
				set, err := orch.RunAll(ctx, targets)
				if err != nil {
					slog.Error("collection pass aborted", "error", err)
					return
				}
				srv.Store().Put(set)
				slog.Info("collection pass published",
					"domains", len(set.Results), "failed", len(set.Failures()))

				if cfg.Mail.Enabled() {
					if err := sendSummary(cfg, set); err != nil {
						slog.Warn("summary mail delivery failed", "error", err)
					}
				}
			}
			go runPass()

			schedule := cfg.Collection.Schedule
			if s := cmd.String("schedule"); s != "" {
				schedule = s
			}
			if schedule != "" {
				sched := cron.New(cron.WithLogger(
					cron.PrintfLogger(logging.NewLogLogger(slog.LevelDebug))))
				if _, err := sched.AddFunc(schedule, runPass); err != nil {
					return fmt.Errorf("invalid schedule %q: %w", schedule, err)
				}
				sched.Start()
				defer sched.Stop()
				slog.Info("scheduled re-collection", "schedule", schedule)
			}

			return srv.Start(ctx)
		},
	}
}
