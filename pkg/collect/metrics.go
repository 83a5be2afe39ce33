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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Collection pass metrics
	passDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fs_collection_pass_duration_seconds",
			Help:    "Time taken to collect one complete domain report",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600},
		},
	)

	domainCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fs_domain_collection_total",
			Help: "Total number of domain collection attempts",
		},
		[]string{"status"}, // success or error
	)

	phaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fs_collection_phase_duration_seconds",
			Help:    "Time taken by individual collection phases",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"phase"},
	)

	lastReportTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fs_last_report_timestamp_seconds",
			Help: "Unix time of the last successful report per domain",
		},
		[]string{"domain"},
	)
)
