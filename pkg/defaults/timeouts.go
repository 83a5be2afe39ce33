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

package defaults

import "time"

// Collection timeouts and limits.
const (
	// DomainTimeout bounds one full collection pass for a single domain,
	// including session login and all bulk queries.
	DomainTimeout = 10 * time.Minute

	// QueryTimeout bounds a single bulk or object query.
	QueryTimeout = 2 * time.Minute

	// LoginTimeout bounds session establishment, across retries.
	LoginTimeout = 30 * time.Second

	// MaxConcurrentDomains bounds the orchestrator worker pool.
	MaxConcurrentDomains = 10

	// ProgressPollInterval is how often the orchestrator aggregates
	// per-domain progress for the progress sink.
	ProgressPollInterval = 2 * time.Second
)

// Session client tuning.
const (
	// SessionQueriesPerSecond rate-limits bulk queries per session so a
	// collection pass does not starve the management plane.
	SessionQueriesPerSecond = 4

	// SessionQueryBurst is the rate limiter burst per session.
	SessionQueryBurst = 8

	// LoginRetryAttempts is the number of login attempts before a domain
	// is reported as failed.
	LoginRetryAttempts = 3
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Mail delivery.
const (
	// MailTimeout bounds one SMTP delivery.
	MailTimeout = 30 * time.Second
)
