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

// Package fabric is the boundary to the external management API.
//
// The collection core consumes this package only through the Session and
// SessionFactory interfaces: a session can list all records of a class,
// pull the bulk telemetry dump, and report the domain's self-declared
// name. Everything behind those calls (transport, auth, pagination) is a
// collaborator concern, kept deliberately thin.
package fabric

import (
	"context"

	"github.com/fabricsight/fabricsight/pkg/record"
)

// Session is one authenticated connection to a managed domain. Sessions
// are owned by a single collection task and never shared. All calls are
// context-bound; a canceled context aborts the underlying I/O.
type Session interface {
	// DomainName returns the domain's self-reported name. This may differ
	// from the configured address (DNS name vs. cluster name) and keys the
	// domain's entry in the result set.
	DomainName() string

	// Resolve lists all records of the given class.
	Resolve(ctx context.Context, class string) ([]record.Raw, error)

	// ResolveClasses lists all records for each of the given classes.
	// A class with no instances yields an empty (not absent) entry.
	ResolveClasses(ctx context.Context, classes []string) (map[string][]record.Raw, error)

	// StatsDump pulls the single bulk telemetry snapshot. Records of mixed
	// stat classes are returned flat; callers filter by DN/RN.
	StatsDump(ctx context.Context) ([]record.Raw, error)

	// Close terminates the session. Errors are advisory; the session must
	// be considered unusable afterwards.
	Close(ctx context.Context) error
}

// SessionFactory creates sessions for one configured domain target.
type SessionFactory interface {
	// Connect establishes and authenticates a new session.
	Connect(ctx context.Context) (Session, error)
}

// Target is one configured domain: an identifier (the configured address)
// and the factory that opens sessions to it.
type Target struct {
	// ID is the configured address, used for progress keys and logs until
	// the domain reports its own name.
	ID string

	Factory SessionFactory
}
