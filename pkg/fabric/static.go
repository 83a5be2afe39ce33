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

package fabric

import (
	"context"

	"github.com/fabricsight/fabricsight/pkg/record"
)

// StaticSession serves records from in-memory collections. It backs
// collector and orchestrator tests and offline fixture replay; it has no
// transport and every call succeeds unless configured otherwise.
type StaticSession struct {
	// Name is the self-reported domain name.
	Name string

	// Collections maps class → records returned by Resolve.
	Collections map[string][]record.Raw

	// Stats is returned by StatsDump.
	Stats []record.Raw

	// Closed counts Close calls, for test assertions.
	Closed int
}

var _ Session = (*StaticSession)(nil)

func (s *StaticSession) DomainName() string { return s.Name }

func (s *StaticSession) Resolve(ctx context.Context, class string) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := s.Collections[class]
	if records == nil {
		records = []record.Raw{}
	}
	return records, nil
}

func (s *StaticSession) ResolveClasses(ctx context.Context, classes []string) (map[string][]record.Raw, error) {
	out := make(map[string][]record.Raw, len(classes))
	for _, class := range classes {
		records, err := s.Resolve(ctx, class)
		if err != nil {
			return nil, err
		}
		out[class] = records
	}
	return out, nil
}

func (s *StaticSession) StatsDump(ctx context.Context) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Stats == nil {
		return []record.Raw{}, nil
	}
	return s.Stats, nil
}

func (s *StaticSession) Close(_ context.Context) error {
	s.Closed++
	return nil
}

// StaticFactory hands out a fixed session, or fails every Connect with Err.
type StaticFactory struct {
	Session *StaticSession
	Err     error
}

var _ SessionFactory = (*StaticFactory)(nil)

func (f *StaticFactory) Connect(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Session, nil
}
