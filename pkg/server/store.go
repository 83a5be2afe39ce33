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

package server

import (
	"sync"
	"time"

	"github.com/fabricsight/fabricsight/pkg/collect"
)

// ReportStore holds the latest result set. Writers replace the whole set;
// readers see either the previous or the new set, never a mix.
type ReportStore struct {
	mu        sync.RWMutex
	set       *collect.ResultSet
	updatedAt time.Time
}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Put replaces the stored result set.
func (s *ReportStore) Put(set *collect.ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	s.updatedAt = time.Now().UTC()
}

// Latest returns the stored set and its update time; ok is false before
// the first collection completes.
func (s *ReportStore) Latest() (set *collect.ResultSet, updatedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set, s.updatedAt, s.set != nil
}

// Domain returns one domain's result from the stored set.
func (s *ReportStore) Domain(name string) (collect.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.set == nil {
		return collect.Result{}, false
	}
	res, ok := s.set.Results[name]
	return res, ok
}
