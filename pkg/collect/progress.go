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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// ProgressBoard tracks per-domain completion checkpoints. Each collection
// task is the single writer for its own key; readers aggregate across
// keys concurrently. Checkpoints are set, never incremented, so a
// re-entered phase cannot inflate progress.
type ProgressBoard struct {
	mu   sync.RWMutex
	pcts map[string]int
}

func NewProgressBoard() *ProgressBoard {
	return &ProgressBoard{pcts: map[string]int{}}
}

// Set records the checkpoint for one domain key.
func (b *ProgressBoard) Set(key string, pct int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pcts[key] = pct
}

// Get returns the last checkpoint for a key, zero when unknown.
func (b *ProgressBoard) Get(key string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pcts[key]
}

// Mean returns the mean checkpoint across all registered keys, zero when
// no keys are registered.
func (b *ProgressBoard) Mean() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.pcts) == 0 {
		return 0
	}
	sum := 0
	for _, p := range b.pcts {
		sum += p
	}
	return sum / len(b.pcts)
}

// ProgressSink receives aggregated progress updates while a collection
// run is in flight. running is false exactly once, on the final update.
type ProgressSink interface {
	Update(percent int, running bool)
}

// LogSink logs progress at debug level and, when stderr is a terminal,
// redraws a single-line meter.
type LogSink struct {
	tty bool
}

func NewLogSink() *LogSink {
	info, err := os.Stderr.Stat()
	return &LogSink{tty: err == nil && info.Mode()&os.ModeCharDevice != 0}
}

func (s *LogSink) Update(percent int, running bool) {
	slog.Debug("collection progress", "percent", percent, "running", running)
	if !s.tty {
		return
	}
	filled := percent / 5
	fmt.Fprintf(os.Stderr, "\r[%-20s] %3d%%", strings.Repeat("=", filled), percent)
	if !running {
		fmt.Fprintln(os.Stderr)
	}
}

// NopSink discards progress updates.
type NopSink struct{}

func (NopSink) Update(int, bool) {}
