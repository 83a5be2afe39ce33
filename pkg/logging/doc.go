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

// Package logging provides structured logging utilities for fabricsight components.
//
// It wraps the standard library slog package with project defaults: JSON output
// to stderr, module/version context on every record, LOG_LEVEL environment
// configuration, and source location tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("fabricsight", version)
//
//	    slog.Info("collection pass started", "domains", 3)
//	    slog.Error("session failed", "error", err)
//	}
//
// The LOG_LEVEL environment variable controls verbosity (debug, info, warn,
// error; case-insensitive, default info). An explicit level can be forced with
// SetDefaultStructuredLoggerWithLevel.
package logging
