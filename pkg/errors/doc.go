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

// Package errors provides structured error types shared across fabricsight.
//
// Collaborator failures (session login, bulk queries) are wrapped with a
// code so the orchestrator can classify per-domain outcomes. Data-shape
// problems inside the normalization layer are never raised as errors; those
// are absorbed with placeholder values at the point of use.
package errors
