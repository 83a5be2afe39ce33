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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricsight/fabricsight/pkg/collect"
	"github.com/fabricsight/fabricsight/pkg/header"
	"github.com/fabricsight/fabricsight/pkg/report"
)

func testSet() *collect.ResultSet {
	set := &collect.ResultSet{Results: map[string]collect.Result{}}
	set.Init(header.KindReportSet, header.APIVersionV1, "test")

	rep := report.New("test")
	rep.System.Name = "ucs-01"
	set.Results["ucs-01"] = collect.Result{Domain: "ucs-01", Target: "ucs-01.lab", Report: rep}
	set.Results["ucs-02.lab"] = collect.Result{Domain: "ucs-02.lab", Target: "ucs-02.lab", Err: "connection refused"}
	return set
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(NewConfig(), NewReportStore())
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, req)
	return rec
}

func TestReadyBeforeAndAfterFirstPass(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.Store().Put(testSet())
	rec = doRequest(s, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleReports(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/v1/reports")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s.Store().Put(testSet())
	rec = doRequest(s, http.MethodGet, "/v1/reports")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var got collect.ResultSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Results, 2)
	assert.Equal(t, header.KindReportSet, got.Kind)
}

func TestHandleDomainReport(t *testing.T) {
	s := newTestServer(t)
	s.Store().Put(testSet())

	rec := doRequest(s, http.MethodGet, "/v1/reports/ucs-01")
	require.Equal(t, http.StatusOK, rec.Code)

	var got collect.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Report)
	assert.Equal(t, "ucs-01", got.Report.System.Name)

	// A recorded failure is served, not hidden.
	rec = doRequest(s, http.MethodGet, "/v1/reports/ucs-02.lab")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Failed())

	rec = doRequest(s, http.MethodGet, "/v1/reports/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDomainReportRejectsBadPaths(t *testing.T) {
	s := newTestServer(t)
	s.Store().Put(testSet())

	rec := doRequest(s, http.MethodGet, "/v1/reports/a/b")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	s.Store().Put(testSet())

	rec := doRequest(s, http.MethodPost, "/v1/reports")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDEchoedWhenValid(t *testing.T) {
	s := newTestServer(t)
	s.Store().Put(testSet())

	req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	req.Header.Set("X-Request-Id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	rec := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, req)

	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", rec.Header().Get("X-Request-Id"))

	// Malformed IDs are replaced, not echoed.
	req = httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	rec = httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get("X-Request-Id"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
