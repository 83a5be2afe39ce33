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
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricsight/fabricsight/pkg/defaults"
)

// domainServer is a minimal management-API double: login issues a token,
// class and stats queries require it.
type domainServer struct {
	*httptest.Server

	loginAttempts atomic.Int32
	failLogins    int32
	logouts       atomic.Int32
}

func newDomainServer(t *testing.T, failLogins int) *domainServer {
	t.Helper()
	ds := &domainServer{failLogins: int32(failLogins)}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		if n := ds.loginAttempts.Add(1); n <= ds.failLogins {
			http.Error(w, "backend not ready", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"token":"tok-1","domainName":"ucs-lab"}`)
	})
	mux.HandleFunc("/api/class/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"records":[
			{"dn":"sys","name":"ucs-lab","mode":"cluster"},
			{"dn":"sys/chassis-1","id":"1"},
			{"name":"no-dn-is-dropped"}
		]}`)
	})
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"records":[
			{"dn":"sys/chassis-1/stats","class":"equipmentChassisStats","inputPower":"740"}
		]}`)
	})
	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		ds.logouts.Add(1)
	})

	ds.Server = httptest.NewTLSServer(mux)
	t.Cleanup(ds.Close)
	return ds
}

func (ds *domainServer) address() string {
	return strings.TrimPrefix(ds.URL, "https://")
}

func TestConnectRetriesLogin(t *testing.T) {
	ds := newDomainServer(t, 1)

	session, err := NewRestFactory(Config{
		Address:  ds.address(),
		Username: "admin",
		Password: "x",
		Insecure: true,
	}).Connect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), ds.loginAttempts.Load())
	assert.Equal(t, "ucs-lab", session.DomainName())
}

func TestConnectExhaustsLoginRetries(t *testing.T) {
	ds := newDomainServer(t, defaults.LoginRetryAttempts)

	_, err := NewRestFactory(Config{
		Address:  ds.address(),
		Username: "admin",
		Password: "x",
		Insecure: true,
	}).Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
	assert.Equal(t, int32(defaults.LoginRetryAttempts), ds.loginAttempts.Load())
}

func TestSessionResolveAndStats(t *testing.T) {
	ds := newDomainServer(t, 0)
	ctx := context.Background()

	session, err := NewRestFactory(Config{
		Address:  ds.address(),
		Username: "admin",
		Password: "x",
		Insecure: true,
	}).Connect(ctx)
	require.NoError(t, err)

	records, err := session.Resolve(ctx, ClassSystem)
	require.NoError(t, err)
	// Records without a DN are dropped at the boundary.
	require.Len(t, records, 2)
	assert.Equal(t, ClassSystem, records[0].Class)
	assert.Equal(t, "sys", records[0].Dn)
	assert.Equal(t, "ucs-lab", records[0].Str("name"))

	dump, err := session.StatsDump(ctx)
	require.NoError(t, err)
	require.Len(t, dump, 1)
	// Stats records carry their own class in the payload.
	assert.Equal(t, "equipmentChassisStats", dump[0].Class)
	assert.Equal(t, "740", dump[0].Str("inputPower"))

	require.NoError(t, session.Close(ctx))
	assert.Equal(t, int32(1), ds.logouts.Load())
	// A closed session's second Close is a no-op.
	require.NoError(t, session.Close(ctx))
	assert.Equal(t, int32(1), ds.logouts.Load())
}
