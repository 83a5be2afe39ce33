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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/fabricsight/fabricsight/pkg/defaults"
	ferrors "github.com/fabricsight/fabricsight/pkg/errors"
	"github.com/fabricsight/fabricsight/pkg/record"
)

// Config describes one domain connection target for the REST client.
type Config struct {
	// Address is the management endpoint, host or host:port.
	Address  string
	Username string
	Password string

	// Insecure skips TLS verification. Management planes commonly run with
	// self-signed certificates.
	Insecure bool

	// QueryTimeout bounds one bulk query; zero uses defaults.QueryTimeout.
	QueryTimeout time.Duration
}

// NewRestFactory returns a SessionFactory backed by the REST client.
func NewRestFactory(cfg Config) SessionFactory {
	return &restFactory{cfg: cfg}
}

type restFactory struct {
	cfg Config
}

// Connect logs in, retrying transient failures a bounded number of times.
func (f *restFactory) Connect(ctx context.Context) (Session, error) {
	cfg := f.cfg
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaults.QueryTimeout
	}

	transport := &http.Transport{}
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // operator opt-in
	}

	s := &restSession{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.QueryTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaults.SessionQueriesPerSecond), defaults.SessionQueryBurst),
	}

	loginCtx, cancel := context.WithTimeout(ctx, defaults.LoginTimeout)
	defer cancel()

	err := retry.New(
		retry.Attempts(defaults.LoginRetryAttempts),
		retry.Context(loginCtx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("login retry", "address", cfg.Address, "attempt", n+1, "error", err)
		}),
	).Do(func() error { return s.login(loginCtx) })
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeUnauthorized,
			fmt.Sprintf("login to %s failed", cfg.Address), err)
	}
	return s, nil
}

// restSession is a thin JSON/REST session. It owns an auth token, a rate
// limiter shared by all queries on this session, and nothing else; record
// interpretation belongs to the normalization layer.
type restSession struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter

	token  string
	domain string
}

func (s *restSession) DomainName() string {
	if s.domain != "" {
		return s.domain
	}
	return s.cfg.Address
}

func (s *restSession) login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"username": s.cfg.Username,
		"password": s.cfg.Password,
	})
	if err != nil {
		return err
	}

	resp, err := s.post(ctx, "/api/login", body)
	if err != nil {
		return err
	}

	s.token = gjson.GetBytes(resp, "token").String()
	if s.token == "" {
		return fmt.Errorf("login response carried no token")
	}
	s.domain = gjson.GetBytes(resp, "domainName").String()
	return nil
}

func (s *restSession) Resolve(ctx context.Context, class string) ([]record.Raw, error) {
	body, err := s.get(ctx, "/api/class/"+class)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeQueryFailed,
			fmt.Sprintf("class query %s on %s failed", class, s.cfg.Address), err)
	}
	return parseRecords(body, class), nil
}

func (s *restSession) ResolveClasses(ctx context.Context, classes []string) (map[string][]record.Raw, error) {
	out := make(map[string][]record.Raw, len(classes))
	for _, class := range classes {
		records, err := s.Resolve(ctx, class)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []record.Raw{}
		}
		out[class] = records
	}
	return out, nil
}

func (s *restSession) StatsDump(ctx context.Context) ([]record.Raw, error) {
	body, err := s.get(ctx, "/api/stats")
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeQueryFailed,
			fmt.Sprintf("stats dump on %s failed", s.cfg.Address), err)
	}
	return parseRecords(body, ""), nil
}

func (s *restSession) Close(ctx context.Context) error {
	if s.token == "" {
		return nil
	}
	_, err := s.post(ctx, "/api/logout", nil)
	s.token = ""
	return err
}

func (s *restSession) get(ctx context.Context, path string) ([]byte, error) {
	return s.do(ctx, http.MethodGet, path, nil)
}

func (s *restSession) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return s.do(ctx, http.MethodPost, path, body)
}

func (s *restSession) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, "https://"+s.cfg.Address+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return payload, nil
}

// parseRecords converts an API payload into raw records. Each element of
// the "records" array is a flat object; "dn" and "class" are lifted out
// and every remaining scalar becomes a string attribute. When class is
// non-empty it overrides the payload's class field (class queries don't
// repeat it per record).
func parseRecords(payload []byte, class string) []record.Raw {
	items := gjson.GetBytes(payload, "records")
	out := make([]record.Raw, 0, int(items.Get("#").Int()))

	items.ForEach(func(_, item gjson.Result) bool {
		r := record.Raw{
			Class: class,
			Attrs: make(map[string]string),
		}
		item.ForEach(func(key, value gjson.Result) bool {
			switch key.String() {
			case "dn":
				r.Dn = value.String()
			case "class":
				if r.Class == "" {
					r.Class = value.String()
				}
			default:
				r.Attrs[key.String()] = value.String()
			}
			return true
		})
		if r.Dn != "" {
			out = append(out, r)
		}
		return true
	})
	return out
}
