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

// Package mailer delivers collection summaries over SMTP. It is a thin
// delivery boundary: formatting belongs to the caller.
package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/fabricsight/fabricsight/pkg/defaults"
	ferrors "github.com/fabricsight/fabricsight/pkg/errors"
)

// Mailer sends mail through one SMTP host.
type Mailer struct {
	// Host and Port locate the SMTP server; zero Port means 25.
	Host string
	Port int

	// From is the envelope sender.
	From string

	// Auth is optional SMTP authentication.
	Auth smtp.Auth

	// Timeout bounds one delivery; zero uses defaults.MailTimeout.
	Timeout time.Duration
}

// Send delivers one plain-text message to all recipients.
func (m *Mailer) Send(to []string, subject string, body []byte) error {
	if len(to) == 0 {
		return ferrors.New(ferrors.ErrCodeInvalidRequest, "mail has no recipients")
	}

	port := m.Port
	if port == 0 {
		port = 25
	}
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = defaults.MailTimeout
	}
	addr := net.JoinHostPort(m.Host, fmt.Sprintf("%d", port))

	msg := buildMessage(m.From, to, subject, body)

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return ferrors.Wrap(ferrors.ErrCodeUnavailable,
			fmt.Sprintf("smtp connect to %s failed", addr), err)
	}
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if m.Auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(m.Auth); err != nil {
				return ferrors.Wrap(ferrors.ErrCodeUnauthorized, "smtp auth failed", err)
			}
		}
	}

	if err := client.Mail(m.From); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from string, to []string, subject string, body []byte) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.Write(body)
	return []byte(b.String())
}
