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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricsight/fabricsight/pkg/fabric"
	"github.com/fabricsight/fabricsight/pkg/record"
	"github.com/fabricsight/fabricsight/pkg/report"
)

func labSession(name string) *fabric.StaticSession {
	return &fabric.StaticSession{
		Name: name,
		Collections: map[string][]record.Raw{
			fabric.ClassSystem: {
				{Class: fabric.ClassSystem, Dn: "sys", Attrs: map[string]string{
					"name": name, "mode": "cluster", "address": "10.0.0.10",
				}},
			},
			fabric.ClassChassis: {
				{Class: fabric.ClassChassis, Dn: "sys/chassis-1", Attrs: map[string]string{
					"id": "1", "model": "UCSB-5108-AC2", "serial": "FOX1", "operState": "operable",
				}},
			},
			fabric.ClassBlade: {
				{Class: fabric.ClassBlade, Dn: "sys/chassis-1/blade-1", Attrs: map[string]string{
					"chassisId": "1", "slotId": "1", "model": "UCSB-B200-M5", "serial": "SRV1",
				}},
			},
		},
		Stats: []record.Raw{
			{Class: "computeMbPowerStats", Dn: "sys/chassis-1/blade-1/board/power-stats",
				Attrs: map[string]string{"consumedPower": "180"}},
		},
	}
}

func labTarget(name string) fabric.Target {
	return fabric.Target{ID: name + ".lab", Factory: &fabric.StaticFactory{Session: labSession(name)}}
}

func TestCollectMilestones(t *testing.T) {
	c := &Collector{Version: "test"}

	var seen []int
	rep, err := c.Collect(context.Background(), labTarget("ucs-01"), func(pct int) {
		seen = append(seen, pct)
	})
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, []int{0, 1, 12, 24, 36, 48, 60, 72, 84, 96}, seen)
}

func TestCollectReport(t *testing.T) {
	c := &Collector{Version: "v0.9.0"}

	rep, err := c.Collect(context.Background(), labTarget("ucs-01"), nil)
	require.NoError(t, err)

	assert.Equal(t, "ucs-01", rep.System.Name)
	assert.Equal(t, "ucs-01", rep.GetMetadata()["domain"])
	require.Len(t, rep.Inventory.Servers, 1)
	assert.Equal(t, "180", rep.Inventory.Servers[0].PowerStats.Get("consumedPower"))
	assert.Equal(t, report.TelemetryFull, rep.Collection.TelemetryMode)
	assert.NotEmpty(t, rep.Collection.PassID)
	assert.False(t, rep.Collection.FinishedAt.Before(rep.Collection.StartedAt))
	assert.NotEmpty(t, rep.Collection.Phases)
}

func TestCollectSkipTelemetryPlaceholders(t *testing.T) {
	session := labSession("ucs-02")
	session.Collections[fabric.ClassBlade] = append(session.Collections[fabric.ClassBlade],
		record.Raw{Class: fabric.ClassBlade, Dn: "sys/chassis-1/blade-2", Attrs: map[string]string{
			"chassisId": "1", "slotId": "2", "model": "UCSB-B200-M5", "serial": "SRV2",
		}})
	target := fabric.Target{ID: "ucs-02.lab", Factory: &fabric.StaticFactory{Session: session}}

	c := &Collector{Version: "test", SkipTelemetry: true}
	rep, err := c.Collect(context.Background(), target, nil)
	require.NoError(t, err)

	assert.Equal(t, report.TelemetrySkipped, rep.Collection.TelemetryMode)
	require.Len(t, rep.Inventory.Servers, 2)
	// Each placeholder carries its own server's identifier, with zeros for
	// counters. A placeholder must never carry a sibling's DN.
	for i, want := range []string{"sys/chassis-1/blade-1", "sys/chassis-1/blade-2"} {
		s := rep.Inventory.Servers[i]
		assert.Equal(t, want, s.PowerStats.Get("Dn"))
		assert.Equal(t, "0", s.PowerStats.Get("consumedPower"))
	}
}

func TestCollectConnectFailure(t *testing.T) {
	c := &Collector{Version: "test"}
	target := fabric.Target{ID: "down.lab", Factory: &fabric.StaticFactory{Err: errors.New("connection refused")}}

	rep, err := c.Collect(context.Background(), target, nil)
	assert.Nil(t, rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect")
}

func TestCollectClosesSession(t *testing.T) {
	session := labSession("ucs-03")
	target := fabric.Target{ID: "ucs-03.lab", Factory: &fabric.StaticFactory{Session: session}}

	_, err := (&Collector{Version: "test"}).Collect(context.Background(), target, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, session.Closed)
}

func TestCollectCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := (&Collector{Version: "test"}).Collect(ctx, labTarget("ucs-04"), nil)
	assert.Nil(t, rep)
	assert.Error(t, err)
}
