package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/parcelsim/config"
	"github.com/kilianp07/parcelsim/core/factory"
	"github.com/kilianp07/parcelsim/core/runlog"
	"github.com/kilianp07/parcelsim/core/scenario"
)

func testConfig(t *testing.T, addr string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.HTTP.Addr = addr
	cfg.Logging.Path = filepath.Join(t.TempDir(), "runs.jsonl")
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func testInputs(t *testing.T) *scenario.Inputs {
	t.Helper()
	sc := scenario.Scenario{
		Name:    "small",
		Depot:   "Toronto",
		Trucks:  []scenario.TruckDef{{ID: 1, Capacity: 10}},
		Parcels: []scenario.ParcelDef{{ID: 1, Volume: 4, Destination: "Hamilton"}, {ID: 2, Volume: 8, Destination: "Barrie"}},
	}
	in, err := sc.Build()
	require.NoError(t, err)
	return in
}

func TestServiceRunsAndLogs(t *testing.T) {
	svc, err := New(testConfig(t, "-"))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	rep, err := svc.Runner.Run(context.Background(), svc.cfg.Scheduler, testInputs(t))
	require.NoError(t, err)
	assert.Equal(t, map[int][]int{1: {2}}, rep.Allocations)
	assert.Equal(t, []int{1}, rep.Unscheduled)

	recs, err := svc.Store.Query(context.Background(), runlog.Query{RunID: rep.RunID})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "small", recs[0].Scenario)
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	for _, addr := range []string{"-", "127.0.0.1:0"} {
		t.Run(addr, func(t *testing.T) {
			svc, err := New(testConfig(t, addr))
			require.NoError(t, err)
			defer func() { _ = svc.Close() }()

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- svc.Run(ctx) }()
			time.Sleep(50 * time.Millisecond)
			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("service did not stop")
			}
		})
	}
}

func TestServiceRejectsUnknownSink(t *testing.T) {
	cfg := testConfig(t, "-")
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "carrier-pigeon"}}
	_, err := New(cfg)
	assert.Error(t, err)
}
