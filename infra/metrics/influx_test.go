package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/parcelsim/core/metrics"
)

type bodyRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func (b *bodyRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies = append(b.bodies, strings.TrimSpace(string(data)))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestInfluxSink_RecordScheduleRun(t *testing.T) {
	rec := &bodyRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()
	now := time.Now()
	run := coremetrics.ScheduleRun{
		RunID:           "r1",
		Scenario:        "ontario",
		Algorithm:       "greedy",
		Scheduled:       3,
		Trucks:          2,
		NonemptyTrucks:  2,
		UnusedSpace:     10,
		AverageFullness: 83.33333,
		TotalDistance:   40,
		Duration:        1500 * time.Microsecond,
		Time:            now,
	}
	if err := sink.RecordScheduleRun(run); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("schedule_run").
		AddTag("run_id", "r1").
		AddTag("algorithm", "greedy").
		AddTag("scenario", "ontario").
		AddField("scheduled", 3).
		AddField("unscheduled", 0).
		AddField("trucks", 2).
		AddField("nonempty_trucks", 2).
		AddField("unused_space", 10).
		AddField("average_fullness", 83.333).
		AddField("total_distance", 40).
		AddField("duration_ms", 1.5).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(rec.bodies) != 1 || rec.bodies[0] != expected {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordTruckLoads(t *testing.T) {
	rec := &bodyRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Org: "org", Bucket: "bucket"})
	defer sink.Close()
	now := time.Now()
	loads := []coremetrics.TruckLoad{
		{RunID: "r1", Algorithm: "greedy", TruckID: 1, Parcels: 2, Used: 30, Capacity: 30, Fullness: 100, Time: now},
		{RunID: "r1", Algorithm: "greedy", TruckID: 2, Parcels: 1, Used: 10, Capacity: 20, Fullness: 50, Time: now},
	}
	if err := sink.RecordTruckLoads(loads); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(rec.bodies) != 1 {
		t.Fatalf("expected one batched write, got %d", len(rec.bodies))
	}
	lines := strings.Split(rec.bodies[0], "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", rec.bodies[0])
	}
	for i, l := range loads {
		exp := strings.TrimSpace(write.PointToLineProtocol(truckLoadPoint(l), time.Nanosecond))
		if lines[i] != exp {
			t.Errorf("line %d = %q, want %q", i, lines[i], exp)
		}
	}
	if !strings.Contains(lines[0], "truck_id=1") || !strings.Contains(lines[0], "fullness=100") {
		t.Errorf("unexpected first line %q", lines[0])
	}
}

func TestInfluxSink_NoLoadsNoWrite(t *testing.T) {
	rec := &bodyRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL})
	defer sink.Close()
	if err := sink.RecordTruckLoads(nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(rec.bodies) != 0 {
		t.Fatalf("unexpected write %v", rec.bodies)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{
		URL:    srv.URL + "/api/v2/write",
		Token:  "tok",
		Org:    "org",
		Bucket: "bucket",
	})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
