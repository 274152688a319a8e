package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/parcelsim/core/metrics"
	"github.com/kilianp07/parcelsim/infra/logger"
)

// InfluxConfig locates the InfluxDB bucket receiving points.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes scheduling runs to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordScheduleRun writes one schedule_run point.
func (s *InfluxSink) RecordScheduleRun(run coremetrics.ScheduleRun) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, scheduleRunPoint(run))
}

// RecordTruckLoads writes one truck_load point per truck.
func (s *InfluxSink) RecordTruckLoads(loads []coremetrics.TruckLoad) error {
	if len(loads) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(loads))
	for _, l := range loads {
		points = append(points, truckLoadPoint(l))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func scheduleRunPoint(run coremetrics.ScheduleRun) *write.Point {
	return write.NewPointWithMeasurement("schedule_run").
		AddTag("run_id", run.RunID).
		AddTag("algorithm", run.Algorithm).
		AddTag("scenario", run.Scenario).
		AddField("scheduled", run.Scheduled).
		AddField("unscheduled", run.Unscheduled).
		AddField("trucks", run.Trucks).
		AddField("nonempty_trucks", run.NonemptyTrucks).
		AddField("unused_space", run.UnusedSpace).
		AddField("average_fullness", round3(run.AverageFullness)).
		AddField("total_distance", run.TotalDistance).
		AddField("duration_ms", round3(run.Duration.Seconds()*1000)).
		SetTime(run.Time)
}

func truckLoadPoint(l coremetrics.TruckLoad) *write.Point {
	return write.NewPointWithMeasurement("truck_load").
		AddTag("run_id", l.RunID).
		AddTag("algorithm", l.Algorithm).
		AddTag("truck_id", strconv.Itoa(l.TruckID)).
		AddField("parcels", l.Parcels).
		AddField("used", l.Used).
		AddField("capacity", l.Capacity).
		AddField("fullness", round3(l.Fullness)).
		SetTime(l.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
