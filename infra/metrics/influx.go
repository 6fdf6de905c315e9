package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/agriwater/optimizer/core/metrics"
	"github.com/agriwater/optimizer/infra/logger"
)

// InfluxSink writes run and comparison records to an InfluxDB instance using
// the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing database never blocks a
// scheduling run.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
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

// RecordRun writes one optimization or baseline run summary.
func (s *InfluxSink) RecordRun(rec coremetrics.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("irrigation_run").
		AddTag("run_id", rec.RunID).
		AddTag("scenario", rec.Scenario).
		AddTag("kind", rec.Kind).
		AddTag("status", rec.Status.String()).
		AddField("total_cost", round3(rec.TotalCost)).
		AddField("energy_cost", round3(rec.EnergyCost)).
		AddField("penalty_cost", round3(rec.PenaltyCost)).
		AddField("startup_cost", round3(rec.StartupCost)).
		AddField("grid_energy_kwh", round3(rec.GridEnergyKWh)).
		AddField("solar_energy_kwh", round3(rec.SolarEnergyKWh)).
		AddField("startups", rec.Startups).
		AddField("solve_seconds", rec.SolveTime.Seconds()).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordComparison writes the baseline versus optimized savings.
func (s *InfluxSink) RecordComparison(rec coremetrics.ComparisonRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	p := write.NewPointWithMeasurement("irrigation_comparison").
		AddTag("scenario", rec.Scenario).
		AddField("baseline_cost", round3(rec.BaselineCost)).
		AddField("optimized_cost", round3(rec.OptimizedCost)).
		AddField("cost_savings", round3(rec.CostSavings)).
		AddField("cost_savings_pct", round3(rec.CostSavingsPct)).
		AddField("energy_savings_kwh", round3(rec.EnergySavingsKWh)).
		AddField("penalty_reduction", round3(rec.PenaltyReduction)).
		SetTime(ts)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
