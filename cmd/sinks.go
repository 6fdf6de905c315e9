package cmd

import (
	"github.com/agriwater/optimizer/config"
	coremetrics "github.com/agriwater/optimizer/core/metrics"
	"github.com/agriwater/optimizer/infra/logger"
	"github.com/agriwater/optimizer/infra/metrics"
)

// buildSink assembles the configured metrics sinks. The returned closer
// flushes and disconnects the Influx client; it is a no-op otherwise.
func buildSink(cfg config.MetricsConfig, log logger.Logger) (coremetrics.Sink, func(), error) {
	var sinks []coremetrics.Sink
	closer := func() {}

	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, sink)
		go func() {
			if err := metrics.StartPromServer(cfg.PrometheusPort); err != nil {
				log.Errorf("prom server: %v", err)
			}
		}()
	}
	if cfg.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
		sinks = append(sinks, sink)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			closer = is.Close
		}
	}

	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, closer, nil
	case 1:
		return sinks[0], closer, nil
	default:
		return metrics.NewMultiSink(sinks...), closer, nil
	}
}
