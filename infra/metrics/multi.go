package metrics

import (
	"errors"

	coremetrics "github.com/agriwater/optimizer/core/metrics"
)

// MultiSink forwards every record to all wrapped sinks, collecting errors.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink from the given sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordRun forwards the record to all sinks.
func (m *MultiSink) RecordRun(rec coremetrics.RunRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRun(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordComparison forwards the record to all sinks.
func (m *MultiSink) RecordComparison(rec coremetrics.ComparisonRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordComparison(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
