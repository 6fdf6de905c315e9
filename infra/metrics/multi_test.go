package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/agriwater/optimizer/core/metrics"
)

type recordingSink struct {
	runs        int
	comparisons int
	err         error
}

func (s *recordingSink) RecordRun(coremetrics.RunRecord) error {
	s.runs++
	return s.err
}

func (s *recordingSink) RecordComparison(coremetrics.ComparisonRecord) error {
	s.comparisons++
	return s.err
}

func TestMultiSinkForwardsToAll(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordRun(coremetrics.RunRecord{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordComparison(coremetrics.ComparisonRecord{}); err != nil {
		t.Fatalf("record comparison: %v", err)
	}
	if a.runs != 1 || b.runs != 1 || a.comparisons != 1 || b.comparisons != 1 {
		t.Fatalf("records not forwarded: %+v %+v", a, b)
	}
}

func TestMultiSinkCollectsErrorsWithoutStopping(t *testing.T) {
	boom := errors.New("influx down")
	failing := &recordingSink{err: boom}
	healthy := &recordingSink{}
	m := NewMultiSink(failing, healthy)

	err := m.RecordRun(coremetrics.RunRecord{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if healthy.runs != 1 {
		t.Fatal("healthy sink skipped after a failure")
	}
}
