package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestZerologLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLoggerTo(&buf, "test-component")
	log.Infof("solved %d scenarios", 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if line["component"] != "test-component" {
		t.Fatalf("component = %v", line["component"])
	}
	if line["message"] != "solved 3 scenarios" {
		t.Fatalf("message = %v", line["message"])
	}
	if line["level"] != "info" {
		t.Fatalf("level = %v", line["level"])
	}
}

func TestZerologLoggerStructured(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLoggerTo(&buf, "test")
	log.Debugw("run finished", map[string]any{"scenario": "farm", "cost": 12.5})

	out := buf.String()
	if !strings.Contains(out, `"scenario":"farm"`) {
		t.Fatalf("structured field missing: %s", out)
	}
}

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log.Debugf("x")
	log.Infof("x")
	log.Warnf("x")
	log.Errorf("x")
	log.Debugw("x", nil)
}
