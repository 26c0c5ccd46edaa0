package log

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, name string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	return ForService(name), buf
}

func TestPrefixAndLevel(t *testing.T) {
	SetGlobalDebug(false)

	l, buf := newTestLogger(t, "prefix_test")
	l.Infof("recomputed %d items", 3)

	out := buf.String()
	if !strings.Contains(out, "INFO [prefix_test>] recomputed 3 items") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDebugPerService(t *testing.T) {
	SetGlobalDebug(false)

	const name = "debug_service_specific"
	DisableDebugFor(name)
	l, buf := newTestLogger(t, name)

	l.Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug line printed while disabled")
	}

	EnableDebugFor(name)
	defer DisableDebugFor(name)
	l.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG [debug_service_specific>] visible") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}

	other, _ := newTestLogger(t, "debug_service_other")
	if DebugEnabledFor(other.Name()) {
		t.Fatalf("per-service debug leaked to another service")
	}
}

func TestDebugGlobal(t *testing.T) {
	SetGlobalDebug(false)

	l, buf := newTestLogger(t, "debug_global")
	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	l.Debugf("global visible")
	if !strings.Contains(buf.String(), "global visible") {
		t.Fatalf("expected debug line with global debug, got %q", buf.String())
	}
}

func TestForServiceMemoizes(t *testing.T) {
	if ForService("same") != ForService("same") {
		t.Fatalf("ForService should return the same logger for a name")
	}
	if ForService("").Name() != "sieve" {
		t.Fatalf("empty name should map to the default service")
	}
}

func TestSetOutputUpdatesExistingLoggers(t *testing.T) {
	l := ForService("existing_logger")
	buf := &bytes.Buffer{}
	SetOutput(buf)

	l.Warnf("moved")
	if !strings.Contains(buf.String(), "WARN [existing_logger>] moved") {
		t.Fatalf("existing logger did not follow SetOutput: %q", buf.String())
	}
}
