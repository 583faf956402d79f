package logx

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := GetLevel()
	baseLogger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		baseLogger = saved
		_ = SetLevel([]string{"debug", "info", "warn", "error"}[savedLevel])
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	if err := SetLevel("warn"); err != nil {
		t.Fatal(err)
	}
	Debugf("hidden %d", 1)
	Infof("hidden too")
	Warnf("shown %s", "warn")
	Errorf("shown error")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug/info should be filtered: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown warn") || !strings.Contains(out, "[ERROR] shown error") {
		t.Fatalf("missing expected lines: %q", out)
	}
}

func TestPercentWithoutArgs(t *testing.T) {
	buf := capture(t)
	_ = SetLevel("info")
	Infof("scaled to 70% of 1200")
	if out := buf.String(); !strings.Contains(out, "70% of 1200") || strings.Contains(out, "MISSING") {
		t.Fatalf("unexpected formatting: %q", out)
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	capture(t)
	_ = SetLevel("error")
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if GetLevel() != LevelError {
		t.Fatalf("level changed on bad input: %v", GetLevel())
	}
}
