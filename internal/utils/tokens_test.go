package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/chartloom-cli/internal/utils"
)

func TestCountTokens(t *testing.T) {
	cases := []struct {
		name string
		in   string
		min  int
	}{
		{"empty", "", 0},
		{"simple", "hello world", 2},
		{"long", strings.Repeat("a", 4000), 900},
	}
	for _, c := range cases {
		if got := utils.CountTokens(c.in); got < c.min {
			t.Errorf("%s: got %d < min %d", c.name, got, c.min)
		}
	}
}

func TestTruncateToTokenLimit(t *testing.T) {
	text := strings.Repeat("abcd ", 1000)
	trunc := utils.TruncateToTokenLimit(text, 300)
	if n := utils.CountTokens(trunc); n > 300 {
		t.Fatalf("tokens=%d exceeds limit", n)
	}
	if len(trunc) == 0 {
		t.Fatalf("expected non-empty truncation")
	}
	if utils.TruncateToTokenLimit("short", 10) != "short" {
		t.Fatalf("text under the limit must be unchanged")
	}
}

func TestSafeWriteFileCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "canvas.json")
	if err := utils.SafeWriteFile(path, []byte(`{}`)); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	if b, err := os.ReadFile(path); err != nil || string(b) != `{}` {
		t.Fatalf("read back %q, %v", b, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestResolveOutput(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "a.html")
	cases := []struct{ dir, path, want string }{
		{"out", "a.html", filepath.Join("out", "a.html")},
		{"", "a.html", "a.html"},
		{"out", abs, abs},
		{"out", "", ""},
	}
	for _, c := range cases {
		if got := utils.ResolveOutput(c.dir, c.path); got != c.want {
			t.Errorf("ResolveOutput(%q, %q) = %q, want %q", c.dir, c.path, got, c.want)
		}
	}
}
