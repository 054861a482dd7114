package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spindle/internal/config"

	"github.com/samber/do"
)

func testRunner(t *testing.T, scenario string, messages int) (*runner, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Runtime.Log = "off"
	cfg.Demo.Scenario = scenario
	cfg.Demo.Messages = messages
	cfg.Demo.Anchors = 3

	path := filepath.Join(t.TempDir(), config.FileName)
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var out bytes.Buffer
	i := newInjector(path, &out, nil)
	t.Cleanup(func() { i.Shutdown() })
	r, err := do.Invoke[*runner](i)
	if err != nil {
		t.Fatalf("Invoke[*runner]() error = %v", err)
	}
	return r, &out
}

func runScenario(t *testing.T, r *runner) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.run(ctx); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

func TestPingPongScenario(t *testing.T) {
	r, out := testRunner(t, "pingpong", 10)
	runScenario(t, r)

	// Echo doubles 1..10.
	if want := "pingpong: 10 messages, sum 110\n"; out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestFanInScenario(t *testing.T) {
	r, out := testRunner(t, "fanin", 5)
	runScenario(t, r)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("output lines = %d, want 4: %q", len(lines), out.String())
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "delivered 5") {
			t.Fatalf("line %q, want every channel to deliver 5", line)
		}
	}
}

func TestReapScenario(t *testing.T) {
	r, out := testRunner(t, "reap", 0)
	runScenario(t, r)

	if want := "reap: zombies 1 before, 0 after gc\n"; out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestAnchorsScenario(t *testing.T) {
	r, out := testRunner(t, "anchors", 4)
	runScenario(t, r)

	for _, want := range []string{
		"anchors: anchor 0: 4 messages, sum 20",
		"anchors: anchor 1: 5 messages, sum 30",
		"anchors: anchor 2: 6 messages, sum 42",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output %q missing %q", out.String(), want)
		}
	}
}

func TestUnknownScenario(t *testing.T) {
	r, _ := testRunner(t, "pingpong", 1)
	r.env.cfg.Demo.Scenario = "nope"
	err := r.run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "anchors, fanin, pingpong, reap") {
		t.Fatalf("run() error = %v, want unknown scenario listing", err)
	}
}

func TestInjectorRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	i := newInjector(path, os.Stdout, func(c *config.Config) { c.Demo.Anchors = 0 })
	defer i.Shutdown()

	if _, err := do.Invoke[*runner](i); err == nil {
		t.Fatal("Invoke[*runner]() error = nil for zero anchors")
	}
}
