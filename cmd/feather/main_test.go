package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/feather-dev/feather/internal/config"
	"github.com/feather-dev/feather/internal/errors"
	"github.com/feather-dev/feather/pkg/dom"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != "dev\n" {
		t.Errorf("version --short = %q, want %q", out, "dev\n")
	}

	out, _ = run(t, "version")
	for _, want := range []string{"Version:    dev", "Go version:", "OS/Arch:"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q", want)
		}
	}
}

func TestDemo(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"demo"}, ">0</div>"},
		{[]string{"demo", "--clicks=3"}, ">3</div>"},
		{[]string{"demo", "-n", "-2"}, ">-2</div>"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if !strings.Contains(out, "FeatherJSX") {
				t.Error("output missing the heading")
			}
		})
	}
}

func TestDemoJSON(t *testing.T) {
	out, err := run(t, "demo", "--json", "--clicks=1")
	if err != nil {
		t.Fatal(err)
	}
	var snap dom.NodeSnapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("output is not a snapshot: %v\n%s", err, out)
	}
	if snap.Tag != "div" || len(snap.Children) != 4 {
		t.Errorf("snapshot root = %s with %d children, want div with 4", snap.Tag, len(snap.Children))
	}
	display := snap.Children[2].Children[0].Children[0]
	if display.Text != "1" {
		t.Errorf("display text = %q, want 1", display.Text)
	}
}

func TestDemoUsesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	// Clicks are not subscribed, so the count never moves.
	if err := os.WriteFile(path, []byte("events: [keydown]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", path, "demo", "--clicks=3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, ">0</div>") {
		t.Errorf("clicks should be ignored when not subscribed:\n%s", out)
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("runtime:\n  max_flush_passes: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"--config", filepath.Join(dir, "nope.yaml"), "demo"}},
		{"invalid value", []string{"--config", bad, "demo"}},
		{"bad log level", []string{"--log-level", "loud", "demo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if code := errors.CodeOf(err); code != "E201" {
				t.Errorf("error = %v, want E201", err)
			}
		})
	}
}

func TestServeWiring(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetErr(io.Discard)
	srv := newServer(config.New(), cmd)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, want := range []string{"go_goroutines", "feather_renders_total 1", "feather_viewers 0"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics missing %q", want)
		}
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "FeatherJSX") {
		t.Error("page does not render the counter")
	}
}
