package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/feather-dev/feather/internal/errors"
	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/feather"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.Runtime.MaxFlushPasses != feather.DefaultMaxFlushPasses {
		t.Errorf("Runtime.MaxFlushPasses = %d", cfg.Runtime.MaxFlushPasses)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if diff := cmp.Diff(New(), cfg, cmp.AllowUnexported(Config{})); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  addr: 0.0.0.0:8080
  read_timeout: 3s
events: [Click, input]
runtime:
  max_flush_passes: 20
  strict_hooks: true
log:
  level: debug
metrics:
  namespace: demo_app
`
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("Server.ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if diff := cmp.Diff([]string{"click", "input"}, cfg.Events); diff != "" {
		t.Errorf("Events (-want +got):\n%s", diff)
	}
	if cfg.Runtime.MaxFlushPasses != 20 || !cfg.Runtime.StrictHooks {
		t.Errorf("Runtime = %+v", cfg.Runtime)
	}
	if cfg.Metrics.Namespace != "demo_app" {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
	if cfg.Tracing.TracerName != DefaultTracerName {
		t.Errorf("Tracing.TracerName = %q, want default", cfg.Tracing.TracerName)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	if err == nil {
		t.Fatal("Load() of a missing file should fail")
	}
	if errors.CodeOf(err) != "E201" {
		t.Errorf("code = %q, want E201", errors.CodeOf(err))
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("error should wrap os.ErrNotExist")
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		detail  string
	}{
		{"unknown key", "server:\n  port: 80\n", "field port not found"},
		{"bad yaml", "server: [\n", "Failed to parse"},
		{"bad duration", "server:\n  read_timeout: soon\n", "Failed to parse"},
		{"negative timeout", "server:\n  read_timeout: -1s\n", "read_timeout must not be negative"},
		{"negative passes", "runtime:\n  max_flush_passes: -1\n", "max_flush_passes must be positive"},
		{"empty event", "events: [click, \"\"]\n", "empty names"},
		{"bad level", "log:\n  level: loud\n", `log.level "loud"`},
		{"bad namespace", "metrics:\n  namespace: 9lives\n", "not a valid Prometheus name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			var fe *errors.FeatherError
			if !stderrors.As(err, &fe) || fe.Code != "E201" {
				t.Fatalf("error = %v, want E201", err)
			}
			if !strings.Contains(fe.Detail, tt.detail) {
				t.Errorf("Detail = %q, want it to contain %q", fe.Detail, tt.detail)
			}
		})
	}
}

func TestEventKinds(t *testing.T) {
	cfg := New()
	if diff := cmp.Diff(dom.DefaultEventKinds, cfg.EventKinds()); diff != "" {
		t.Errorf("default kinds (-want +got):\n%s", diff)
	}
	cfg.EventKinds()[0] = "mutated"
	if dom.DefaultEventKinds[0] == "mutated" {
		t.Error("EventKinds() exposed the package default slice")
	}
}

func TestOptions(t *testing.T) {
	cfg := New()
	cfg.Runtime.StrictHooks = true
	cfg.Events = []string{"click"}
	logger := slog.Default()

	opts := cfg.Options(logger, nil)
	if opts.Logger != logger || !opts.StrictHooks || opts.MaxFlushPasses != feather.DefaultMaxFlushPasses {
		t.Errorf("Options() = %+v", opts)
	}
	if diff := cmp.Diff([]string{"click"}, opts.EventKinds); diff != "" {
		t.Errorf("EventKinds (-want +got):\n%s", diff)
	}
}
