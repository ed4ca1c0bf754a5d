package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/feather-dev/feather/pkg/feather"
	"github.com/feather-dev/feather/pkg/telemetry"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string

	// ReadTimeout bounds reading one HTTP request.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing one WebSocket frame.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// MaxMessageSize limits inbound WebSocket messages.
	MaxMessageSize int64

	// SendQueue is the number of frames buffered per viewer. A viewer
	// that falls further behind is disconnected.
	SendQueue int

	// CheckOrigin validates WebSocket origins. Defaults to SameOriginCheck.
	CheckOrigin func(*http.Request) bool

	// Options configures the mounted root. The server fills in Logger and
	// Observer when they are unset.
	Options feather.Options

	// Collector receives runtime and stream measurements. Optional.
	Collector *telemetry.Collector

	// Gatherer is served on /metrics. Optional.
	Gatherer prometheus.Gatherer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Addr:            "localhost:3000",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		MaxMessageSize:  64 * 1024,
		SendQueue:       64,
		CheckOrigin:     SameOriginCheck,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	out := *c
	d := DefaultConfig()
	if out.Addr == "" {
		out.Addr = d.Addr
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.SendQueue == 0 {
		out.SendQueue = d.SendQueue
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Options.Logger == nil {
		out.Options.Logger = out.Logger
	}
	if out.Options.Observer == nil && out.Collector != nil {
		out.Options.Observer = out.Collector
	}
	return &out
}

// SameOriginCheck accepts WebSocket requests without an Origin header or
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}
