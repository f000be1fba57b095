package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/rdom/internal/config"
	"github.com/vango-dev/rdom/pkg/scheduler"
)

// ServerConfig configures the inspector server.
type ServerConfig struct {
	// Address is the listen address.
	// Default: ":8080"
	Address string

	// ReadBufferSize is the websocket read buffer size.
	// Default: 4096
	ReadBufferSize int

	// WriteBufferSize is the websocket write buffer size.
	// Default: 4096
	WriteBufferSize int

	// CheckOrigin validates the Origin header of websocket upgrades.
	// Default: SameOriginCheck
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is passed to http.Server.
	// Default: 5 seconds
	ReadHeaderTimeout time.Duration

	// IdleTimeout closes websocket sessions that send nothing for this long.
	// Default: 2 minutes
	IdleTimeout time.Duration

	// WriteTimeout bounds each websocket write.
	// Default: 10 seconds
	WriteTimeout time.Duration

	// MaxBodyBytes caps POST /diff request bodies.
	// Default: 1 MiB
	MaxBodyBytes int64

	// RateLimit is the sustained websocket message rate per connection.
	RateLimit float64

	// Burst is the websocket message burst per connection.
	Burst int

	// RecursionLimit is passed to each session's job queue.
	RecursionLimit int

	// MetricsNamespace prefixes the Prometheus metric names.
	MetricsNamespace string
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           config.DefaultAddr,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
		WriteTimeout:      10 * time.Second,
		MaxBodyBytes:      1 << 20,
		RateLimit:         config.DefaultRateLimit,
		Burst:             config.DefaultBurst,
		RecursionLimit:    scheduler.DefaultRecursionLimit,
		MetricsNamespace:  config.DefaultNamespace,
	}
}

// FromConfig builds a ServerConfig from a loaded rdom.yaml.
func FromConfig(cfg *config.Config) *ServerConfig {
	c := DefaultServerConfig()
	if cfg == nil {
		return c
	}
	c.Address = cfg.Server.Addr
	c.RateLimit = cfg.Server.RateLimit
	c.Burst = cfg.Server.Burst
	c.RecursionLimit = cfg.Scheduler.RecursionLimit
	c.MetricsNamespace = cfg.Metrics.Namespace
	return c
}

// fillDefaults sets every zero field to its default.
func (c *ServerConfig) fillDefaults() {
	d := DefaultServerConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.RateLimit == 0 {
		c.RateLimit = d.RateLimit
	}
	if c.Burst == 0 {
		c.Burst = d.Burst
	}
	if c.RecursionLimit == 0 {
		c.RecursionLimit = d.RecursionLimit
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = d.MetricsNamespace
	}
}

// SameOriginCheck accepts requests without an Origin header and requests
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
	return u.Host == r.Host
}
