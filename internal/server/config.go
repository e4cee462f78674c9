package server

import (
	"log/slog"
	"net/netip"
	"time"

	"golang.org/x/time/rate"

	"passphrasex/internal/authtoken"
)

// Config tunes a Server. Zero values are replaced by defaults.
type Config struct {
	// Tolerance is the accepted clock skew for bearer tokens.
	Tolerance time.Duration
	// Rate and Burst bound requests per client address.
	Rate  rate.Limit
	Burst int
	// LimiterTTL is how long an idle client's bucket is kept.
	LimiterTTL time.Duration
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
	// TrustedProxies lists peers whose X-Forwarded-For header is believed.
	// When empty, clients are keyed by their peer address only.
	TrustedProxies []netip.Prefix

	Logger *slog.Logger
	Now    func() time.Time
}

func (c *Config) setDefaults() {
	if c.Tolerance <= 0 {
		c.Tolerance = authtoken.DefaultTolerance
	}
	if c.Rate <= 0 {
		c.Rate = 10
	}
	if c.Burst <= 0 {
		c.Burst = 20
	}
	if c.LimiterTTL <= 0 {
		c.LimiterTTL = 10 * time.Minute
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 64 << 10
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}
