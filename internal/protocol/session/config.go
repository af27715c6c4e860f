package session

import (
	"strings"
	"time"

	"github.com/danmuck/eppctl/internal/protocol/frame"
)

type SecurityMode string

const (
	SecurityModeDevelopment SecurityMode = "development"
	SecurityModeProduction  SecurityMode = "production"
)

// TLSConfig selects the client side of the TLS handshake.
type TLSConfig struct {
	Enabled            bool
	CertFile           string
	KeyFile            string
	CAFile             string
	ServerName         string
	InsecureSkipVerify bool
}

// Mutual reports whether a client certificate is configured.
func (t TLSConfig) Mutual() bool {
	return strings.TrimSpace(t.CertFile) != "" || strings.TrimSpace(t.KeyFile) != ""
}

// Config defines transport/session defaults.
type Config struct {
	SecurityMode     SecurityMode
	TLS              TLSConfig
	ConnectTimeout   time.Duration
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	Limits           frame.Limits
	// TRIDPrefix seeds generated client transaction ids.
	TRIDPrefix string
}

const defaultTRIDPrefix = "eppctl"

// DefaultConfig returns production-safe defaults: TLS on, EPP's usual
// generous read timeout, no frame size cap.
func DefaultConfig() Config {
	return Config{
		SecurityMode:     SecurityModeProduction,
		TLS:              TLSConfig{Enabled: true},
		ConnectTimeout:   10 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     30 * time.Second,
		Limits:           frame.DefaultLimits(),
		TRIDPrefix:       defaultTRIDPrefix,
	}
}

// WithDefaults fills zero durations and an empty prefix from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	c.SecurityMode = NormalizeSecurityMode(c.SecurityMode)
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = def.HandshakeTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if strings.TrimSpace(c.TRIDPrefix) == "" {
		c.TRIDPrefix = def.TRIDPrefix
	}
	return c
}
