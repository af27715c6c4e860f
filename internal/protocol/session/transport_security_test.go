package session

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/eppctl/internal/testutil/testlog"
)

func TestValidateClientTransport(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"production default", DefaultConfig(), nil},
		{"empty mode is production", Config{TLS: TLSConfig{Enabled: false}}, ErrTLSRequired},
		{"production insecure", Config{SecurityMode: SecurityModeProduction, TLS: TLSConfig{Enabled: true, InsecureSkipVerify: true}}, ErrTLSInsecureSkipNotAllow},
		{"development plain", Config{SecurityMode: SecurityModeDevelopment}, nil},
		{"development insecure", Config{SecurityMode: "Development", TLS: TLSConfig{Enabled: true, InsecureSkipVerify: true}}, nil},
		{"client cert without tls", Config{SecurityMode: SecurityModeDevelopment, TLS: TLSConfig{CertFile: "c.crt", KeyFile: "c.key"}}, ErrTLSRequired},
		{"client cert without key", Config{TLS: TLSConfig{Enabled: true, CertFile: "c.crt"}}, ErrTLSKeyFileRequired},
		{"client key without cert", Config{TLS: TLSConfig{Enabled: true, KeyFile: "c.key"}}, ErrTLSCertFileRequired},
		{"unknown mode", Config{SecurityMode: "staging"}, ErrInvalidSecurityMode},
	}
	for _, tc := range cases {
		err := tc.cfg.ValidateClientTransport()
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
	}
}

func TestConfigWithDefaults(t *testing.T) {
	testlog.Start(t)
	cfg := Config{ReadTimeout: 5 * time.Second}.WithDefaults()
	def := DefaultConfig()
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("explicit timeout overwritten: %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != def.WriteTimeout || cfg.ConnectTimeout != def.ConnectTimeout {
		t.Fatalf("zero timeouts not filled: %+v", cfg)
	}
	if cfg.SecurityMode != SecurityModeProduction || cfg.TRIDPrefix != defaultTRIDPrefix {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
