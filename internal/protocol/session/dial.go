package session

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrAddressRequired = errors.New("session: registry address required")

// Dial opens the TCP connection and, when enabled, completes the TLS
// handshake. It does not read the greeting.
func Dial(ctx context.Context, address string, cfg Config) (net.Conn, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrAddressRequired
	}
	cfg = cfg.WithDefaults()
	if err := cfg.ValidateClientTransport(); err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
	rawConn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	if !cfg.TLS.Enabled {
		log.Debug().Str("addr", address).Msg("session.Dial plain tcp")
		return rawConn, nil
	}

	tlsCfg, err := clientTLSConfig(address, cfg.TLS)
	if err != nil {
		_ = rawConn.Close()
		return nil, err
	}
	conn := tls.Client(rawConn, tlsCfg)
	handshakeCtx, cancel := context.WithTimeout(ctx, cfg.HandshakeTimeout)
	defer cancel()
	if err := conn.HandshakeContext(handshakeCtx); err != nil {
		_ = rawConn.Close()
		return nil, err
	}
	state := conn.ConnectionState()
	log.Debug().
		Str("addr", address).
		Str("server_name", tlsCfg.ServerName).
		Uint16("tls_version", state.Version).
		Bool("client_cert", len(tlsCfg.Certificates) > 0).
		Msg("session.Dial tls established")
	return conn, nil
}

func clientTLSConfig(address string, t TLSConfig) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: t.InsecureSkipVerify,
	}

	serverName := strings.TrimSpace(t.ServerName)
	if serverName == "" {
		host, _, err := net.SplitHostPort(address)
		if err != nil {
			return nil, err
		}
		serverName = host
	}
	cfg.ServerName = serverName

	if caPath := strings.TrimSpace(t.CAFile); caPath != "" {
		caPEM, err := os.ReadFile(caPath)
		if err != nil {
			return nil, err
		}
		pool := x509.NewCertPool()
		if ok := pool.AppendCertsFromPEM(caPEM); !ok {
			return nil, fmt.Errorf("session: parse tls ca bundle: %s", caPath)
		}
		cfg.RootCAs = pool
	}

	if t.Mutual() {
		cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}
