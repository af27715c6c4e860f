// Package config loads registry profiles from eppctl.toml.
package config

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/eppctl/internal/protocol/session"
)

// DefaultPort is the IANA-assigned EPP port.
const DefaultPort = 700

// File is the on-disk layout.
type File struct {
	DefaultRegistry string                  `toml:"default_registry,omitempty"`
	ClTRIDPrefix    string                  `toml:"cltrid_prefix,omitempty"`
	Journal         string                  `toml:"journal,omitempty"`
	Registries      map[string]RegistryFile `toml:"registry"`
}

type RegistryFile struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port,omitempty"`
	Username       string   `toml:"username"`
	Password       string   `toml:"password,omitempty"`
	ObjURIs        []string `toml:"obj_uris,omitempty"`
	ExtURIs        []string `toml:"ext_uris,omitempty"`
	SecurityMode   string   `toml:"security_mode,omitempty"`
	ConnectTimeout string   `toml:"connect_timeout,omitempty"`
	ReadTimeout    string   `toml:"read_timeout,omitempty"`
	WriteTimeout   string   `toml:"write_timeout,omitempty"`
	MaxFrameBytes  uint32   `toml:"max_frame_bytes,omitempty"`
	TLS            TLSFile  `toml:"tls"`
}

type TLSFile struct {
	Enabled            bool   `toml:"enabled"`
	CertChain          string `toml:"cert_chain,omitempty"`
	Key                string `toml:"key,omitempty"`
	CAFile             string `toml:"ca_file,omitempty"`
	ServerName         string `toml:"server_name,omitempty"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify,omitempty"`
}

// Registry is one resolved connection profile.
type Registry struct {
	Name        string
	Address     string
	Credentials session.Credentials
	Session     session.Config
}

// Config is the resolved file.
type Config struct {
	DefaultRegistry string
	Journal         string
	Registries      map[string]Registry
}

// Load decodes path. Keys that are absent keep session.DefaultConfig values.
func Load(path string) (Config, error) {
	var raw File
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		log.Warn().Str("path", path).Str("key", key.String()).Msg("config: unknown key ignored")
	}

	cfg := Config{
		DefaultRegistry: strings.TrimSpace(raw.DefaultRegistry),
		Journal:         strings.TrimSpace(raw.Journal),
		Registries:      make(map[string]Registry, len(raw.Registries)),
	}
	for name, entry := range raw.Registries {
		reg, err := resolveRegistry(meta, name, entry, raw.ClTRIDPrefix)
		if err != nil {
			return Config{}, fmt.Errorf("registry[%s] invalid: %w", name, err)
		}
		cfg.Registries[name] = reg
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveRegistry(meta toml.MetaData, name string, raw RegistryFile, prefix string) (Registry, error) {
	sess := session.DefaultConfig()
	if strings.TrimSpace(prefix) != "" {
		sess.TRIDPrefix = strings.TrimSpace(prefix)
	}
	if meta.IsDefined("registry", name, "security_mode") {
		sess.SecurityMode = session.NormalizeSecurityMode(session.SecurityMode(raw.SecurityMode))
	}
	if meta.IsDefined("registry", name, "tls", "enabled") {
		sess.TLS.Enabled = raw.TLS.Enabled
	}
	sess.TLS.CertFile = strings.TrimSpace(raw.TLS.CertChain)
	sess.TLS.KeyFile = strings.TrimSpace(raw.TLS.Key)
	sess.TLS.CAFile = strings.TrimSpace(raw.TLS.CAFile)
	sess.TLS.ServerName = strings.TrimSpace(raw.TLS.ServerName)
	sess.TLS.InsecureSkipVerify = raw.TLS.InsecureSkipVerify
	if meta.IsDefined("registry", name, "max_frame_bytes") {
		sess.Limits.MaxPayloadBytes = raw.MaxFrameBytes
	}

	timeouts := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"connect_timeout", raw.ConnectTimeout, &sess.ConnectTimeout},
		{"read_timeout", raw.ReadTimeout, &sess.ReadTimeout},
		{"write_timeout", raw.WriteTimeout, &sess.WriteTimeout},
	}
	for _, to := range timeouts {
		if !meta.IsDefined("registry", name, to.key) {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(to.raw))
		if err != nil {
			return Registry{}, fmt.Errorf("parse %s: %w", to.key, err)
		}
		*to.dst = d
	}

	host := strings.TrimSpace(raw.Host)
	if host == "" {
		return Registry{}, fmt.Errorf("host is required")
	}
	port := raw.Port
	if port == 0 {
		port = DefaultPort
	}
	if port < 0 || port > 65535 {
		return Registry{}, fmt.Errorf("port out of range: %d", port)
	}

	return Registry{
		Name:    name,
		Address: net.JoinHostPort(host, strconv.Itoa(port)),
		Credentials: session.Credentials{
			ClientID:      strings.TrimSpace(raw.Username),
			Password:      raw.Password,
			ObjectURIs:    normalizeURIs(raw.ObjURIs),
			ExtensionURIs: normalizeURIs(raw.ExtURIs),
		},
		Session: sess,
	}, nil
}

// Validate checks cross-entry consistency.
func (c Config) Validate() error {
	if len(c.Registries) == 0 {
		return fmt.Errorf("config has no [registry.<name>] entries")
	}
	if c.DefaultRegistry != "" {
		if _, ok := c.Registries[c.DefaultRegistry]; !ok {
			return fmt.Errorf("default_registry %q is not defined", c.DefaultRegistry)
		}
	}
	for _, name := range c.Names() {
		if err := c.Registries[name].Session.ValidateClientTransport(); err != nil {
			return fmt.Errorf("registry[%s] transport: %w", name, err)
		}
	}
	return nil
}

// Names lists registry names in order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Registries))
	for name := range c.Registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select picks a registry by name. An empty name falls back to
// EPPCTL_REGISTRY, then default_registry, then the only entry. Credentials
// from EPPCTL_USERNAME and EPPCTL_PASSWORD override the file.
func (c Config) Select(name string) (Registry, error) {
	overrides := loadEnvOverrides()
	name = strings.TrimSpace(name)
	if name == "" {
		name = overrides.Registry
	}
	if name == "" {
		name = c.DefaultRegistry
	}
	if name == "" && len(c.Registries) == 1 {
		name = c.Names()[0]
	}
	if name == "" {
		return Registry{}, fmt.Errorf("registry not selected; choose one of %s", strings.Join(c.Names(), ", "))
	}
	reg, ok := c.Registries[name]
	if !ok {
		return Registry{}, fmt.Errorf("unknown registry %q", name)
	}
	overrides.apply(&reg)
	if reg.Credentials.ClientID == "" {
		return Registry{}, fmt.Errorf("registry[%s] missing username", name)
	}
	if reg.Credentials.Password == "" {
		return Registry{}, fmt.Errorf("registry[%s] missing password (set it in the file or %s)", name, EnvPassword)
	}
	return reg, nil
}

func normalizeURIs(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, uri := range in {
		v := strings.TrimSpace(uri)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
