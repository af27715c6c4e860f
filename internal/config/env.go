package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

const (
	EnvRegistry = "EPPCTL_REGISTRY"
	EnvUsername = "EPPCTL_USERNAME"
	EnvPassword = "EPPCTL_PASSWORD"
)

type envOverrides struct {
	Registry string `env:"EPPCTL_REGISTRY"`
	Username string `env:"EPPCTL_USERNAME"`
	Password string `env:"EPPCTL_PASSWORD"`
}

func loadEnvOverrides() envOverrides {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		log.Warn().Err(err).Msg("config: env overrides ignored")
		return envOverrides{}
	}
	raw.Registry = strings.TrimSpace(raw.Registry)
	raw.Username = strings.TrimSpace(raw.Username)
	return raw
}

func (o envOverrides) apply(reg *Registry) {
	if o.Username != "" {
		reg.Credentials.ClientID = o.Username
	}
	if o.Password != "" {
		reg.Credentials.Password = o.Password
	}
}
