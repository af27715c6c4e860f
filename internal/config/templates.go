package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/eppctl/internal/epp"
)

// Template renders a starter eppctl.toml with one production and one
// development registry.
func Template() (string, error) {
	file := File{
		DefaultRegistry: "production",
		ClTRIDPrefix:    "eppctl",
		Journal:         "eppctl-journal.db",
		Registries: map[string]RegistryFile{
			"production": {
				Host:           "epp.registry.example",
				Port:           DefaultPort,
				Username:       "registrar-id",
				ObjURIs:        epp.DefaultObjectURIs,
				ExtURIs:        []string{"urn:ietf:params:xml:ns:rgp-1.0"},
				SecurityMode:   "production",
				ConnectTimeout: "10s",
				ReadTimeout:    "60s",
				WriteTimeout:   "30s",
				TLS: TLSFile{
					Enabled:   true,
					CertChain: "certs/registrar.crt",
					Key:       "certs/registrar.key",
				},
			},
			"ote": {
				Host:         "127.0.0.1",
				Port:         7000,
				Username:     "ote-registrar",
				Password:     "ote-password",
				SecurityMode: "development",
				TLS:          TLSFile{Enabled: false},
			},
		},
	}
	out, err := toml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("render config template: %w", err)
	}
	return string(out), nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}
