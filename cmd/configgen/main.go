package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/eppctl/internal/config"
	"github.com/danmuck/eppctl/internal/logging"
)

const defaultPath = "eppctl.toml"

func main() {
	logging.ConfigureRuntime()

	output := flag.String("output", defaultPath, "output path for the config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		cfg, err := config.Load(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("configgen: validation failed")
		}
		log.Info().Str("path", *input).Strs("registries", cfg.Names()).Msg("configgen: config is valid")
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal().Err(err).Msg("configgen: write template failed")
	}
	log.Info().Str("path", *output).Msg("configgen: wrote config template")
}
