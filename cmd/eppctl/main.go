package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/danmuck/eppctl/internal/logging"
	"github.com/danmuck/eppctl/internal/telemetry"
)

const (
	name  = "eppctl"
	usage = "EPP registry client"

	defaultConfigPath = "eppctl.toml"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

var eppctlFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Value: defaultConfigPath,
		Usage: "registry configuration `FILE`",
	},
	cli.StringFlag{
		Name:  "registry, r",
		Usage: "registry profile `NAME` (default: $EPPCTL_REGISTRY, then default_registry)",
	},
	cli.StringFlag{
		Name:  "journal",
		Usage: "sqlite transaction journal `PATH` (overrides the config file)",
	},
	cli.StringFlag{
		Name:  "metrics-file",
		Usage: "write Prometheus transaction metrics to `PATH` on exit",
	},
}

var eppctlCommands = []cli.Command{
	helloCLICommand,
	checkCLICommand,
	pollCLICommand,
	ackCLICommand,
	journalCLICommand,
}

// newApp builds the command tree. Sub-commands read ctx from the app
// metadata.
func newApp(ctx context.Context, out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = usage
	app.Version = version
	app.Writer = out
	app.Flags = eppctlFlags
	app.Commands = eppctlCommands
	app.Metadata = map[string]interface{}{
		"context": ctx,
	}
	return app
}

func commandContext(c *cli.Context) context.Context {
	if ctx, ok := c.App.Metadata["context"].(context.Context); ok {
		return ctx
	}
	return context.Background()
}

func run(args []string) int {
	logging.ConfigureRuntime()
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, name)
	if err != nil {
		log.Warn().Err(err).Msg("eppctl: tracing disabled")
		shutdown = func(context.Context) error { return nil }
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("eppctl: tracer shutdown failed")
		}
	}()

	if err := newApp(ctx, os.Stdout).Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args))
}
