// twist is a small command-line client for the Twist API.
//
// Usage:
//
//	twist [global flags] <command> [flags] [args]
//
// The token is read from TWIST_TOKEN, a .env file or the twist.token key of
// config.yml. Every command prints its result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/twistkit/config"
	"github.com/kbukum/twistkit/logger"
	"github.com/kbukum/twistkit/observability"
	"github.com/kbukum/twistkit/twist"
	"github.com/kbukum/twistkit/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type globals struct {
	configFile string
	envFile    string
	logLevel   string
	showVer    bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var g globals
	fs := pflag.NewFlagSet("twist", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&g.configFile, "config", "", "path to config.yml")
	fs.StringVar(&g.envFile, "env-file", "", "path to a .env file")
	fs.StringVar(&g.logLevel, "log-level", "", "override twist.logging.level")
	fs.BoolVar(&g.showVer, "version", false, "print the version and exit")
	fs.SetInterspersed(false)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if g.showVer {
		fmt.Fprintln(stdout, version.Get())
		return nil
	}
	if fs.NArg() == 0 {
		printUsage(stderr, fs)
		return fmt.Errorf("no command given")
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}

	app, shutdown, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer shutdown()

	result, err := cmd.run(ctx, app, rest)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// setup loads configuration and builds the client, with telemetry exporters
// when they are enabled.
func setup(ctx context.Context, g globals) (*twist.Client, func(), error) {
	var opts []config.LoaderOption
	if g.configFile != "" {
		opts = append(opts, config.WithConfigFile(g.configFile))
	}
	if g.envFile != "" {
		opts = append(opts, config.WithEnvFile(g.envFile))
	}

	var f config.File
	if err := config.Load("twist", &f, opts...); err != nil {
		return nil, nil, err
	}
	cfg := f.Twist
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(&cfg.Logging)
	clientOpts := []twist.Option{twist.WithLogger(log)}
	shutdown := func() {}

	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability)
		if err != nil {
			return nil, nil, fmt.Errorf("init tracer: %w", err)
		}
		mp, err := observability.InitMeter(ctx, cfg.Observability)
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, nil, fmt.Errorf("init meter: %w", err)
		}
		metrics, err := observability.NewMetrics(observability.Meter())
		if err != nil {
			log.Warn("metrics disabled", logger.ErrorFields("new_metrics", err))
		}
		clientOpts = append(clientOpts,
			twist.WithTracer(observability.Tracer()),
			twist.WithMetrics(metrics),
		)
		shutdown = func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(sctx); err != nil {
				log.Warn("tracer shutdown failed", logger.ErrorFields("shutdown", err))
			}
			if err := mp.Shutdown(sctx); err != nil {
				log.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
			}
		}
	}

	client, err := twist.New(cfg, clientOpts...)
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	return client, shutdown, nil
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: twist [flags] <command> [command flags]\n\nCommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-14s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "\nFlags:\n%s", fs.FlagUsages())
}
