package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/indigo-web/oneshot"
	"github.com/indigo-web/oneshot/config"
	"github.com/indigo-web/oneshot/internal/logging"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	configPath  string
	directory   string
	addr        string
	logLevel    string
	metricsAddr string
}

func newRootCommand() *cobra.Command {
	opts := new(options)
	cmd := &cobra.Command{
		Use:   "oneshot",
		Short: "Serve exactly one HTTP/1.1 request per connection",
		Long: `oneshot answers /, /user-agent, /echo/<text> and /files/<name> (GET and POST)
over plain TCP, closing every connection after its single response.

The first SIGINT or SIGTERM stops accepting connections and waits for those in flight,
a second one closes them right away.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			return run(cfg)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path (.toml or .json)")
	flags.StringVarP(&opts.directory, "directory", "d", "", "base directory served under /files/")
	flags.StringVarP(&opts.addr, "addr", "a", config.Default().NET.Addr, "address to listen on")
	flags.StringVar(&opts.logLevel, "log-level", config.Default().Log.Level, "log level")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "address to expose Prometheus metrics on, disabled if empty")

	return cmd
}

// resolve loads the config file, if any, and overrides it by explicitly set flags.
func (o *options) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("directory") {
		cfg.Files.Directory = o.directory
	}
	if flags.Changed("addr") {
		cfg.NET.Addr = o.addr
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = o.metricsAddr
	}

	return cfg, cfg.Validate()
}

func run(cfg *config.Config) error {
	log, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	app := oneshot.New(*cfg, log)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	// the first signal lets the connections in flight finish, the second one closes them
	go func() {
		sig := <-signals
		log.Info().Stringer("signal", sig).Msg("shutting down, send again to close connections in flight")
		app.Stop()
		sig = <-signals
		log.Warn().Stringer("signal", sig).Msg("forcing shutdown")
		app.Stop()
	}()

	if err = app.Serve(); !errors.Is(err, oneshot.ErrShutdown) {
		return err
	}

	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
