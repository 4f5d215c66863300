package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skymkmk/domain-list-to-srs/cmd/flags"
	"github.com/skymkmk/domain-list-to-srs/config"
	"github.com/skymkmk/domain-list-to-srs/hub/executor"
	"github.com/skymkmk/domain-list-to-srs/log"

	"github.com/spf13/cobra"
)

func runApp(cmd *cobra.Command, args []string) {
	if flags.Version {
		printVersion()
		return
	}
	err := run(cmd)
	if err != nil {
		log.Fatalln("%s", err.Error())
	}
}

func run(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLog(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = executor.Run(ctx, cfg)
	return err
}

// loadConfig layers the config file, the environment and the flags that
// were set explicitly, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.ConfigFile != "" {
		var err error
		cfg, err = config.ParseWithPath(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	set := cmd.Flags()
	if set.Changed("data") {
		cfg.DataPath = flags.DataPath
	}
	if set.Changed("output") {
		cfg.OutputPath = flags.OutputPath
	}
	if set.Changed("force") {
		cfg.Force = flags.Force
	}
	if set.Changed("concurrency") {
		cfg.Concurrency = flags.Concurrency
	}
	if err := applyLogFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func applyLogFlags(cmd *cobra.Command, cfg *config.Config) error {
	set := cmd.Flags()
	if set.Changed("log-level") {
		level, err := log.ParseLevel(flags.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if set.Changed("log-file") {
		cfg.LogFile = flags.LogFile
	}
	return nil
}

func setupLog(cfg *config.Config) {
	log.SetLevel(cfg.LogLevel)
	log.SetOutput(cfg.LogFile, 10, 3, 28, false)
}
