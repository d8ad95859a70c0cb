// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/themerc/cmd/themerc/commands"
	"github.com/walteh/themerc/cmd/themerc/opts"
	"github.com/walteh/themerc/pkg/config"
	"github.com/walteh/themerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".themerc.hcl"

// rootFlags holds the persistent flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	root       string
	async      bool
	workers    int
	backup     bool
}

// newRootCmd builds the command tree writing console output to console
func newRootCmd(console io.Writer) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{Console: console}

	cmd := &cobra.Command{
		Use:   "themerc",
		Short: "Migrate React Native components from static colors to the theme hook",
		Long: `themerc rewrites components that import the static colors module so they
read colors from the useTheme hook instead. It replaces the import, injects the
hook call into the exported component and turns the static style table into
a getStyles factory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug)
			cmd.SetContext(ctx)

			if cmd.Name() == "version" {
				return nil
			}

			resolved, err := newRootOpts(ctx, cmd, flags, console)
			if err != nil {
				return err
			}
			*rootOpts = *resolved
			return nil
		},
	}

	cmd.SetOut(console)
	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewMigrateCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewVersionCmd(),
	)

	return cmd
}

// newRootOpts loads the config and applies flag overrides
func newRootOpts(ctx context.Context, cmd *cobra.Command, flags *rootFlags, console io.Writer) (*opts.RootOpts, error) {
	cfg, err := loadConfig(ctx, flags.configFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("root") {
		cfg.Root = flags.root
	}
	if cmd.Flags().Changed("async") {
		cfg.Async = flags.async
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}
	if cmd.Flags().Changed("backup") {
		cfg.Backup = flags.backup
	}

	if err := config.Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	level := zerolog.InfoLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config:  cfg,
		Logger:  log.New(console, level),
		Console: console,
	}, nil
}

// loadConfig reads path. A missing file is only an error when the path was
// given explicitly.
func loadConfig(ctx context.Context, path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return config.Default(), nil
	}

	cfg, err := config.LoadConfig(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", defaultConfigFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.root, "root", "", "directory to migrate (overrides config)")
	cmd.PersistentFlags().BoolVar(&flags.async, "async", false, "process files concurrently")
	cmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "concurrent workers when async (0 = one per CPU)")
	cmd.PersistentFlags().BoolVar(&flags.backup, "backup", false, "write <file>.bak before overwriting")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx)
}
