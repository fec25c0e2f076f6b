// Command routectl runs routing passes against the engine database from the
// command line, for operators and one-off maintenance.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	appcmd "routeengine/cmd"
	"routeengine/internal/config"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

type globalOptions struct {
	envFile      string
	engineConfig string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "routectl",
		Short:         "Route engine operator CLI",
		Long:          "routectl deduplicates, sequences, materializes and restores delivery routes.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "path to the .env file")
	cmd.PersistentFlags().StringVar(&opts.engineConfig, "engine-config", "", "path to the engine YAML file (overrides ENGINE_CONFIG)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log handler activity to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newDedupCmd(opts))
	cmd.AddCommand(newSequenceCmd(opts))
	cmd.AddCommand(newReconcileCmd(opts))
	cmd.AddCommand(newMaterializeCmd(opts))
	cmd.AddCommand(newRunsCmd(opts))
	cmd.AddCommand(newRestoreCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "routectl %s (commit: %s)\n", Version, Commit)
		},
	}
}

// openApp loads configuration, connects and migrates the database and builds
// the composition root. The returned func releases it.
func openApp(ctx context.Context, opts *globalOptions, stderr io.Writer) (*appcmd.CompositionRoot, func(), error) {
	configs, err := appcmd.LoadConfig(opts.envFile)
	if err != nil {
		return nil, nil, err
	}
	if opts.engineConfig != "" {
		configs.EngineConfigPath = opts.engineConfig
	}

	engine, err := config.LoadEngine(configs.EngineConfigPath)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	db, err := appcmd.OpenDatabase(ctx, configs)
	if err != nil {
		return nil, nil, err
	}

	app, err := appcmd.NewCompositionRoot(configs, engine, db, logger)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		_ = app.Close()
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}
	return app, closeFn, nil
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
