package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	outputFormat = FormatJSON
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
// Every failure is reported on stdout as an error document.
func execute(ctx context.Context, args []string, stdout io.Writer) int {
	rootCommand := newRootCommand()
	rootCommand.SetOut(stdout)
	rootCommand.SetArgs(args)
	if err := rootCommand.ExecuteContext(ctx); err != nil {
		slog.Default().Debug("Command failed", "error", err)
		if writeErr := writeJSON(stdout, newErrorResponse(err)); writeErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, writeErr))
		}
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "foodscout",
		Short:         "Self-learning nutrition lookup",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			loadDotEnv(".env")
			return nil
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug mode")
	outputFormat = FormatJSON
	flags.Var(&outputFormat, "format", fmt.Sprintf("Output format. Possible values are %v", allFormats))

	rootCommand.AddCommand(
		newLookupCommand(),
		newSearchCommand(),
		newListCommand(),
		newStatsCommand(),
		newMigrateCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode.
// Logs go to stderr because stdout carries the JSON document.
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

// loadDotEnv exports variables from path unless they are already set.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Warn("Failed to load env file", "path", path, "error", err)
	}
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(newMigrateSchemaCommand())
	migrateCmd.AddCommand(newMigrateImportDBCommand())
	migrateCmd.AddCommand(newMigrateExportDBCommand())

	return migrateCmd
}
