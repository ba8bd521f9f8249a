// Package main provides the etsproj binary entry point.
// etsproj parses ETS project archives (.knxproj) into a project model and
// exports, renders and queries the result.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/advancedknx/ets-proj-parser/pkg/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "etsproj"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	workdir    string

	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "ETS project archive parser",
		Long: `etsproj parses ETS project archives (.knxproj) into a project model:
topology, buildings, group addresses and the hardware and master data
reference tables.

The model is exported as JSON, CBOR or YAML and can be rendered, queried
or explored in an interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")
	flags.StringVar(&a.workdir, "workdir", "", "Directory archives are extracted into")

	cmd.AddCommand(
		a.parseCmd(),
		a.showCmd(),
		a.queryCmd(),
		a.traceCmd(),
		a.watchCmd(),
		a.shellCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// load resolves the configuration: defaults, user and directory config
// files, the --config file, then command line flags.
func (a *app) load() error {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.NewLoader(bootstrap).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.configPath != "" {
		if err := cfg.MergeFile(a.configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.workdir != "" {
		cfg.Workdir = a.workdir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.logger = cfg.NewLogger(os.Stderr)
	slog.SetDefault(a.logger)
	return nil
}
