package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/advancedknx/ets-proj-parser/cmd/etsproj/commands"
	"github.com/advancedknx/ets-proj-parser/cmd/etsproj/interactive"
	"github.com/advancedknx/ets-proj-parser/pkg/metrics"
	"github.com/advancedknx/ets-proj-parser/pkg/persistence"
)

// exportFlags are the flags shared by parse and watch.
type exportFlags struct {
	output        string
	format        string
	noIndent      bool
	apps          bool
	trace         string
	traceElements bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Export file (default: standard output)")
	cmd.Flags().StringVar(&f.format, "format", "", "Export format: json, cbor or yaml (default: from --output extension or config)")
	cmd.Flags().BoolVar(&f.noIndent, "no-indent", false, "Write compact JSON and YAML")
	cmd.Flags().BoolVar(&f.apps, "apps", false, "Also parse the application program files")
	cmd.Flags().StringVar(&f.trace, "trace", "", "Append the build trace to this .etrace file")
	cmd.Flags().BoolVar(&f.traceElements, "trace-elements", false, "Record every element in the trace")
}

// apply copies the flags onto the loaded configuration.
func (f *exportFlags) apply(a *app) error {
	cfg := a.cfg
	switch {
	case f.format != "":
		cfg.Export.Format = f.format
	case f.output != "":
		if format, err := persistence.FormatFromPath(f.output); err == nil {
			cfg.Export.Format = string(format)
		}
	}
	if _, err := persistence.ParseFormat(cfg.Export.Format); err != nil {
		return err
	}
	if f.noIndent {
		cfg.Export.Indent = false
	}
	if f.apps {
		cfg.Parse.ApplicationInfo = true
	}
	if f.trace != "" {
		cfg.Trace.Path = f.trace
	}
	if f.traceElements {
		cfg.Trace.Elements = true
	}
	return nil
}

func (a *app) parseCmd() *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "parse <archive.knxproj|dir>",
		Short: "Parse a project archive and export the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(a); err != nil {
				return err
			}
			_, err := commands.RunParse(cmd.Context(), commands.ParseOptions{
				Source: args[0],
				Output: flags.output,
				Format: flags.format,
				Config: a.cfg,
				Logger: a.logger,
			}, cmd.OutOrStdout())
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:       "show <export-file> [summary|topology|buildings|groups]...",
		Short:     "Render an exported project",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: commands.Views,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunShow(args[0], args[1:], showIDs, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show element IDs")
	return cmd
}

func (a *app) queryCmd() *cobra.Command {
	var opts commands.QueryOptions
	cmd := &cobra.Command{
		Use:   "query <export-file> <collection>",
		Short: "Filter a collection of an exported project",
		Long: `Filter a collection of an exported project and print the matches as JSON.

Collections: areas, lines, devices, unassignedDevices, buildingParts,
functions, groupRanges, groupAddresses (ga), productFamilies, products,
manufacturers, datapointTypes, datapointSubtypes, mediumTypes,
applicationPrograms, maskVersions.

Examples:
  etsproj query home.json devices --key programmingStatus.serialNumber --value AAEC
  etsproj query home.json ga --where "address > ` + "`256`" + `" --field name`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Collection = args[1]
			return commands.RunQuery(args[0], opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.Key, "key", "", "Dotted key path compared with --value")
	cmd.Flags().StringVar(&opts.Value, "value", "", "Value for --key (JSON, or a plain string)")
	cmd.Flags().StringVar(&opts.Where, "where", "", "JMESPath expression evaluated per item")
	cmd.Flags().StringVar(&opts.Field, "field", "", "Print only this dotted key path of each match")
	cmd.MarkFlagsRequiredTogether("key", "value")
	return cmd
}

func (a *app) traceCmd() *cobra.Command {
	var (
		buildID  string
		document string
		kind     string
		category string
	)
	filter := func() (commands.TraceFilter, error) {
		f := commands.TraceFilter{BuildID: buildID, Document: document}
		if kind != "" {
			k, err := commands.ParseKindFlag(kind)
			if err != nil {
				return f, err
			}
			f.Kind = &k
		}
		if category != "" {
			c, err := commands.ParseCategoryFlag(category)
			if err != nil {
				return f, err
			}
			f.Category = &c
		}
		return f, nil
	}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect build trace files",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&buildID, "build-id", "", "Filter by build ID")
	pf.StringVar(&document, "document", "", "Filter by document path")
	pf.StringVar(&kind, "kind", "", "Filter by kind (project, topology, hardware, master, application, build)")
	pf.StringVar(&category, "category", "", "Filter by category (document, element, error, stats)")

	view := &cobra.Command{
		Use:   "view <file.etrace>",
		Short: "Display trace events in human-readable format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter()
			if err != nil {
				return err
			}
			return commands.RunTraceView(args[0], f, cmd.OutOrStdout())
		},
	}

	var format string
	export := &cobra.Command{
		Use:   "export <file.etrace>",
		Short: "Export trace events as JSON lines or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter()
			if err != nil {
				return err
			}
			return commands.RunTraceExport(args[0], format, f, cmd.OutOrStdout())
		},
	}
	export.Flags().StringVar(&format, "format", "jsonl", "Output format (jsonl, csv)")

	stats := &cobra.Command{
		Use:   "stats <file.etrace>",
		Short: "Show statistics about a trace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunTraceStats(args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(view, export, stats)
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var (
		flags       exportFlags
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "watch <archive.knxproj>",
		Short: "Rebuild the export whenever the archive changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(a); err != nil {
				return err
			}
			if flags.output == "" {
				return fmt.Errorf("watch requires --output")
			}
			if metricsAddr != "" {
				a.cfg.Metrics.Addr = metricsAddr
			}

			var m *metrics.Metrics
			if a.cfg.Metrics.Addr != "" {
				m = metrics.NewMetrics()
			}

			archive := args[0]
			w, err := commands.NewWatcher(commands.WatcherConfig{
				Archive:       archive,
				DebounceDelay: a.cfg.Watch.Debounce,
				Logger:        a.logger,
				Rebuild: func(ctx context.Context) error {
					_, err := commands.RunParse(ctx, commands.ParseOptions{
						Source:  archive,
						Output:  flags.output,
						Format:  flags.format,
						Config:  a.cfg,
						Logger:  a.logger,
						Metrics: m,
					}, cmd.OutOrStdout())
					return err
				},
			})
			if err != nil {
				return err
			}

			return commands.RunWatch(cmd.Context(), w, a.cfg.Metrics.Addr, m, a.logger)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	return cmd
}

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell <export-file>",
		Short: "Explore an exported project interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			s, err := interactive.New(path, nil)
			if err != nil {
				return err
			}
			a.logger.Debug("Starting shell", slog.String("export", path))
			return s.Run(cmd.Context())
		},
	}
}
