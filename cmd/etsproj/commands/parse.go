package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/advancedknx/ets-proj-parser/pkg/config"
	"github.com/advancedknx/ets-proj-parser/pkg/etsproj"
	"github.com/advancedknx/ets-proj-parser/pkg/log"
	"github.com/advancedknx/ets-proj-parser/pkg/metrics"
	"github.com/advancedknx/ets-proj-parser/pkg/persistence"
	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// ParseOptions holds the inputs of a parse run.
type ParseOptions struct {
	// Source is a .knxproj archive or an already extracted directory.
	Source string

	// Output is the export file. Empty writes the export to the command output.
	Output string

	// Format overrides the export format. When empty the Output extension
	// decides, falling back to the configured format.
	Format string

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// RunParse builds the project from opts.Source and writes the export.
func RunParse(ctx context.Context, opts ParseOptions, w io.Writer) (*project.Project, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	format, err := exportFormat(opts, cfg)
	if err != nil {
		return nil, err
	}

	trace, err := openTrace(cfg.Trace.Path, logger)
	if err != nil {
		return nil, err
	}
	defer trace.Close()

	parser, err := etsproj.NewParser(etsproj.ParserConfig{
		Workdir:       cfg.Workdir,
		Applications:  cfg.Parse.ApplicationInfo,
		Logger:        logger,
		Trace:         trace,
		TraceElements: cfg.Trace.Elements,
		Metrics:       opts.Metrics,
	})
	if err != nil {
		return nil, err
	}

	p, err := parseSource(ctx, parser, opts.Source)
	if err != nil {
		return nil, err
	}

	if opts.Output == "" {
		if err := persistence.Encode(w, p, format, cfg.Export.Indent); err != nil {
			return nil, fmt.Errorf("failed to encode project: %w", err)
		}
		return p, nil
	}

	store := persistence.NewProjectStore(opts.Output, format, cfg.Export.Indent)
	if err := store.Save(p); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	logger.Info("Exported project", slog.String("output", store.Path()), slog.String("format", string(format)))
	return p, nil
}

func exportFormat(opts ParseOptions, cfg *config.Config) (persistence.Format, error) {
	if opts.Format != "" {
		return persistence.ParseFormat(opts.Format)
	}
	if opts.Output != "" {
		if format, err := persistence.FormatFromPath(opts.Output); err == nil {
			return format, nil
		}
	}
	return persistence.ParseFormat(cfg.Export.Format)
}

func parseSource(ctx context.Context, parser *etsproj.Parser, source string) (*project.Project, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return parser.ParseDir(ctx, source)
	}
	return parser.ParseArchive(ctx, source)
}

// openTrace returns the trace sink of a run: the console adapter and, when
// path is set, the trace file.
func openTrace(path string, logger *slog.Logger) (*log.MultiLogger, error) {
	loggers := []log.Logger{log.NewSlogAdapter(logger)}
	if path != "" {
		fl, err := log.NewFileLogger(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace file: %w", err)
		}
		loggers = append(loggers, fl)
	}
	return log.NewMultiLogger(loggers...), nil
}
