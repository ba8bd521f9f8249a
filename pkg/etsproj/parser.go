package etsproj

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/advancedknx/ets-proj-parser/pkg/archive"
	"github.com/advancedknx/ets-proj-parser/pkg/builder"
	"github.com/advancedknx/ets-proj-parser/pkg/log"
	"github.com/advancedknx/ets-proj-parser/pkg/metrics"
	"github.com/advancedknx/ets-proj-parser/pkg/project"
	"github.com/advancedknx/ets-proj-parser/pkg/xmlstream"
)

// ParserConfig configures a Parser.
type ParserConfig struct {
	// Fs holds the extracted documents. Defaults to the OS filesystem.
	Fs afero.Fs

	// Workdir is the directory archives are extracted into.
	Workdir string

	// Applications also parses the application program files, which are
	// large and only needed for application names.
	Applications bool

	// Logger for operational output (optional)
	Logger *slog.Logger

	// Trace receives build trace events (optional)
	Trace log.Logger

	// TraceElements records every element open and close in the trace.
	TraceElements bool

	// Metrics records document and entity statistics (optional)
	Metrics *metrics.Metrics
}

// Validate checks the configuration.
func (c ParserConfig) Validate() error {
	if c.Workdir == "" {
		return errors.New("workdir is required")
	}
	return nil
}

// Parser builds projects from extracted ETS archives. A Parser may be reused
// for several builds but runs one build at a time.
type Parser struct {
	config ParserConfig
	fs     afero.Fs
	logger *slog.Logger
	trace  log.Logger
}

// NewParser creates a Parser.
func NewParser(config ParserConfig) (*Parser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p := &Parser{
		config: config,
		fs:     config.Fs,
		logger: config.Logger,
		trace:  config.Trace,
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.trace == nil {
		p.trace = log.NoopLogger{}
	}
	return p, nil
}

// ParseArchive extracts the archive at path into the work directory and
// builds the project from it. Extraction always targets the OS filesystem.
func (p *Parser) ParseArchive(ctx context.Context, path string) (*project.Project, error) {
	p.logger.Info("Extracting archive", slog.String("archive", path), slog.String("workdir", p.config.Workdir))
	if err := archive.Extract(ctx, path, p.config.Workdir); err != nil {
		return nil, err
	}
	return p.ParseDir(ctx, p.config.Workdir)
}

// ParseDir builds the project from the documents below workdir.
func (p *Parser) ParseDir(ctx context.Context, workdir string) (*project.Project, error) {
	b := &build{
		parser:  p,
		id:      uuid.NewString(),
		workdir: workdir,
		fs:      afero.NewBasePathFs(p.fs, workdir),
		project: project.New(),
		started: time.Now(),
	}
	b.logger = p.logger.With(slog.String("build_id", b.id))

	proj, err := b.run(ctx)
	if err != nil {
		b.fail(err)
		return nil, err
	}
	return proj, nil
}

// build is the state of a single ParseDir call.
type build struct {
	parser  *Parser
	id      string
	workdir string
	fs      afero.Fs // rooted at workdir
	logger  *slog.Logger
	project *project.Project
	started time.Time
}

func (b *build) run(ctx context.Context) (*project.Project, error) {
	layout, err := archive.Discover(b.parser.fs, b.workdir, archive.Options{Applications: b.parser.config.Applications})
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Discovered documents",
		slog.String("project", layout.ProjectDir),
		slog.Int("hardware", len(layout.Hardware)),
		slog.Int("applications", len(layout.Applications)),
	)

	if layout.ProjectInfo != "" {
		err := b.document(ctx, layout.ProjectInfo, log.KindProjectInfo, func(bld *builder.Builder) *xmlstream.Mux {
			return projectInfoHandler(bld, b.logger)
		})
		if err != nil {
			return nil, err
		}
	} else {
		b.logger.Warn("No project information document", slog.String("project", layout.ProjectDir))
	}

	if err := b.document(ctx, layout.Topology, log.KindTopology, topologyHandler); err != nil {
		return nil, err
	}
	b.project.Topology.NormalizeAddresses()

	for _, hw := range layout.Hardware {
		if err := b.document(ctx, hw, log.KindHardware, hardwareHandler); err != nil {
			return nil, err
		}
	}

	if err := b.document(ctx, layout.MasterData, log.KindMasterData, masterDataHandler); err != nil {
		return nil, err
	}

	if b.parser.config.Applications {
		for _, app := range layout.Applications {
			if err := b.document(ctx, app, log.KindApplication, applicationHandler); err != nil {
				return nil, err
			}
		}
	}

	b.finish()
	return b.project, nil
}

// document streams one document into a fresh Builder over the shared project.
func (b *build) document(ctx context.Context, path string, kind log.Kind, handler func(*builder.Builder) *xmlstream.Mux) error {
	f, err := b.fs.Open(path)
	if err != nil {
		return &DocumentError{Document: path, Kind: kind, Err: err}
	}
	defer f.Close()

	bld := builder.New(b.project)
	h := &tracingHandler{
		next:     handler(bld),
		trace:    b.parser.trace,
		elements: b.parser.config.TraceElements,
		event:    b.event(path, kind, log.CategoryElement),
	}

	b.emitDocument(path, kind, &log.DocumentEvent{Stage: log.StageStart})
	start := time.Now()

	err = xmlstream.Stream(ctx, f, h)
	if err == nil {
		err = bld.Finish()
	}

	duration := time.Since(start)
	b.parser.config.Metrics.RecordDocument(kind.String(), h.count, duration, err)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return err
		}
		return newDocumentError(path, kind, err)
	}

	b.emitDocument(path, kind, &log.DocumentEvent{Stage: log.StageEnd, Elements: h.count, Duration: &duration})
	b.logger.Debug("Parsed document",
		slog.String("document", path),
		slog.String("kind", kind.String()),
		slog.Int("elements", h.count),
		slog.Duration("duration", duration),
	)
	return nil
}

func (b *build) finish() {
	counts := b.project.Counts()
	duration := time.Since(b.started)

	b.parser.config.Metrics.RecordEntities(counts)

	ev := b.event("", log.KindBuild, log.CategoryStats)
	ev.Stats = &log.StatsEvent{Counts: counts, Duration: duration}
	b.parser.trace.Log(ev)

	b.logger.Info("Parsed project",
		slog.String("name", b.project.Information.Name),
		slog.Int("devices", counts["devices"]),
		slog.Int("group_addresses", counts["groupAddresses"]),
		slog.Duration("duration", duration),
	)
}

func (b *build) fail(err error) {
	ev := b.event("", log.KindBuild, log.CategoryError)
	ev.Error = &log.ErrorEventData{Message: err.Error(), Class: Classify(err)}

	var de *DocumentError
	if errors.As(err, &de) {
		ev.Path = de.Document
		ev.Kind = de.Kind
		ev.Error.Line = de.Line
		ev.Error.Column = de.Column
	}
	b.parser.trace.Log(ev)
}

func (b *build) emitDocument(path string, kind log.Kind, doc *log.DocumentEvent) {
	ev := b.event(path, kind, log.CategoryDocument)
	ev.Document = doc
	b.parser.trace.Log(ev)
}

// event returns a new event of this build.
func (b *build) event(path string, kind log.Kind, category log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		BuildID:   b.id,
		Path:      path,
		Kind:      kind,
		Category:  category,
	}
}

// tracingHandler counts elements and, when enabled, records them in the trace
// before passing them on.
type tracingHandler struct {
	next     xmlstream.Handler
	trace    log.Logger
	elements bool
	event    log.Event
	count    int
}

func (h *tracingHandler) OpenTag(e xmlstream.Element) error {
	h.count++
	if h.elements {
		ev := h.event
		ev.Timestamp = time.Now()
		ev.Element = &log.ElementEvent{Stage: log.StageStart, Name: e.Name, Attrs: e.Attrs}
		h.trace.Log(ev)
	}
	return h.next.OpenTag(e)
}

func (h *tracingHandler) CloseTag(name string) error {
	if h.elements {
		ev := h.event
		ev.Timestamp = time.Now()
		ev.Element = &log.ElementEvent{Stage: log.StageEnd, Name: name}
		h.trace.Log(ev)
	}
	return h.next.CloseTag(name)
}

var _ xmlstream.Handler = (*tracingHandler)(nil)
