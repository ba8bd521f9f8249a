// Package commands implements the etsproj CLI commands.
package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/advancedknx/ets-proj-parser/pkg/log"
)

// TraceFilter specifies criteria for filtering events of a build trace.
type TraceFilter struct {
	BuildID  string
	Document string
	Kind     *log.Kind
	Category *log.Category
}

func (f TraceFilter) logFilter() log.Filter {
	return log.Filter{
		BuildID:  f.BuildID,
		Path:     f.Document,
		Kind:     f.Kind,
		Category: f.Category,
	}
}

// ParseKindFlag parses a document kind from a command-line flag (case-insensitive).
func ParseKindFlag(s string) (log.Kind, error) {
	k, ok := log.ParseKind(s)
	if !ok {
		return 0, fmt.Errorf("invalid kind: %s (must be project, topology, hardware, master, application or build)", s)
	}
	return k, nil
}

// ParseCategoryFlag parses a category from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be document, element, error or stats)", s)
	}
	return c, nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [build:id] KIND CATEGORY document
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [build:%s] %-11s %-8s %s\n",
		ts, shortenID(event.BuildID), event.Kind.String(), event.Category.String(), event.Path)

	switch {
	case event.Document != nil:
		fmt.Fprintf(w, "  Stage: %s\n", event.Document.Stage.String())
		if event.Document.Stage == log.StageEnd {
			fmt.Fprintf(w, "  Elements: %d\n", event.Document.Elements)
		}
		if event.Document.Duration != nil {
			fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*event.Document.Duration))
		}
	case event.Element != nil:
		formatElementDetails(w, event.Element)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Class != "" {
			fmt.Fprintf(w, "  Class: %s\n", event.Error.Class)
		}
		if event.Error.Line > 0 {
			fmt.Fprintf(w, "  Position: line %d, column %d\n", event.Error.Line, event.Error.Column)
		}
	case event.Stats != nil:
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(event.Stats.Duration))
		for _, k := range sortedKeys(event.Stats.Counts) {
			fmt.Fprintf(w, "  %-20s %d\n", k+":", event.Stats.Counts[k])
		}
	}

	fmt.Fprintln(w) // Blank line between events
}

func formatElementDetails(w io.Writer, el *log.ElementEvent) {
	if el.Stage == log.StageEnd {
		fmt.Fprintf(w, "  </%s>\n", el.Name)
		return
	}
	var sb strings.Builder
	for _, k := range sortedKeys(el.Attrs) {
		fmt.Fprintf(&sb, " %s=%q", k, el.Attrs[k])
	}
	fmt.Fprintf(w, "  <%s%s>\n", el.Name, sb.String())
}

// shortenID returns the first 8 characters of a build ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// eachEvent calls fn for every event of the trace matching filter.
func eachEvent(path string, filter TraceFilter, fn func(log.Event) error) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

// RunTraceView prints the trace in human-readable form.
func RunTraceView(path string, filter TraceFilter, output io.Writer) error {
	return eachEvent(path, filter, func(event log.Event) error {
		formatEvent(output, event)
		return nil
	})
}

// RunTraceExport writes the trace as JSON lines or CSV.
func RunTraceExport(path, format string, filter TraceFilter, w io.Writer) error {
	switch format {
	case "jsonl":
		encoder := json.NewEncoder(w)
		return eachEvent(path, filter, func(event log.Event) error {
			if err := encoder.Encode(event); err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}
			return nil
		})
	case "csv":
		cw := csv.NewWriter(w)
		defer cw.Flush()

		header := []string{"timestamp", "build_id", "kind", "category", "document", "stage", "detail"}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		return eachEvent(path, filter, func(event log.Event) error {
			stage, detail := csvDetail(event)
			row := []string{
				event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
				event.BuildID,
				event.Kind.String(),
				event.Category.String(),
				event.Path,
				stage,
				detail,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
			return nil
		})
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func csvDetail(event log.Event) (stage, detail string) {
	switch {
	case event.Document != nil:
		return event.Document.Stage.String(), fmt.Sprintf("%d", event.Document.Elements)
	case event.Element != nil:
		return event.Element.Stage.String(), event.Element.Name
	case event.Error != nil:
		return "", event.Error.Message
	case event.Stats != nil:
		return "", event.Stats.Duration.String()
	}
	return "", ""
}

// BuildStats holds aggregate statistics about one build of a trace.
type BuildStats struct {
	ID        string
	Start     time.Time
	End       time.Time
	Documents int
	Elements  int
	Failed    bool
	Error     string
	Counts    map[string]int
}

// TraceStats holds aggregate statistics about a trace file.
type TraceStats struct {
	TotalEvents      int
	EventsByKind     map[log.Kind]int
	EventsByCategory map[log.Category]int
	Builds           map[string]*BuildStats
}

// RunTraceStats analyzes the trace and prints statistics.
func RunTraceStats(path string, w io.Writer) error {
	stats := &TraceStats{
		EventsByKind:     make(map[log.Kind]int),
		EventsByCategory: make(map[log.Category]int),
		Builds:           make(map[string]*BuildStats),
	}

	err := eachEvent(path, TraceFilter{}, func(event log.Event) error {
		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++
		stats.EventsByCategory[event.Category]++

		b, ok := stats.Builds[event.BuildID]
		if !ok {
			b = &BuildStats{ID: event.BuildID, Start: event.Timestamp, End: event.Timestamp}
			stats.Builds[event.BuildID] = b
		}
		if event.Timestamp.Before(b.Start) {
			b.Start = event.Timestamp
		}
		if event.Timestamp.After(b.End) {
			b.End = event.Timestamp
		}

		switch {
		case event.Document != nil && event.Document.Stage == log.StageEnd:
			b.Documents++
			b.Elements += event.Document.Elements
		case event.Error != nil:
			b.Failed = true
			b.Error = event.Error.Message
		case event.Stats != nil:
			b.Counts = event.Stats.Counts
		}
		return nil
	})
	if err != nil {
		return err
	}

	printTraceStats(w, stats)
	return nil
}

func printTraceStats(w io.Writer, stats *TraceStats) {
	fmt.Fprintln(w, "=== Build Trace Statistics ===")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for k := log.KindProjectInfo; k <= log.KindBuild; k++ {
		if count := stats.EventsByKind[k]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", k.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryDocument; c <= log.CategoryStats; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	builds := make([]*BuildStats, 0, len(stats.Builds))
	for _, b := range stats.Builds {
		builds = append(builds, b)
	}
	sort.Slice(builds, func(i, j int) bool { return builds[i].Start.Before(builds[j].Start) })

	fmt.Fprintf(w, "Builds: %d\n", len(builds))
	for _, b := range builds {
		status := "ok"
		if b.Failed {
			status = "FAILED"
		}
		fmt.Fprintf(w, "  [%s] %s, %d documents, %d elements, duration %s\n",
			shortenID(b.ID), status, b.Documents, b.Elements, b.End.Sub(b.Start).Round(time.Millisecond))
		if b.Failed {
			fmt.Fprintf(w, "           Error: %s\n", b.Error)
		}
		if n, ok := b.Counts["devices"]; ok {
			fmt.Fprintf(w, "           Devices: %d, group addresses: %d\n", n, b.Counts["groupAddresses"])
		}
	}
}
