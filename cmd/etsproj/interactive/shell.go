// Package interactive provides the interactive shell of etsproj.
package interactive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/advancedknx/ets-proj-parser/cmd/etsproj/commands"
	"github.com/advancedknx/ets-proj-parser/pkg/inspect"
	"github.com/advancedknx/ets-proj-parser/pkg/project"
	"github.com/advancedknx/ets-proj-parser/pkg/query"
)

// Shell handles interactive mode over one exported project.
type Shell struct {
	path      string
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance
}

// New creates a shell for the export at path. A nil project is loaded from path.
func New(path string, p *project.Project) (*Shell, error) {
	if p == nil {
		var err error
		if p, err = commands.LoadExport(path); err != nil {
			return nil, err
		}
	}
	return &Shell{
		path:      path,
		inspector: inspect.NewInspector(p),
		formatter: inspect.NewFormatter(),
	}, nil
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "etsproj> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	s.rl = rl
	defer rl.Close()

	out := rl.Stdout()
	s.printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return nil
		}

		if quit := s.Execute(line, out); quit {
			return nil
		}
	}
}

func completer() *readline.PrefixCompleter {
	var collections []readline.PrefixCompleterInterface
	for _, c := range inspect.AllCollections() {
		collections = append(collections, readline.PcItem(string(c)))
	}
	var views []readline.PrefixCompleterInterface
	for _, v := range commands.Views {
		views = append(views, readline.PcItem(v))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("show", views...),
		readline.PcItem("get", collections...),
		readline.PcItem("query", collections...),
		readline.PcItem("ids"),
		readline.PcItem("reload"),
		readline.PcItem("exit"),
	)
}

// Execute runs one command line, writing its output to w. It reports
// whether the shell should exit.
func (s *Shell) Execute(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "show", "s":
		s.cmdShow(w, args)

	case "get", "g", "inspect", "i":
		s.cmdGet(w, args)

	case "query", "q":
		s.cmdQuery(w, args)

	case "ids":
		s.formatter.ShowIDs = !s.formatter.ShowIDs
		fmt.Fprintf(w, "Show IDs: %t\n", s.formatter.ShowIDs)

	case "reload":
		s.cmdReload(w)

	case "quit", "exit":
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
etsproj Commands:
  Views:
    show [view]                  - Render summary, topology, buildings or groups
    ids                          - Toggle IDs in rendered trees

  Lookup:
    get <collection>             - List a collection (e.g. get devices)
    get <collection>/<id>[/path] - Show an item or one of its fields
    query <collection> [key=value] [where <expr>]
                                 - Filter a collection by field or JMESPath expression

  Other:
    reload                       - Re-read the export file
    help                         - Show this help
    exit                         - Leave the shell`)
}

func (s *Shell) cmdShow(w io.Writer, args []string) {
	view := commands.ViewSummary
	if len(args) > 0 {
		view = strings.ToLower(args[0])
	}
	if err := commands.Render(w, s.formatter, s.inspector.Project(), view); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func (s *Shell) cmdGet(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: get <collection>[/<id>[/field.path]]")
		fmt.Fprintln(w, "  Example: get devices/P-0001-0_DI-1/programmingStatus")
		return
	}

	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(w, "Invalid path: %v\n", err)
		return
	}

	value, err := s.inspector.Resolve(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	switch {
	case path.IsCollection():
		s.printItems(w, value.([]any))
	case len(path.Field) == 0:
		printJSON(w, value)
	default:
		fmt.Fprintf(w, "%s = %s\n", path.Field[len(path.Field)-1], s.formatter.FormatValue(value))
	}
}

func (s *Shell) cmdQuery(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: query <collection> [key=value] [where <expr>]")
		fmt.Fprintln(w, "  Example: query devices programmingStatus.parametersLoaded=true")
		fmt.Fprintln(w, "  Example: query ga where \"address > `256`\"")
		return
	}

	opts := commands.QueryOptions{Collection: args[0]}
	rest := args[1:]
	if len(rest) > 0 && strings.ToLower(rest[0]) != "where" {
		key, value, ok := strings.Cut(rest[0], "=")
		if !ok {
			fmt.Fprintf(w, "Invalid filter: %s (expected key=value)\n", rest[0])
			return
		}
		opts.Key, opts.Value = key, value
		rest = rest[1:]
	}
	if len(rest) > 0 {
		if strings.ToLower(rest[0]) != "where" || len(rest) < 2 {
			fmt.Fprintln(w, "Usage: query <collection> [key=value] [where <expr>]")
			return
		}
		opts.Where = strings.Trim(strings.Join(rest[1:], " "), `"`)
	}

	items, err := commands.Query(s.inspector.Project(), opts)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	s.printItems(w, items)
}

func (s *Shell) cmdReload(w io.Writer) {
	p, err := commands.LoadExport(s.path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	s.inspector = inspect.NewInspector(p)
	fmt.Fprintf(w, "Reloaded %s\n", s.path)
}

// printItems lists items by ID and name.
func (s *Shell) printItems(w io.Writer, items []any) {
	for _, item := range items {
		id, _ := query.Field(item, []string{"id"})
		name, _ := query.Field(item, []string{"name"})
		if n, ok := name.(string); ok && n != "" {
			fmt.Fprintf(w, "  %v  %s\n", id, n)
		} else {
			fmt.Fprintf(w, "  %v\n", id)
		}
	}
	fmt.Fprintf(w, "(%d items)\n", len(items))
}

func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}
