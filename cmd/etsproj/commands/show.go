package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/advancedknx/ets-proj-parser/pkg/inspect"
	"github.com/advancedknx/ets-proj-parser/pkg/persistence"
	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// Views rendered by RunShow.
const (
	ViewSummary   = "summary"
	ViewTopology  = "topology"
	ViewBuildings = "buildings"
	ViewGroups    = "groups"
)

// Views lists the views accepted by RunShow.
var Views = []string{ViewSummary, ViewTopology, ViewBuildings, ViewGroups}

// LoadExport reads a project export. The format follows the file extension.
func LoadExport(path string) (*project.Project, error) {
	store, err := persistence.OpenProjectStore(path)
	if err != nil {
		return nil, err
	}
	p, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if p == nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, os.ErrNotExist)
	}
	return p, nil
}

// Render writes one view of p.
func Render(w io.Writer, f *inspect.Formatter, p *project.Project, view string) error {
	var out string
	switch view {
	case ViewSummary, "":
		out = f.Summary(p)
	case ViewTopology:
		out = f.Topology(p)
	case ViewBuildings:
		out = f.Buildings(p)
	case ViewGroups, "ga":
		out = f.GroupRanges(p)
	default:
		return fmt.Errorf("unknown view: %s (supported: summary, topology, buildings, groups)", view)
	}
	_, err := io.WriteString(w, out)
	return err
}

// RunShow loads an export and renders the given views in order.
func RunShow(path string, views []string, showIDs bool, w io.Writer) error {
	p, err := LoadExport(path)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		views = []string{ViewSummary}
	}

	f := inspect.NewFormatter()
	f.ShowIDs = showIDs
	var errs []error
	for i, view := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := Render(w, f, p, view); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
