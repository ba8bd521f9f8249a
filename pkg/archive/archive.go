// Package archive unpacks ETS project archives and locates the documents a
// project build reads.
//
// A .knxproj file is a zip archive. Its documents are found by name convention
// only: the project folder P-*, the topology P-*/0.xml, the hardware files
// M-*/Hardware.xml, the master data knx_master.xml and the application program
// files M-*/M-*.xml.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-getter"
	"github.com/spf13/afero"
)

// Discovery errors. They are returned before any document is read.
var (
	ErrNoProject      = errors.New("no project folder (P-*/0.xml) found")
	ErrNoHardware     = errors.New("no hardware files (M-*/Hardware.xml) found")
	ErrNoMasterData   = errors.New("no master data (knx_master.xml) found")
	ErrNoApplications = errors.New("no application program files (M-*/M-*.xml) found")
)

// Name conventions of the archive layout.
const (
	topologyPattern     = "P-*/0.xml"
	projectInfoFile     = "project.xml"
	hardwarePattern     = "M-*/Hardware.xml"
	masterDataFile      = "knx_master.xml"
	applicationsPattern = "M-*/M-*.xml"
)

// Extraction limits guarding against archives that expand without bound.
const (
	maxFiles    = 100000
	maxFileSize = 4 << 30
)

// Extract unpacks the archive at src into the directory dst, creating it if
// needed.
func Extract(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	z := &getter.ZipDecompressor{
		FilesLimit:    maxFiles,
		FileSizeLimit: maxFileSize,
	}
	if err := z.Decompress(dst, src, true, 0); err != nil {
		return fmt.Errorf("extract %s: %w", src, err)
	}
	return nil
}

// Options controls which documents discovery requires.
type Options struct {
	// Applications requires application program files to be present.
	Applications bool
}

// Layout lists the documents of an extracted project. All paths are slash
// separated and relative to the work directory.
type Layout struct {
	ProjectDir   string
	ProjectInfo  string // empty when project.xml is missing
	Topology     string
	Hardware     []string
	MasterData   string
	Applications []string
}

// Discover locates the project documents below workdir on fsys.
//
// The first project folder in lexical order is used. Application program files
// are always listed when present, but only required when opts.Applications is
// set.
func Discover(fsys afero.Fs, workdir string, opts Options) (*Layout, error) {
	root := afero.NewIOFS(afero.NewBasePathFs(fsys, workdir))

	topology, err := glob(root, topologyPattern)
	if err != nil {
		return nil, err
	}
	if len(topology) == 0 {
		return nil, ErrNoProject
	}

	l := &Layout{
		ProjectDir: path.Dir(topology[0]),
		Topology:   topology[0],
	}

	info := path.Join(l.ProjectDir, projectInfoFile)
	if _, err := fs.Stat(root, info); err == nil {
		l.ProjectInfo = info
	}

	if l.Hardware, err = glob(root, hardwarePattern); err != nil {
		return nil, err
	}
	if len(l.Hardware) == 0 {
		return nil, ErrNoHardware
	}

	if _, err := fs.Stat(root, masterDataFile); err != nil {
		return nil, ErrNoMasterData
	}
	l.MasterData = masterDataFile

	if l.Applications, err = glob(root, applicationsPattern); err != nil {
		return nil, err
	}
	if opts.Applications && len(l.Applications) == 0 {
		return nil, ErrNoApplications
	}

	return l, nil
}

func glob(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}
