package etsproj

import (
	"errors"
	"fmt"

	"github.com/advancedknx/ets-proj-parser/pkg/archive"
	"github.com/advancedknx/ets-proj-parser/pkg/builder"
	"github.com/advancedknx/ets-proj-parser/pkg/log"
	"github.com/advancedknx/ets-proj-parser/pkg/xmlstream"
)

// Error classes reported in the build trace.
const (
	ClassDiscovery    = "discovery"
	ClassStream       = "stream"
	ClassPrecondition = "precondition"
)

// DocumentError is an error raised while a document was streamed.
type DocumentError struct {
	// Document is the workdir-relative path of the document.
	Document string
	Kind     log.Kind

	// Line and Column locate the element being handled, 0 when unknown.
	Line   int
	Column int

	Err error
}

func (e *DocumentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s:%d:%d: %v", e.Kind, e.Document, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Document, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// newDocumentError lifts the position out of a stream error.
func newDocumentError(doc string, kind log.Kind, err error) *DocumentError {
	de := &DocumentError{Document: doc, Kind: kind, Err: err}
	var pe *xmlstream.PositionError
	if errors.As(err, &pe) {
		de.Line, de.Column = pe.Line, pe.Column
		de.Err = pe.Err
	}
	return de
}

// IsDiscoveryError reports whether err is a missing-document error of the
// archive layout.
func IsDiscoveryError(err error) bool {
	return errors.Is(err, archive.ErrNoProject) ||
		errors.Is(err, archive.ErrNoHardware) ||
		errors.Is(err, archive.ErrNoMasterData) ||
		errors.Is(err, archive.ErrNoApplications)
}

// IsStreamError reports whether err was raised while a document was read and
// is not a precondition violation.
func IsStreamError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de) && !IsPreconditionError(err)
}

// IsPreconditionError reports whether err is a builder precondition violation,
// i.e. an element that appeared where its parent does not exist.
func IsPreconditionError(err error) bool {
	return errors.Is(err, builder.ErrPrecondition) || errors.Is(err, builder.ErrDepthUnderflow)
}

// Classify returns the error class of err, or "" for other errors.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case IsDiscoveryError(err):
		return ClassDiscovery
	case IsPreconditionError(err):
		return ClassPrecondition
	case IsStreamError(err):
		return ClassStream
	}
	return ""
}
