package log

import (
	"strings"
	"time"
)

// Event represents a build trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// BuildID uniquely identifies the build (UUID).
	BuildID string `cbor:"2,keyasint"`

	// Path is the archive-relative path of the document being streamed.
	Path string `cbor:"3,keyasint,omitempty"`

	// Kind of the document being streamed.
	Kind Kind `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Document *DocumentEvent  `cbor:"10,keyasint,omitempty"` // Document start/end
	Element  *ElementEvent   `cbor:"11,keyasint,omitempty"` // Element open/close
	Error    *ErrorEventData `cbor:"12,keyasint,omitempty"` // Build failure
	Stats    *StatsEvent     `cbor:"13,keyasint,omitempty"` // Entity counts of the finished project
}

// Kind identifies the document type of an archive.
type Kind uint8

const (
	// KindProjectInfo is P-*/project.xml.
	KindProjectInfo Kind = 0
	// KindTopology is P-*/0.xml.
	KindTopology Kind = 1
	// KindHardware is M-*/Hardware.xml.
	KindHardware Kind = 2
	// KindMasterData is knx_master.xml.
	KindMasterData Kind = 3
	// KindApplication is M-*/M-*.xml.
	KindApplication Kind = 4
	// KindBuild marks events about the build as a whole.
	KindBuild Kind = 5
)

var kindNames = map[Kind]string{
	KindProjectInfo: "project",
	KindTopology:    "topology",
	KindHardware:    "hardware",
	KindMasterData:  "master",
	KindApplication: "application",
	KindBuild:       "build",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryDocument indicates a document start or end.
	CategoryDocument Category = 0
	// CategoryElement indicates an element open or close.
	CategoryElement Category = 1
	// CategoryError indicates a build failure.
	CategoryError Category = 2
	// CategoryStats indicates the entity counts of a finished build.
	CategoryStats Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDocument:
		return "DOCUMENT"
	case CategoryElement:
		return "ELEMENT"
	case CategoryError:
		return "ERROR"
	case CategoryStats:
		return "STATS"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category with the given name (case-insensitive).
func ParseCategory(name string) (Category, bool) {
	for c := CategoryDocument; c <= CategoryStats; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return 0, false
}

// Stage is the lifecycle position of a document or element event.
type Stage uint8

const (
	// StageStart marks a document start or an element open.
	StageStart Stage = 0
	// StageEnd marks a document end or an element close.
	StageEnd Stage = 1
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "START"
	case StageEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// DocumentEvent captures the start and end of a streamed document.
type DocumentEvent struct {
	Stage Stage `cbor:"1,keyasint"`

	// Elements is the number of elements the document contained (end only).
	Elements int `cbor:"2,keyasint,omitempty"`

	// Duration is the time spent streaming the document (end only).
	// Stored as nanoseconds.
	Duration *time.Duration `cbor:"3,keyasint,omitempty"`
}

// ElementEvent captures a single element. Element events are only recorded
// when element tracing is enabled; they dominate the trace size.
type ElementEvent struct {
	Stage Stage  `cbor:"1,keyasint"`
	Name  string `cbor:"2,keyasint"`

	// Attrs are the element's attributes (open only).
	Attrs map[string]string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures the error that aborted a build.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Line and Column locate stream errors in the document.
	Line   int `cbor:"2,keyasint,omitempty"`
	Column int `cbor:"3,keyasint,omitempty"`

	// Class is the error taxonomy class (discovery, stream, precondition).
	Class string `cbor:"4,keyasint,omitempty"`
}

// StatsEvent captures the entity counts of a finished project.
type StatsEvent struct {
	Counts map[string]int `cbor:"1,keyasint"`

	// Duration is the total build time. Stored as nanoseconds.
	Duration time.Duration `cbor:"2,keyasint"`
}
