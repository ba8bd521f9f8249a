package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestTrace(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.etrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test trace: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func testEvents() []Event {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Event{
		{Timestamp: base, BuildID: "b-1", Path: "P-0001/0.xml", Kind: KindTopology, Category: CategoryDocument,
			Document: &DocumentEvent{Stage: StageStart}},
		{Timestamp: base.Add(time.Second), BuildID: "b-1", Path: "P-0001/0.xml", Kind: KindTopology, Category: CategoryElement,
			Element: &ElementEvent{Stage: StageStart, Name: "Area"}},
		{Timestamp: base.Add(2 * time.Second), BuildID: "b-1", Path: "knx_master.xml", Kind: KindMasterData, Category: CategoryDocument,
			Document: &DocumentEvent{Stage: StageStart}},
		{Timestamp: base.Add(3 * time.Second), BuildID: "b-2", Kind: KindBuild, Category: CategoryError,
			Error: &ErrorEventData{Message: "boom"}},
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	path := createTestTrace(t, testEvents())

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 4 {
		t.Fatalf("got %d events, want 4", len(read))
	}
	if read[1].Element == nil || read[1].Element.Name != "Area" {
		t.Errorf("event order not preserved: %+v", read[1])
	}
}

func TestFilteredReader(t *testing.T) {
	path := createTestTrace(t, testEvents())

	topology := KindTopology
	document := CategoryDocument
	start := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 3, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"by build", Filter{BuildID: "b-1"}, 3},
		{"by path", Filter{Path: "knx_master.xml"}, 1},
		{"by kind", Filter{Kind: &topology}, 2},
		{"by category", Filter{Category: &document}, 2},
		{"by time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{Kind: &topology, Category: &document}, 1},
		{"no match", Filter{BuildID: "b-9"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			events, err := reader.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.etrace")); err == nil {
		t.Error("expected error for missing file")
	}
}
