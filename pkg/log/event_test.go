package log

import (
	"testing"
	"time"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindProjectInfo, "project"},
		{KindTopology, "topology"},
		{KindHardware, "hardware"},
		{KindMasterData, "master"},
		{KindApplication, "application"},
		{KindBuild, "build"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("Topology")
	if !ok || k != KindTopology {
		t.Errorf("ParseKind(Topology) = %v, %v", k, ok)
	}
	if _, ok := ParseKind("nope"); ok {
		t.Error("ParseKind(nope) should fail")
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryDocument, "DOCUMENT"},
		{CategoryElement, "ELEMENT"},
		{CategoryError, "ERROR"},
		{CategoryStats, "STATS"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}

	c, ok := ParseCategory("error")
	if !ok || c != CategoryError {
		t.Errorf("ParseCategory(error) = %v, %v", c, ok)
	}
}

func TestEventRoundTrip(t *testing.T) {
	d := 1500 * time.Microsecond
	events := []Event{
		{
			Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC),
			BuildID:   "b-1",
			Path:      "P-0001/0.xml",
			Kind:      KindTopology,
			Category:  CategoryDocument,
			Document:  &DocumentEvent{Stage: StageEnd, Elements: 42, Duration: &d},
		},
		{
			Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			BuildID:   "b-1",
			Kind:      KindTopology,
			Category:  CategoryElement,
			Element:   &ElementEvent{Stage: StageStart, Name: "Area", Attrs: map[string]string{"Id": "A1"}},
		},
		{
			Timestamp: time.Date(2024, 3, 1, 12, 0, 1, 0, time.UTC),
			BuildID:   "b-1",
			Kind:      KindBuild,
			Category:  CategoryError,
			Error:     &ErrorEventData{Message: "boom", Line: 3, Column: 7, Class: "stream"},
		},
		{
			Timestamp: time.Date(2024, 3, 1, 12, 0, 2, 0, time.UTC),
			BuildID:   "b-1",
			Kind:      KindBuild,
			Category:  CategoryStats,
			Stats:     &StatsEvent{Counts: map[string]int{"devices": 3}, Duration: time.Second},
		},
	}

	for _, e := range events {
		data, err := EncodeEvent(e)
		if err != nil {
			t.Fatalf("EncodeEvent failed: %v", err)
		}
		got, err := DecodeEvent(data)
		if err != nil {
			t.Fatalf("DecodeEvent failed: %v", err)
		}

		if !got.Timestamp.Equal(e.Timestamp) {
			t.Errorf("Timestamp: got %v, want %v", got.Timestamp, e.Timestamp)
		}
		if got.Category != e.Category || got.Kind != e.Kind || got.Path != e.Path {
			t.Errorf("header: got %+v, want %+v", got, e)
		}

		switch {
		case e.Document != nil:
			if got.Document == nil || got.Document.Elements != 42 || *got.Document.Duration != d {
				t.Errorf("Document: got %+v", got.Document)
			}
		case e.Element != nil:
			if got.Element == nil || got.Element.Attrs["Id"] != "A1" {
				t.Errorf("Element: got %+v", got.Element)
			}
		case e.Error != nil:
			if got.Error == nil || *got.Error != *e.Error {
				t.Errorf("Error: got %+v, want %+v", got.Error, e.Error)
			}
		case e.Stats != nil:
			if got.Stats == nil || got.Stats.Counts["devices"] != 3 || got.Stats.Duration != time.Second {
				t.Errorf("Stats: got %+v", got.Stats)
			}
		}
	}
}

func TestEncodingIsDeterministic(t *testing.T) {
	e := Event{
		BuildID:  "b",
		Category: CategoryStats,
		Stats:    &StatsEvent{Counts: map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}},
	}

	first, err := EncodeEvent(e)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _ := EncodeEvent(e)
		if string(again) != string(first) {
			t.Fatal("encoding differs between runs")
		}
	}
}
