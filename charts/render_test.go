package charts

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteShareSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteShareSVG(&buf, Share([]int{3, 1}, []string{"A", "B"}), 400, 300); err != nil {
		t.Fatalf("WriteShareSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "75.00") {
		t.Errorf("share svg: missing svg root or label in %q", out)
	}
	if strings.Count(out, "<path") != 2 {
		t.Errorf("share svg: got %d slices, want 2", strings.Count(out, "<path"))
	}
}

func TestWriteShareSVGSingleSlice(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteShareSVG(&buf, Share([]int{4}, []string{"A"}), 400, 300); err != nil {
		t.Fatalf("WriteShareSVG: %v", err)
	}
	if !strings.Contains(buf.String(), "<circle") {
		t.Errorf("single slice: want a full circle")
	}
}

func TestWriteNoDataCharts(t *testing.T) {
	tests := []struct {
		name   string
		write  func(*bytes.Buffer) error
		notice string
	}{
		{"share", func(b *bytes.Buffer) error { return WriteShareSVG(b, Share(nil, nil), 300, 200) },
			"No data available for the selected criteria."},
		{"averages", func(b *bytes.Buffer) error { return WriteBarSVG(b, Averages(nil), 300, 200) },
			"No data available for the selected criteria."},
		{"map", func(b *bytes.Buffer) error { return WriteMapSVG(b, Map(nil), 300, 200) },
			"No valid data for selected cities."},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := tt.write(&buf); err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if !strings.Contains(buf.String(), tt.notice) {
			t.Errorf("%s: notice %q missing from %q", tt.name, tt.notice, buf.String())
		}
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, bytes.ErrTooLarge }

func TestWriteNoticeSVGReportsWriteError(t *testing.T) {
	if err := WriteNoticeSVG(failWriter{}, "x", 10, 10); err == nil {
		t.Errorf("WriteNoticeSVG: got nil error for failing writer")
	}
}
