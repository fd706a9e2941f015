package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v, want nil, nil", lines, err)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"warn","ts":"2026-01-02T15:04:05.123Z","logger":"state.movies","caller":"state/movies.go:80","msg":"fetch trending failed","error":"boom","count":3}`
	entry := Parse(line)

	want := time.Date(2026, 1, 2, 15, 4, 5, 123000000, time.UTC)
	if !entry.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", entry.Time, want)
	}
	if entry.Level != "WARN" || entry.Logger != "state.movies" || entry.Message != "fetch trending failed" {
		t.Fatalf("entry = %#v", entry)
	}
	if !reflect.DeepEqual(entry.FieldKeys(), []string{"count", "error"}) {
		t.Fatalf("FieldKeys = %v, want [count error]", entry.FieldKeys())
	}
	if entry.Fields["count"] != "3" || entry.Fields["error"] != "boom" {
		t.Fatalf("Fields = %v", entry.Fields)
	}
	if !entry.Structured() {
		t.Fatalf("Structured = false, want true")
	}
}

func TestParse_FallsBackToRaw(t *testing.T) {
	for _, line := range []string{"plain text", "{broken", ""} {
		entry := Parse(line)
		if entry.Raw != line || entry.Structured() || !entry.Time.IsZero() {
			t.Fatalf("Parse(%q) = %#v, want raw only", line, entry)
		}
	}
}

func TestParse_EpochTimestamp(t *testing.T) {
	entry := Parse(`{"level":"info","ts":1700000000.5,"msg":"hi"}`)
	if entry.Time.Unix() != 1700000000 {
		t.Fatalf("Time = %v, want unix 1700000000", entry.Time)
	}
}

func TestReadEntries_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinedeck.log")
	data := `{"level":"info","msg":"one"}` + "\n\n" + `{"level":"error","msg":"two"}` + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	entries, err := ReadEntries(path, 10)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if len(entries) != 2 || entries[1].Message != "two" || entries[1].Level != "ERROR" {
		t.Fatalf("entries = %#v", entries)
	}
}
