package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndRecent(t *testing.T) {
	s := NewStoreWithPath(filepath.Join(t.TempDir(), "history.jsonl"))

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		snap := Snapshot{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Folders:   2,
			Overdue:   i,
		}
		if err := s.Append(snap); err != nil {
			t.Fatal(err)
		}
	}

	recent := s.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("recent = %d, want 3", len(recent))
	}
	// Most recent entries come last.
	if recent[2].Overdue != 4 || recent[0].Overdue != 2 {
		t.Errorf("unexpected window: %+v", recent)
	}

	all := s.Recent(100)
	if len(all) != 5 {
		t.Errorf("all = %d, want 5", len(all))
	}
}

func TestRecentMissingFile(t *testing.T) {
	s := NewStoreWithPath(filepath.Join(t.TempDir(), "none.jsonl"))
	if got := s.Recent(10); len(got) != 0 {
		t.Errorf("got %d snapshots from missing file", len(got))
	}
}

func TestAppendSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"ts":"2024-06-01T08:00:00Z","overdue":1}
not json at all
{"ts":"2024-06-01T09:00:00Z","overdue":2}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStoreWithPath(path)
	if err := s.Append(Snapshot{Timestamp: time.Now(), Overdue: 3}); err != nil {
		t.Fatal(err)
	}

	recent := s.Recent(10)
	if len(recent) != 3 {
		t.Fatalf("recent = %d, want 3 (malformed line dropped)", len(recent))
	}
	if recent[0].Overdue != 1 || recent[2].Overdue != 3 {
		t.Errorf("unexpected order: %+v", recent)
	}
}

func TestAppendPrunes(t *testing.T) {
	s := NewStoreWithPath(filepath.Join(t.TempDir(), "history.jsonl"))
	for i := 0; i < maxRecords+10; i++ {
		if err := s.Append(Snapshot{Folders: i}); err != nil {
			t.Fatal(err)
		}
	}
	all := s.Recent(maxRecords + 100)
	if len(all) != maxRecords {
		t.Fatalf("records = %d, want %d", len(all), maxRecords)
	}
	if all[len(all)-1].Folders != maxRecords+9 {
		t.Errorf("newest record = %+v", all[len(all)-1])
	}
}
