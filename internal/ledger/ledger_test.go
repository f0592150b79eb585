package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "does-not-exist.log"), zerolog.Nop())
	l.Load()
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d entries", l.Len())
	}
}

func TestMarkIsIdempotent(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "alerts.log"), zerolog.Nop())
	l.Mark("price-AAPL-2025-03-04-10")
	l.Mark("price-AAPL-2025-03-04-10")
	if l.Len() != 1 {
		t.Fatalf("expected 1 entry after duplicate mark, got %d", l.Len())
	}
	if !l.Has("price-AAPL-2025-03-04-10") {
		t.Fatal("marked identity should be present")
	}
	if l.Has("price-AAPL-2025-03-04-11") {
		t.Fatal("unmarked identity should be absent")
	}
}

func TestRoundTripPreservesSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.log")

	first := New(path, zerolog.Nop())
	// Insertion order deliberately unsorted.
	keys := []string{"price-TSLA-2025-03-04-14", "file-1067983-0001067983-25-000012", "summary-2025-03-03"}
	for _, key := range keys {
		first.Mark(key)
	}
	if err := first.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := New(path, zerolog.Nop())
	second.Load()
	if second.Len() != len(keys) {
		t.Fatalf("reloaded %d entries, want %d", second.Len(), len(keys))
	}
	for _, key := range keys {
		if !second.Has(key) {
			t.Errorf("identity %q lost in round trip", key)
		}
	}
}

func TestSaveWritesSortedAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.log")
	if err := os.WriteFile(path, []byte("stale-entry\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	l := New(path, zerolog.Nop())
	l.Mark("b-key")
	l.Mark("a-key")
	if err := l.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != "a-key\nb-key\n" {
		t.Fatalf("store contents = %q, want sorted full rewrite", string(raw))
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.log")
	if err := os.WriteFile(path, []byte("one\n\n  \ntwo\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	l := New(path, zerolog.Nop())
	l.Load()
	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}
}
