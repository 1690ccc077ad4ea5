package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC)
}

func TestSaveRecordNaming(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir(), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := s.SaveRecord(context.Background(), "orders", "Ada Lovelace", map[string]string{"ok": "yes"})
	if err != nil {
		t.Fatalf("save record: %v", err)
	}
	if filepath.Base(path) != "order_20250601_143005_Ada_Lovelace.json" {
		t.Fatalf("unexpected filename: %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "orders" {
		t.Fatalf("record must live in the collection directory, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("record file missing: %v", err)
	}
}

func TestSaveRecordSanitizesSlug(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir(), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := s.SaveRecord(context.Background(), "leads", "../../etc/passwd", map[string]int{})
	if err != nil {
		t.Fatalf("save record: %v", err)
	}
	base := filepath.Base(path)
	if strings.Contains(base, "/") || strings.Contains(base, "..") {
		t.Fatalf("slug was not sanitized: %s", base)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	type doc struct {
		Phase string `json:"phase"`
		Turns int    `json:"turns"`
	}

	if _, err := s.SaveDocument(ctx, "game_state", doc{Phase: "active", Turns: 3}); err != nil {
		t.Fatalf("save document: %v", err)
	}

	var got doc
	if err := s.LoadDocument(ctx, "game_state", &got); err != nil {
		t.Fatalf("load document: %v", err)
	}
	if got.Phase != "active" || got.Turns != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Overwrite semantics: a second save replaces the whole document.
	if _, err := s.SaveDocument(ctx, "game_state", doc{Phase: "done", Turns: 9}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if err := s.LoadDocument(ctx, "game_state", &got); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Phase != "done" || got.Turns != 9 {
		t.Fatalf("overwrite mismatch: %+v", got)
	}
}

func TestLoadDocumentMissing(t *testing.T) {
	t.Parallel()

	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	var v map[string]any
	err = s.LoadDocument(context.Background(), "nope", &v)
	if !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
