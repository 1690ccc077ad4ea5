package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/voicelab-go/agentkit/agent/contract"
)

// Recorder is the persistence contract used by the agent cores.
//
// SaveRecord appends a new timestamped file to a collection (orders, leads,
// checkins). SaveDocument overwrites a single-object store in place (game
// state, fraud case database). Neither offers locking: two sessions writing
// the same document race and the last writer wins.
type Recorder interface {
	SaveRecord(ctx context.Context, collection, slug string, v any) (string, error)
	SaveDocument(ctx context.Context, name string, v any) (string, error)
	LoadDocument(ctx context.Context, name string, v any) error
}

const (
	recordStampLayout = "20060102_150405"
	filePerm          = 0o644
	dirPerm           = 0o755
)

// Option customizes a FileStore.
type Option func(*FileStore)

// WithClock overrides the timestamp source used in record filenames.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// FileStore writes indented JSON files under a base directory.
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store directory is required")
	}

	s := &FileStore{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// SaveRecord writes v as a new file named
// <singular>_<YYYYMMDD_HHMMSS>_<slug>.json inside <dir>/<collection>/.
// The prefix drops the collection's trailing "s", so the orders collection
// yields order_20250101_120000_Ada.json.
func (s *FileStore) SaveRecord(ctx context.Context, collection, slug string, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return "", fmt.Errorf("%w: collection name is empty", contractx.ErrPersistence)
	}

	name := fmt.Sprintf("%s_%s_%s.json",
		strings.TrimSuffix(collection, "s"),
		s.now().Format(recordStampLayout),
		sanitizeSlug(slug),
	)
	path := filepath.Join(s.dir, collection, name)

	if err := s.writeJSON(path, v); err != nil {
		return "", err
	}

	log.Debug().Str("collection", collection).Str("path", path).Msg("record saved")
	return path, nil
}

// SaveDocument overwrites <dir>/<name>.json with v.
func (s *FileStore) SaveDocument(ctx context.Context, name string, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: document name is empty", contractx.ErrPersistence)
	}

	path := filepath.Join(s.dir, sanitizeSlug(name)+".json")
	if err := s.writeJSON(path, v); err != nil {
		return "", err
	}

	log.Debug().Str("document", name).Str("path", path).Msg("document saved")
	return path, nil
}

// LoadDocument reads <dir>/<name>.json into v. A missing document reports
// ErrNotFound so callers can seed a fresh one.
func (s *FileStore) LoadDocument(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, sanitizeSlug(strings.TrimSpace(name))+".json")

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: document %s", contractx.ErrNotFound, name)
		}
		return fmt.Errorf("%w: read %s: %v", contractx.ErrPersistence, path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", contractx.ErrPersistence, path, err)
	}
	return nil
}

func (s *FileStore) writeJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", contractx.ErrPersistence, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("%w: mkdir for %s: %v", contractx.ErrPersistence, path, err)
	}
	if err := os.WriteFile(path, payload, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %v", contractx.ErrPersistence, path, err)
	}
	return nil
}

// sanitizeSlug keeps filenames portable: spaces become underscores and path
// separators are dropped.
func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "record"
	}
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '/' || r == '\\' || r == '.' || r == ':':
			// skip
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "record"
	}
	return b.String()
}
