package checkin

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

func newJournal(t *testing.T) *Journal {
	t.Helper()

	rec, err := storex.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	j, err := NewJournal(rec, "sam")
	if err != nil {
		t.Fatalf("new journal: %v", err)
	}
	return j
}

func TestRecord(t *testing.T) {
	t.Parallel()

	j := newJournal(t)
	got, err := j.Record(context.Background(), CheckIn{
		Mood:       "steady",
		Energy:     7,
		Highlights: "finished the garden bed",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("check-in must be timestamped")
	}
}

func TestRecordValidation(t *testing.T) {
	t.Parallel()

	j := newJournal(t)
	ctx := context.Background()

	if _, err := j.Record(ctx, CheckIn{Energy: 5}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing mood must fail, got %v", err)
	}
	if _, err := j.Record(ctx, CheckIn{Mood: "fine", Energy: 0}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("energy 0 must fail, got %v", err)
	}
	if _, err := j.Record(ctx, CheckIn{Mood: "fine", Energy: 11}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("energy 11 must fail, got %v", err)
	}
}
