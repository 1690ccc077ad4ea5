package fraud

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/voicelab-go/agentkit/agent/contract"
	storex "github.com/voicelab-go/agentkit/agent/store"
)

func seedCases() []Case {
	return []Case{
		{
			SecurityID:       "SEC-1001",
			CustomerName:     "John Smith",
			SecurityQuestion: "What was the name of your first pet?",
			SecurityAnswer:   "Biscuit",
			Transaction: Transaction{
				ID:       "TXN-88",
				Amount:   "842.19",
				Merchant: "Luxe Electronics",
				Date:     "2025-05-30",
			},
			Status: StatusPending,
		},
		{
			SecurityID:       "SEC-1002",
			CustomerName:     "Maria Garcia",
			SecurityQuestion: "In what city were you born?",
			SecurityAnswer:   "Valencia",
			Status:           StatusPending,
		},
	}
}

func newTestDB(t *testing.T) *Database {
	t.Helper()

	rec, err := storex.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	db, err := OpenDatabase(context.Background(), rec, "fraud_cases", seedCases())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return db
}

func TestLookupByNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	c1, err := db.LookupByName("John Smith")
	if err != nil {
		t.Fatalf("exact lookup: %v", err)
	}
	c2, err := db.LookupByName("john smith")
	if err != nil {
		t.Fatalf("lowercase lookup: %v", err)
	}
	if c1.SecurityID != c2.SecurityID {
		t.Fatal("case-insensitive lookup must hit the same case")
	}

	if _, err := db.LookupByName("Jon Smith"); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected not found for near-miss name, got %v", err)
	}
}

func TestDatabaseSeedPersistsAndReloads(t *testing.T) {
	t.Parallel()

	rec, err := storex.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := OpenDatabase(ctx, rec, "fraud_cases", seedCases()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Second open must read the persisted document, not the seed.
	db, err := OpenDatabase(ctx, rec, "fraud_cases", nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if db.Len() != 2 {
		t.Fatalf("expected 2 cases after reload, got %d", db.Len())
	}
}

func TestVerifyAnswerSuccess(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	s, err := NewSession(db, "john smith")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	ok, err := s.VerifyAnswer(context.Background(), "  biscuit ")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok || s.Phase() != PhaseVerified {
		t.Fatalf("expected verified, got ok=%v phase=%s", ok, s.Phase())
	}
}

func TestVerifyAnswerExhaustsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	s, err := NewSession(db, "John Smith")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	ctx := context.Background()

	ok, err := s.VerifyAnswer(ctx, "Rex")
	if err != nil || ok {
		t.Fatalf("first wrong answer: ok=%v err=%v", ok, err)
	}
	if s.Phase() != PhaseUnverified || s.Attempts() != 1 {
		t.Fatalf("one attempt left: phase=%s attempts=%d", s.Phase(), s.Attempts())
	}

	ok, err = s.VerifyAnswer(ctx, "Fido")
	if err != nil || ok {
		t.Fatalf("second wrong answer: ok=%v err=%v", ok, err)
	}
	if s.Phase() != PhaseFailed {
		t.Fatalf("expected terminal failed phase, got %s", s.Phase())
	}
	if got, _ := db.LookupByName("John Smith"); got.Status != StatusVerificationFailed {
		t.Fatalf("case status not persisted: %s", got.Status)
	}

	// A correct answer after the limit is rejected, not accepted.
	_, err = s.VerifyAnswer(ctx, "Biscuit")
	if !errors.Is(err, contractx.ErrInvalidState) {
		t.Fatalf("expected invalid state past the limit, got %v", err)
	}
}

func TestResolveRequiresVerification(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	s, err := NewSession(db, "Maria Garcia")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	ctx := context.Background()

	if err := s.Resolve(ctx, true); !errors.Is(err, contractx.ErrInvalidState) {
		t.Fatalf("unverified resolve must fail, got %v", err)
	}

	if _, err := s.VerifyAnswer(ctx, "Valencia"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := s.Resolve(ctx, false); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Phase() != PhaseResolvedSafe {
		t.Fatalf("expected resolved_safe, got %s", s.Phase())
	}
	if got, _ := db.LookupByName("Maria Garcia"); got.Status != StatusConfirmedSafe {
		t.Fatalf("status not persisted: %s", got.Status)
	}
}

func TestNewSessionUnknownCustomer(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	if _, err := NewSession(db, "Nobody Here"); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
