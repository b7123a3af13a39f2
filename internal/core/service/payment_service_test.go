package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubPaymentRepo struct {
	payments  []*domain.Payment
	nextID    int
	insertErr error
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{}
}

func (r *stubPaymentRepo) Insert(_ context.Context, p *domain.Payment) (string, error) {
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("payment_%d", r.nextID)
	r.payments = append(r.payments, &clone)
	return clone.ID, nil
}

func (r *stubPaymentRepo) ExistsForContest(_ context.Context, email, contestID string) (bool, error) {
	for _, p := range r.payments {
		if p.Email == email && p.ContestID == contestID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPaymentRepo) ListByEmail(_ context.Context, email string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.Email == email {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) TotalRevenue(_ context.Context) (float64, error) {
	var total float64
	for _, p := range r.payments {
		total += p.Amount
	}
	return total, nil
}

type stubIntentClient struct {
	lastAmount   int64
	lastCurrency string
	err          error
}

func (c *stubIntentClient) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	c.lastAmount = amount
	c.lastCurrency = currency
	if c.err != nil {
		return "", c.err
	}
	return fmt.Sprintf("pi_secret_%d", amount), nil
}

type stubReplayChecker struct {
	seen map[string]bool
	err  error
}

func newStubReplayChecker() *stubReplayChecker {
	return &stubReplayChecker{seen: make(map[string]bool)}
}

func (r *stubReplayChecker) IsReplay(_ context.Context, transactionID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.seen[transactionID], nil
}

func (r *stubReplayChecker) Mark(_ context.Context, transactionID string) error {
	r.seen[transactionID] = true
	return nil
}

func newPaymentFixture() (*stubPaymentRepo, *stubContestRepo, *stubIntentClient, *stubReplayChecker, *PaymentService) {
	payments := newStubPaymentRepo()
	contests := newStubContestRepo()
	intents := &stubIntentClient{}
	replay := newStubReplayChecker()
	svc := NewPaymentService(payments, contests, intents, replay, discardLogger)
	return payments, contests, intents, replay, svc
}

// ---------------------------------------------------------------------------
// CreateIntent tests
// ---------------------------------------------------------------------------

func TestPaymentService_CreateIntent_RejectsNonPositive(t *testing.T) {
	_, _, _, _, svc := newPaymentFixture()

	for _, price := range []float64{0, -5, 0.001} {
		if _, err := svc.CreateIntent(context.Background(), price); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("price %v: expected ErrInvalidAmount, got %v", price, err)
		}
	}
}

func TestPaymentService_CreateIntent_ConvertsToMinorUnits(t *testing.T) {
	_, _, intents, _, svc := newPaymentFixture()

	secret, err := svc.CreateIntent(context.Background(), 12.34)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intents.lastAmount != 1234 {
		t.Errorf("expected 1234 minor units, got %d", intents.lastAmount)
	}
	if secret == "" {
		t.Error("expected a client secret")
	}
}

func TestPaymentService_CreateIntent_ProviderFailure(t *testing.T) {
	_, _, intents, _, svc := newPaymentFixture()
	intents.err = errors.New("upstream 503")

	_, err := svc.CreateIntent(context.Background(), 10)
	if !errors.Is(err, domain.ErrPaymentProvider) {
		t.Fatalf("expected ErrPaymentProvider, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Record tests
// ---------------------------------------------------------------------------

func TestPaymentService_Record_InsertsAndIncrements(t *testing.T) {
	payments, contests, _, _, svc := newPaymentFixture()
	contestID := contests.seed("creator@example.com", domain.StatusAccepted, 0)

	result, err := svc.Record(context.Background(), ports.RecordPaymentInput{
		Email:         "payer@example.com",
		ContestID:     contestID,
		Amount:        25,
		TransactionID: "txn_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PaymentID == "" {
		t.Error("expected a payment id")
	}
	if !result.ContestIncremented {
		t.Error("expected the counter to be incremented")
	}
	if got := contests.byID[contestID].ParticipationCount; got != 1 {
		t.Errorf("expected participation 1, got %d", got)
	}
	if len(payments.payments) != 1 {
		t.Errorf("expected 1 payment record, got %d", len(payments.payments))
	}
}

func TestPaymentService_Record_ReplaySkipsBothWrites(t *testing.T) {
	payments, contests, _, _, svc := newPaymentFixture()
	contestID := contests.seed("creator@example.com", domain.StatusAccepted, 0)

	in := ports.RecordPaymentInput{
		Email:         "payer@example.com",
		ContestID:     contestID,
		Amount:        25,
		TransactionID: "txn_replay",
	}
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	result, err := svc.Record(context.Background(), in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !result.Replayed {
		t.Error("expected Replayed=true")
	}
	if got := contests.byID[contestID].ParticipationCount; got != 1 {
		t.Errorf("replay must not double-increment: got %d", got)
	}
	if len(payments.payments) != 1 {
		t.Errorf("replay must not double-insert: got %d records", len(payments.payments))
	}
}

func TestPaymentService_Record_ReplayCheckFailureRecordsAnyway(t *testing.T) {
	payments, contests, _, replay, svc := newPaymentFixture()
	contestID := contests.seed("creator@example.com", domain.StatusAccepted, 0)
	replay.err = errors.New("redis down")

	result, err := svc.Record(context.Background(), ports.RecordPaymentInput{
		Email:         "payer@example.com",
		ContestID:     contestID,
		Amount:        25,
		TransactionID: "txn_2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Replayed {
		t.Error("replay flag must be false when the check is unavailable")
	}
	if len(payments.payments) != 1 {
		t.Errorf("payment must still be recorded, got %d", len(payments.payments))
	}
}

func TestPaymentService_Record_IncrementFailureStillReportsPayment(t *testing.T) {
	_, _, _, _, svc := newPaymentFixture()

	// Unknown contest id: insert succeeds, increment fails.
	result, err := svc.Record(context.Background(), ports.RecordPaymentInput{
		Email:         "payer@example.com",
		ContestID:     "missing",
		Amount:        25,
		TransactionID: "txn_3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PaymentID == "" {
		t.Error("payment must be recorded even when the increment fails")
	}
	if result.ContestIncremented {
		t.Error("increment must be reported as failed")
	}
}

// ---------------------------------------------------------------------------
// ParticipatedContests tests
// ---------------------------------------------------------------------------

func TestPaymentService_ParticipatedContests_DeduplicatesIDs(t *testing.T) {
	payments, contests, _, _, svc := newPaymentFixture()
	contestID := contests.seed("creator@example.com", domain.StatusAccepted, 0)

	for i := 0; i < 2; i++ {
		_, _ = payments.Insert(context.Background(), &domain.Payment{
			Email:     "payer@example.com",
			ContestID: contestID,
			Amount:    10,
		})
	}

	out, err := svc.ParticipatedContests(context.Background(), "payer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("expected 1 contest despite 2 payments, got %d", len(out))
	}
}

func TestPaymentService_ParticipatedContests_EmptyWithoutPayments(t *testing.T) {
	_, _, _, _, svc := newPaymentFixture()

	out, err := svc.ParticipatedContests(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d", len(out))
	}
}
