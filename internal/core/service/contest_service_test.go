package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubContestRepo struct {
	byID   map[string]*domain.Contest
	nextID int
}

func newStubContestRepo() *stubContestRepo {
	return &stubContestRepo{byID: make(map[string]*domain.Contest)}
}

func (r *stubContestRepo) Create(_ context.Context, c *domain.Contest) (string, error) {
	r.nextID++
	id := fmt.Sprintf("contest_%d", r.nextID)
	clone := *c
	clone.ID = id
	r.byID[id] = &clone
	return id, nil
}

func (r *stubContestRepo) FindByID(_ context.Context, id string) (*domain.Contest, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrContestNotFound
	}
	clone := *c
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubContestRepo) List(_ context.Context, f ports.ListContestsFilter) ([]*domain.Contest, int64, error) {
	var matched []*domain.Contest
	for _, c := range r.byID {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	total := int64(len(matched))

	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Contest{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubContestRepo) ListByCreator(_ context.Context, creatorEmail string) ([]*domain.Contest, error) {
	var out []*domain.Contest
	for _, c := range r.byID {
		if c.CreatorEmail == creatorEmail {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubContestRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Contest, error) {
	var out []*domain.Contest
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubContestRepo) UpdateFields(_ context.Context, id string, patch ports.ContestPatch) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrContestNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	return nil
}

func (r *stubContestRepo) SetStatus(_ context.Context, id string, status domain.ContestStatus) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrContestNotFound
	}
	c.Status = status
	return nil
}

func (r *stubContestRepo) SetWinner(_ context.Context, id string, w *domain.Winner) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrContestNotFound
	}
	c.Status = domain.StatusCompleted
	c.Winner = w
	return nil
}

func (r *stubContestRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrContestNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubContestRepo) IncrementParticipation(_ context.Context, id string) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrContestNotFound
	}
	c.ParticipationCount++
	return nil
}

func (r *stubContestRepo) Popular(_ context.Context, limit int) ([]*domain.Contest, error) {
	var accepted []*domain.Contest
	for _, c := range r.byID {
		if c.Status == domain.StatusAccepted {
			clone := *c
			accepted = append(accepted, &clone)
		}
	}
	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].ParticipationCount > accepted[j].ParticipationCount
	})
	if len(accepted) > limit {
		accepted = accepted[:limit]
	}
	return accepted, nil
}

func (r *stubContestRepo) CreatorLeaders(_ context.Context, limit int) ([]ports.CreatorAggregate, error) {
	sums := make(map[string]*ports.CreatorAggregate)
	for _, c := range r.byID {
		if c.Status != domain.StatusAccepted {
			continue
		}
		agg, ok := sums[c.CreatorEmail]
		if !ok {
			agg = &ports.CreatorAggregate{CreatorEmail: c.CreatorEmail}
			sums[c.CreatorEmail] = agg
		}
		agg.ContestCount++
		agg.TotalParticipation += c.ParticipationCount
	}
	var rows []ports.CreatorAggregate
	for _, agg := range sums {
		rows = append(rows, *agg)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TotalParticipation > rows[j].TotalParticipation
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *stubContestRepo) Winners(_ context.Context) ([]*domain.Contest, error) {
	var out []*domain.Contest
	for _, c := range r.byID {
		if c.Status == domain.StatusCompleted && c.Winner != nil {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubContestRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubContestRepo) TotalParticipation(_ context.Context) (int64, error) {
	var total int64
	for _, c := range r.byID {
		total += c.ParticipationCount
	}
	return total, nil
}

func (r *stubContestRepo) seed(creator string, status domain.ContestStatus, participation int64) string {
	id, _ := r.Create(context.Background(), &domain.Contest{
		Name:               "Seeded Contest",
		Type:               "article_writing",
		Status:             status,
		ParticipationCount: 0,
		CreatorEmail:       creator,
		CreatedAt:          time.Now().UTC(),
	})
	r.byID[id].ParticipationCount = participation
	return id
}

type stubSubmissionRepo struct {
	byPair map[string]*domain.Submission // key: contestID + "|" + email
	nextID int
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{byPair: make(map[string]*domain.Submission)}
}

func (r *stubSubmissionRepo) Insert(_ context.Context, s *domain.Submission) (string, error) {
	key := s.ContestID + "|" + s.Email
	if _, ok := r.byPair[key]; ok {
		return "", domain.ErrDuplicateSubmission
	}
	r.nextID++
	clone := *s
	clone.ID = fmt.Sprintf("submission_%d", r.nextID)
	r.byPair[key] = &clone
	return clone.ID, nil
}

func (r *stubSubmissionRepo) ListByContest(_ context.Context, contestID string) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, s := range r.byPair {
		if s.ContestID == contestID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSubmissionRepo) ExistsForContest(_ context.Context, email, contestID string) (bool, error) {
	_, ok := r.byPair[contestID+"|"+email]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestContestService_Create_ForcesInitialState(t *testing.T) {
	repo := newStubContestRepo()
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	id, err := svc.Create(context.Background(), ports.CreateContestInput{
		CreatorEmail: "creator@example.com",
		Name:         "Logo Design Sprint",
		Type:         "design",
		Description:  "Design a logo",
		Fee:          10,
		Deadline:     time.Now().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byID[id]
	if stored.Status != domain.StatusPending {
		t.Errorf("new contest must be pending, got %q", stored.Status)
	}
	if stored.ParticipationCount != 0 {
		t.Errorf("new contest must start at 0 participation, got %d", stored.ParticipationCount)
	}
	if stored.CreatorEmail != "creator@example.com" {
		t.Errorf("creator email not set: %q", stored.CreatorEmail)
	}
	if stored.CreatedAt.IsZero() {
		t.Error("created_at must be set server-side")
	}
}

// ---------------------------------------------------------------------------
// Listing tests
// ---------------------------------------------------------------------------

func TestContestService_ListPublic_AcceptedOnly(t *testing.T) {
	repo := newStubContestRepo()
	repo.seed("a@example.com", domain.StatusPending, 0)
	repo.seed("a@example.com", domain.StatusAccepted, 3)
	repo.seed("b@example.com", domain.StatusRejected, 0)
	repo.seed("b@example.com", domain.StatusCompleted, 9)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	result, err := svc.ListPublic(context.Background(), ports.ListContestsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected 1 accepted contest, got %d", result.Total)
	}
	for _, c := range result.Items {
		if c.Status != domain.StatusAccepted {
			t.Errorf("public listing leaked status %q", c.Status)
		}
	}
}

func TestContestService_ListPublic_DefaultsPagination(t *testing.T) {
	repo := newStubContestRepo()
	for i := 0; i < 15; i++ {
		repo.seed("a@example.com", domain.StatusAccepted, int64(i))
	}
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	result, err := svc.ListPublic(context.Background(), ports.ListContestsInput{Page: -3, Limit: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Page != 1 || result.Limit != 10 {
		t.Errorf("expected defaults page=1 limit=10, got page=%d limit=%d", result.Page, result.Limit)
	}
	if len(result.Items) != 10 {
		t.Errorf("expected 10 items on default page, got %d", len(result.Items))
	}
	if result.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", result.TotalPages)
	}
}

// ---------------------------------------------------------------------------
// Status tests
// ---------------------------------------------------------------------------

func TestContestService_SetStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("a@example.com", domain.StatusPending, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	err := svc.SetStatus(context.Background(), id, "archived")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.byID[id].Status != domain.StatusPending {
		t.Error("status must not change on invalid input")
	}
}

func TestContestService_SetStatus_UnknownID(t *testing.T) {
	svc := NewContestService(newStubContestRepo(), newStubSubmissionRepo(), discardLogger)

	err := svc.SetStatus(context.Background(), "missing", "accepted")
	if !errors.Is(err, domain.ErrContestNotFound) {
		t.Fatalf("expected ErrContestNotFound, got %v", err)
	}
}

func TestContestService_SetStatus_Accepts(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("a@example.com", domain.StatusPending, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	if err := svc.SetStatus(context.Background(), id, "accepted"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.byID[id].Status != domain.StatusAccepted {
		t.Errorf("expected accepted, got %q", repo.byID[id].Status)
	}
}

func TestContestService_SetStatus_CompletedIsTerminal(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("a@example.com", domain.StatusCompleted, 3)
	winner := &domain.Winner{Email: "w@example.com", Name: "Winnie"}
	repo.byID[id].Winner = winner
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	err := svc.SetStatus(context.Background(), id, "accepted")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.byID[id].Status != domain.StatusCompleted {
		t.Errorf("completed contest must stay completed, got %q", repo.byID[id].Status)
	}
	if repo.byID[id].Winner != winner {
		t.Error("winner record must remain intact")
	}
}

func TestContestService_SetStatus_RejectedIsTerminal(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("a@example.com", domain.StatusRejected, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	err := svc.SetStatus(context.Background(), id, "accepted")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.byID[id].Status != domain.StatusRejected {
		t.Errorf("rejected contest must stay rejected, got %q", repo.byID[id].Status)
	}
}

// ---------------------------------------------------------------------------
// Edit / delete gating
// ---------------------------------------------------------------------------

func TestContestService_Edit_WrongOwnerAndWrongStatusShareOneError(t *testing.T) {
	repo := newStubContestRepo()
	pendingID := repo.seed("owner@example.com", domain.StatusPending, 0)
	acceptedID := repo.seed("owner@example.com", domain.StatusAccepted, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	name := "New Name"
	patch := ports.ContestPatch{Name: &name}

	wrongOwner := svc.Edit(context.Background(), pendingID, "intruder@example.com", patch)
	wrongStatus := svc.Edit(context.Background(), acceptedID, "owner@example.com", patch)

	if !errors.Is(wrongOwner, domain.ErrForbidden) {
		t.Fatalf("wrong owner: expected ErrForbidden, got %v", wrongOwner)
	}
	if !errors.Is(wrongStatus, domain.ErrForbidden) {
		t.Fatalf("wrong status: expected ErrForbidden, got %v", wrongStatus)
	}
	// The two causes must be indistinguishable to the caller.
	if wrongOwner.Error() != wrongStatus.Error() {
		t.Errorf("causes must not be distinguishable: %q vs %q", wrongOwner, wrongStatus)
	}
}

func TestContestService_Edit_OwnPending(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("owner@example.com", domain.StatusPending, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	name := "Renamed"
	if err := svc.Edit(context.Background(), id, "owner@example.com", ports.ContestPatch{Name: &name}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.byID[id].Name != "Renamed" {
		t.Errorf("patch not applied: %q", repo.byID[id].Name)
	}
}

func TestContestService_DeleteOwn_GatedLikeEdit(t *testing.T) {
	repo := newStubContestRepo()
	acceptedID := repo.seed("owner@example.com", domain.StatusAccepted, 0)
	pendingID := repo.seed("owner@example.com", domain.StatusPending, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	if err := svc.DeleteOwn(context.Background(), acceptedID, "owner@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("accepted contest delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteOwn(context.Background(), pendingID, "owner@example.com"); err != nil {
		t.Fatalf("pending contest delete failed: %v", err)
	}
	if _, ok := repo.byID[pendingID]; ok {
		t.Error("pending contest not deleted")
	}
}

func TestContestService_DeleteAny_AnyStatus(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("owner@example.com", domain.StatusCompleted, 5)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	if err := svc.DeleteAny(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID[id]; ok {
		t.Error("contest not deleted")
	}
}

// ---------------------------------------------------------------------------
// Winner declaration
// ---------------------------------------------------------------------------

func TestContestService_DeclareWinner_Flow(t *testing.T) {
	repo := newStubContestRepo()
	subs := newStubSubmissionRepo()
	id := repo.seed("owner@example.com", domain.StatusAccepted, 2)
	_, _ = subs.Insert(context.Background(), &domain.Submission{ContestID: id, Email: "winner@example.com"})
	svc := NewContestService(repo, subs, discardLogger)

	err := svc.DeclareWinner(context.Background(), ports.DeclareWinnerInput{
		ContestID:    id,
		CreatorEmail: "owner@example.com",
		WinnerEmail:  "winner@example.com",
		WinnerName:   "Winner",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byID[id]
	if stored.Status != domain.StatusCompleted {
		t.Errorf("expected completed, got %q", stored.Status)
	}
	if stored.Winner == nil || stored.Winner.Email != "winner@example.com" {
		t.Errorf("winner record missing or wrong: %+v", stored.Winner)
	}
	if stored.Winner.DeclaredAt.IsZero() {
		t.Error("declared_at must be set")
	}
}

func TestContestService_DeclareWinner_NotOwner(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("owner@example.com", domain.StatusAccepted, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	err := svc.DeclareWinner(context.Background(), ports.DeclareWinnerInput{
		ContestID:    id,
		CreatorEmail: "intruder@example.com",
		WinnerEmail:  "winner@example.com",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestContestService_DeclareWinner_RequiresAcceptedStatus(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("owner@example.com", domain.StatusPending, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	err := svc.DeclareWinner(context.Background(), ports.DeclareWinnerInput{
		ContestID:    id,
		CreatorEmail: "owner@example.com",
		WinnerEmail:  "winner@example.com",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestContestService_DeclareWinner_WithoutSubmissionSucceeds(t *testing.T) {
	repo := newStubContestRepo()
	id := repo.seed("owner@example.com", domain.StatusAccepted, 0)
	svc := NewContestService(repo, newStubSubmissionRepo(), discardLogger)

	// A winner who never submitted is accepted with a warning, not an error.
	err := svc.DeclareWinner(context.Background(), ports.DeclareWinnerInput{
		ContestID:    id,
		CreatorEmail: "owner@example.com",
		WinnerEmail:  "ghost@example.com",
		WinnerName:   "Ghost",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.byID[id].Winner == nil {
		t.Error("winner record not written")
	}
}

func TestContestService_DeclareWinner_UnknownContest(t *testing.T) {
	svc := NewContestService(newStubContestRepo(), newStubSubmissionRepo(), discardLogger)

	err := svc.DeclareWinner(context.Background(), ports.DeclareWinnerInput{
		ContestID:    "missing",
		CreatorEmail: "owner@example.com",
	})
	if !errors.Is(err, domain.ErrContestNotFound) {
		t.Fatalf("expected ErrContestNotFound, got %v", err)
	}
}
