package update

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/project"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/update"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/domain/user"
)

// fakeUpdateRepository keeps updates in memory and enforces the same
// one-shot review rule as the SQL implementation.
type fakeUpdateRepository struct {
	updates map[string]update.DailyUpdate
	nextID  int
}

func newFakeUpdateRepository() *fakeUpdateRepository {
	return &fakeUpdateRepository{updates: make(map[string]update.DailyUpdate)}
}

func (f *fakeUpdateRepository) Create(ctx context.Context, u update.DailyUpdate) (update.DailyUpdate, error) {
	f.nextID++
	u.ID = string(rune('a' + f.nextID - 1))
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.updates[u.ID] = u
	return u, nil
}

func (f *fakeUpdateRepository) GetByID(ctx context.Context, id string) (update.DailyUpdate, error) {
	u, ok := f.updates[id]
	if !ok {
		return update.DailyUpdate{}, update.ErrUpdateNotFound
	}
	return u, nil
}

func (f *fakeUpdateRepository) List(ctx context.Context, filter update.ListFilter) ([]update.DailyUpdate, int64, error) {
	var out []update.DailyUpdate
	for _, u := range f.updates {
		if filter.UserID != "" && u.UserID != filter.UserID {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUpdateRepository) ListForSummary(ctx context.Context, userID string, startDate, endDate string) ([]update.DailyUpdate, error) {
	var out []update.DailyUpdate
	for _, u := range f.updates {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUpdateRepository) Review(ctx context.Context, id string, status update.ApprovalStatus, reviewerID string, feedback string) (update.DailyUpdate, error) {
	u, ok := f.updates[id]
	if !ok {
		return update.DailyUpdate{}, update.ErrUpdateNotFound
	}
	if u.ApprovalStatus != update.ApprovalPending {
		return update.DailyUpdate{}, update.ErrUpdateAlreadyReviewed
	}
	now := time.Now()
	u.ApprovalStatus = status
	u.ReviewedBy = &reviewerID
	u.ReviewFeedback = &feedback
	u.ReviewedAt = &now
	f.updates[id] = u
	return u, nil
}

// fakeUserRepository returns a canned user for any ID.
type fakeUserRepository struct{}

func (fakeUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (fakeUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id, Name: "Test User", Email: id + "@example.com", Role: user.RoleEmployee}, nil
}

func (fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (fakeUserRepository) GetByOAuth(ctx context.Context, provider, providerID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (fakeUserRepository) Update(ctx context.Context, u user.User) error { return nil }

func (fakeUserRepository) ListByManager(ctx context.Context, managerID string) ([]user.User, error) {
	return nil, nil
}

func (fakeUserRepository) List(ctx context.Context) ([]user.User, error) { return nil, nil }

// fakeEmailService records sends instead of talking to SMTP.
type fakeEmailService struct {
	updateDecisions int
}

func (f *fakeEmailService) SendUpdateDecision(to, employeeName, reviewerName, updateTitle, decision, feedback string) error {
	f.updateDecisions++
	return nil
}

func (f *fakeEmailService) SendLeaveDecision(to, employeeName, reviewerName, startDate, endDate, decision string, feedback *string) error {
	return nil
}

func newTestService(repo *fakeUpdateRepository) (*UpdateServiceImpl, *fakeEmailService) {
	emails := &fakeEmailService{}
	return &UpdateServiceImpl{
		UpdateRepository: repo,
		UserRepository:   fakeUserRepository{},
		emailService:     emails,
	}, emails
}

func contextWithClaims(t *testing.T, userID string, role string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tokenString, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
	})
	require.NoError(t, err)

	token, err := tokenAuth.Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestReview_ApproveThenSecondDecisionFails(t *testing.T) {
	repo := newFakeUpdateRepository()
	svc, emails := newTestService(repo)

	created, err := repo.Create(context.Background(), update.DailyUpdate{
		UserID:         "employee-1",
		Title:          "Landing page",
		Status:         project.StatusInProgress,
		Narrative:      "Built the hero section",
		HoursSpent:     6,
		ApprovalStatus: update.ApprovalPending,
	})
	require.NoError(t, err)

	ctx := contextWithClaims(t, "manager-1", "manager")

	reviewed, err := svc.Review(ctx, update.ReviewUpdateRequest{
		ID:       created.ID,
		Action:   "approve",
		Feedback: "Looks good",
	})
	require.NoError(t, err)
	assert.Equal(t, string(update.ApprovalApproved), reviewed.ApprovalStatus)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "manager-1", *reviewed.ReviewedBy)
	require.NotNil(t, reviewed.ReviewFeedback)
	assert.Equal(t, "Looks good", *reviewed.ReviewFeedback)
	assert.Equal(t, 1, emails.updateDecisions)

	// A second decision on the same update must fail, whichever way it
	// goes.
	_, err = svc.Review(ctx, update.ReviewUpdateRequest{
		ID:       created.ID,
		Action:   "reject",
		Feedback: "Changed my mind",
	})
	assert.ErrorIs(t, err, update.ErrUpdateAlreadyReviewed)

	_, err = svc.Review(ctx, update.ReviewUpdateRequest{
		ID:       created.ID,
		Action:   "approve",
		Feedback: "Approving again",
	})
	assert.ErrorIs(t, err, update.ErrUpdateAlreadyReviewed)
}

func TestReview_RequiresFeedback(t *testing.T) {
	svc, _ := newTestService(newFakeUpdateRepository())
	ctx := contextWithClaims(t, "manager-1", "manager")

	_, err := svc.Review(ctx, update.ReviewUpdateRequest{
		ID:     "whatever",
		Action: "reject",
	})
	assert.Error(t, err)
}

func TestReview_UnknownAction(t *testing.T) {
	repo := newFakeUpdateRepository()
	svc, _ := newTestService(repo)
	ctx := contextWithClaims(t, "manager-1", "manager")

	submitted, err := repo.Create(context.Background(), update.DailyUpdate{
		UserID:         "emp-1",
		Title:          "Checkout flow",
		ApprovalStatus: update.ApprovalPending,
	})
	require.NoError(t, err)

	_, err = svc.Review(ctx, update.ReviewUpdateRequest{
		ID:       submitted.ID,
		Action:   "escalate",
		Feedback: "not a real verb",
	})
	assert.ErrorIs(t, err, update.ErrInvalidReviewAction)

	// The update is untouched and still reviewable.
	stored, err := repo.GetByID(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, update.ApprovalPending, stored.ApprovalStatus)
}

func TestReview_UnknownUpdate(t *testing.T) {
	svc, _ := newTestService(newFakeUpdateRepository())
	ctx := contextWithClaims(t, "manager-1", "manager")

	_, err := svc.Review(ctx, update.ReviewUpdateRequest{
		ID:       "missing",
		Action:   "approve",
		Feedback: "ok",
	})
	assert.ErrorIs(t, err, update.ErrUpdateNotFound)
}

func TestSummarize_GroupsByProjectAndStatus(t *testing.T) {
	day1 := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 4, 10, 0, 0, 0, time.UTC)

	projectID := "proj-1"
	projectTitle := "Mobile app"

	updates := []update.DailyUpdate{
		{
			UserID: "employee-1", ProjectID: &projectID, ProjectTitle: &projectTitle,
			Status: project.StatusInProgress, HoursSpent: 4, CreatedAt: day1,
		},
		{
			UserID: "employee-1", ProjectID: &projectID, ProjectTitle: &projectTitle,
			Status: project.StatusCompleted, HoursSpent: 3, CreatedAt: day2,
		},
		{
			UserID: "employee-1", Title: "Internal docs",
			Status: project.StatusInProgress, HoursSpent: 2, CreatedAt: day2,
		},
	}

	got := summarize(update.SummaryRequest{UserID: "employee-1"}, updates)

	assert.Equal(t, 9.0, got.TotalHours)
	assert.Equal(t, 3, got.TotalUpdates)
	assert.Equal(t, 2, got.DaysActive)
	assert.InDelta(t, 4.5, got.AvgHoursDay, 0.0001)
	require.Len(t, got.Projects, 2)

	byTitle := make(map[string]update.ProjectSummary)
	for _, p := range got.Projects {
		byTitle[p.ProjectTitle] = p
	}

	mobile := byTitle["Mobile app"]
	assert.Equal(t, 7.0, mobile.TotalHours)
	assert.Equal(t, 2, mobile.UpdateCount)
	assert.Equal(t, 1, mobile.StatusCounts[string(project.StatusInProgress)])
	assert.Equal(t, 1, mobile.StatusCounts[string(project.StatusCompleted)])

	docs := byTitle["Internal docs"]
	assert.Equal(t, 2.0, docs.TotalHours)
	assert.Equal(t, 1, docs.UpdateCount)
	assert.Nil(t, docs.ProjectID)
}

func TestSummarize_Empty(t *testing.T) {
	got := summarize(update.SummaryRequest{UserID: "employee-1"}, nil)

	assert.Zero(t, got.TotalHours)
	assert.Zero(t, got.TotalUpdates)
	assert.Zero(t, got.DaysActive)
	assert.Zero(t, got.AvgHoursDay)
	assert.Empty(t, got.Projects)
}
