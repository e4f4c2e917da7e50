package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/internal/usecase"
	"go-talentmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJobID = "f47ac10b-58cc-4372-a567-0e02b2c3d479"

func newApplicationUsecase() (domain.ApplicationUsecase, *MockApplicationRepo, *MockJobRepo, *MockCandidateRepo, *MockResumeRepo) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candidateRepo := new(MockCandidateRepo)
	resumeRepo := new(MockResumeRepo)
	uc := usecase.NewApplicationUsecase(appRepo, jobRepo, candidateRepo, resumeRepo)
	return uc, appRepo, jobRepo, candidateRepo, resumeRepo
}

func ownedJob() *domain.Job {
	return &domain.Job{ID: testJobID, EmployerID: "emp-1", Title: "Backend Engineer", Company: "Acme"}
}

func TestShortlistCreatesApplicationWithLatestResume(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, resumeRepo := newApplicationUsecase()

	jobRepo.On("GetByIDForEmployer", mock.Anything, testJobID, "emp-1").Return(ownedJob(), nil)
	appRepo.On("GetByJobAndCandidate", mock.Anything, testJobID, "cand-1").Return(nil, nil)
	candidateRepo.On("GetByID", mock.Anything, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)
	resumeRepo.On("GetLatestByCandidateID", mock.Anything, "cand-1").Return(&domain.Resume{ID: "res-9"}, nil)
	appRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

	app, err := uc.Shortlist(context.Background(), "emp-1", "cand-1", domain.ApplicationActionRequest{
		JobID: testJobID,
		Notes: "strong Go background",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusShortlisted, app.Status)
	assert.Equal(t, "res-9", app.ResumeID)
	assert.Equal(t, "strong Go background", app.EmployerNotes)
}

func TestShortlistRequiresAResume(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, resumeRepo := newApplicationUsecase()

	jobRepo.On("GetByIDForEmployer", mock.Anything, testJobID, "emp-1").Return(ownedJob(), nil)
	appRepo.On("GetByJobAndCandidate", mock.Anything, testJobID, "cand-1").Return(nil, nil)
	candidateRepo.On("GetByID", mock.Anything, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)
	resumeRepo.On("GetLatestByCandidateID", mock.Anything, "cand-1").Return(nil, nil)

	_, err := uc.Shortlist(context.Background(), "emp-1", "cand-1", domain.ApplicationActionRequest{JobID: testJobID})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Candidate must have at least one resume to apply", appErr.Message)

	// Nothing is written when the precondition fails
	appRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestShortlistHidesForeignJobs(t *testing.T) {
	uc, appRepo, jobRepo, _, _ := newApplicationUsecase()

	jobRepo.On("GetByIDForEmployer", mock.Anything, testJobID, "emp-2").Return(nil, nil)

	_, err := uc.Shortlist(context.Background(), "emp-2", "cand-1", domain.ApplicationActionRequest{JobID: testJobID})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Job not found", appErr.Message)
	appRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestShortlistRejectsInvalidPayload(t *testing.T) {
	uc, appRepo, jobRepo, _, _ := newApplicationUsecase()

	_, err := uc.Shortlist(context.Background(), "emp-1", "cand-1", domain.ApplicationActionRequest{JobID: "not-a-uuid"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	jobRepo.AssertNotCalled(t, "GetByIDForEmployer", mock.Anything, mock.Anything, mock.Anything)
	appRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRejectRewritesExistingApplication(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, resumeRepo := newApplicationUsecase()

	score := 72
	jobRepo.On("GetByIDForEmployer", mock.Anything, testJobID, "emp-1").Return(ownedJob(), nil)
	appRepo.On("GetByJobAndCandidate", mock.Anything, testJobID, "cand-1").Return(&domain.Application{
		ID:          "app-1",
		JobID:       testJobID,
		CandidateID: "cand-1",
		ResumeID:    "res-original",
		Status:      domain.ApplicationStatusShortlisted,
		MatchScore:  &score,
	}, nil)
	appRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil).
		Run(func(args mock.Arguments) {
			a := args.Get(1).(*domain.Application)
			assert.Equal(t, "app-1", a.ID)
			assert.Equal(t, domain.ApplicationStatusRejected, a.Status)
			// The original resume linkage survives the flip
			assert.Equal(t, "res-original", a.ResumeID)
		})

	app, err := uc.Reject(context.Background(), "emp-1", "cand-1", domain.ApplicationActionRequest{JobID: testJobID})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
	require.NotNil(t, app.MatchScore)
	assert.Equal(t, 72, *app.MatchScore)

	// The existing row is reused, no resume lookup needed
	candidateRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	resumeRepo.AssertNotCalled(t, "GetLatestByCandidateID", mock.Anything, mock.Anything)
}

func TestShortlistThenRejectKeepsSingleApplication(t *testing.T) {
	jobRepo := new(MockJobRepo)
	candidateRepo := new(MockCandidateRepo)
	resumeRepo := new(MockResumeRepo)
	store := newFakeApplicationStore()
	uc := usecase.NewApplicationUsecase(store, jobRepo, candidateRepo, resumeRepo)

	jobRepo.On("GetByIDForEmployer", mock.Anything, testJobID, "emp-1").Return(ownedJob(), nil)
	candidateRepo.On("GetByID", mock.Anything, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)
	resumeRepo.On("GetLatestByCandidateID", mock.Anything, "cand-1").Return(&domain.Resume{ID: "res-1"}, nil)

	_, err := uc.Shortlist(context.Background(), "emp-1", "cand-1", domain.ApplicationActionRequest{JobID: testJobID})
	require.NoError(t, err)

	_, err = uc.Reject(context.Background(), "emp-1", "cand-1", domain.ApplicationActionRequest{JobID: testJobID})
	require.NoError(t, err)

	require.Len(t, store.rows, 1)
	for _, row := range store.rows {
		assert.Equal(t, domain.ApplicationStatusRejected, row.Status)
		assert.Equal(t, "res-1", row.ResumeID)
	}
}

// fakeApplicationStore implements real upsert semantics in memory so the
// shortlist-then-reject flow can be exercised end to end.
type fakeApplicationStore struct {
	rows map[string]*domain.Application // keyed by jobID+candidateID
	seq  int
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{rows: make(map[string]*domain.Application)}
}

func (f *fakeApplicationStore) Upsert(ctx context.Context, app *domain.Application) error {
	key := app.JobID + "|" + app.CandidateID
	if existing, ok := f.rows[key]; ok {
		existing.Status = app.Status
		existing.EmployerNotes = app.EmployerNotes
		app.ID = existing.ID
		app.ResumeID = existing.ResumeID
		app.AppliedAt = existing.AppliedAt
		return nil
	}
	f.seq++
	app.ID = "app-" + string(rune('0'+f.seq))
	stored := *app
	f.rows[key] = &stored
	return nil
}

func (f *fakeApplicationStore) GetByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*domain.Application, error) {
	if app, ok := f.rows[jobID+"|"+candidateID]; ok {
		clone := *app
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeApplicationStore) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range f.rows {
		if app.JobID == jobID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	return nil, nil
}
