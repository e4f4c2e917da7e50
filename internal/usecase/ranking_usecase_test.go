package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/internal/usecase"
	"go-talentmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRankCandidatesForJob(t *testing.T) {
	jobRepo := new(MockJobRepo)
	candidateRepo := new(MockCandidateRepo)
	appRepo := new(MockApplicationRepo)
	uc := usecase.NewRankingUsecase(jobRepo, candidateRepo, appRepo)

	job := &domain.Job{
		ID:             "job-1",
		EmployerID:     "emp-1",
		Title:          "Backend Engineer",
		Company:        "Acme",
		Status:         domain.JobStatusActive,
		RequiredSkills: []string{"Go", "Postgres"},
	}
	appliedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	jobRepo.On("GetByIDForEmployer", mock.Anything, "job-1", "emp-1").Return(job, nil)
	candidateRepo.On("ListWithLatestResume", mock.Anything).Return([]domain.CandidateWithSkills{
		{CandidateID: "c-half", Name: "Half", Email: "half@x.com", ResumeID: "r1", Skills: []string{"go", "Redis"}},
		{CandidateID: "c-zero", Name: "Zero", Email: "zero@x.com", ResumeID: "r2", Skills: []string{"PHP"}},
		{CandidateID: "c-full", Name: "Full", Email: "full@x.com", ResumeID: "r3", Skills: []string{"GO", "postgres"}},
	}, nil)
	appRepo.On("GetByJobID", mock.Anything, "job-1").Return([]domain.Application{
		{ID: "app-1", JobID: "job-1", CandidateID: "c-half", Status: domain.ApplicationStatusShortlisted, AppliedAt: appliedAt},
	}, nil)

	ranking, err := uc.RankCandidatesForJob(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)

	assert.Equal(t, "job-1", ranking.Job.ID)
	assert.Equal(t, "Backend Engineer", ranking.Job.Title)

	// Zero-score candidates are dropped; remaining sorted descending
	require.Len(t, ranking.Candidates, 2)
	assert.Equal(t, "c-full", ranking.Candidates[0].CandidateID)
	assert.Equal(t, 100, ranking.Candidates[0].MatchScore)
	assert.Equal(t, "c-half", ranking.Candidates[1].CandidateID)
	assert.Equal(t, 50, ranking.Candidates[1].MatchScore)

	// Application standing annotation
	assert.Equal(t, domain.ApplicationStatusNotApplied, ranking.Candidates[0].Status)
	assert.Nil(t, ranking.Candidates[0].ApplicationID)
	assert.Equal(t, domain.ApplicationStatusShortlisted, ranking.Candidates[1].Status)
	require.NotNil(t, ranking.Candidates[1].ApplicationID)
	assert.Equal(t, "app-1", *ranking.Candidates[1].ApplicationID)
	require.NotNil(t, ranking.Candidates[1].AppliedAt)
	assert.Equal(t, appliedAt, *ranking.Candidates[1].AppliedAt)

	// Matching skills preserve the candidate's original casing
	assert.Equal(t, []string{"GO", "postgres"}, ranking.Candidates[0].MatchingSkills)
}

func TestRankCandidatesHidesForeignJobs(t *testing.T) {
	jobRepo := new(MockJobRepo)
	candidateRepo := new(MockCandidateRepo)
	appRepo := new(MockApplicationRepo)
	uc := usecase.NewRankingUsecase(jobRepo, candidateRepo, appRepo)

	// Not owned and nonexistent both come back as (nil, nil)
	jobRepo.On("GetByIDForEmployer", mock.Anything, "job-other", "emp-1").Return(nil, nil)

	_, err := uc.RankCandidatesForJob(context.Background(), "emp-1", "job-other")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	candidateRepo.AssertNotCalled(t, "ListWithLatestResume", mock.Anything)
}

func TestRankCandidatesStableOrderOnTies(t *testing.T) {
	jobRepo := new(MockJobRepo)
	candidateRepo := new(MockCandidateRepo)
	appRepo := new(MockApplicationRepo)
	uc := usecase.NewRankingUsecase(jobRepo, candidateRepo, appRepo)

	jobRepo.On("GetByIDForEmployer", mock.Anything, "job-1", "emp-1").Return(&domain.Job{
		ID: "job-1", EmployerID: "emp-1", RequiredSkills: []string{"Go"},
	}, nil)
	candidateRepo.On("ListWithLatestResume", mock.Anything).Return([]domain.CandidateWithSkills{
		{CandidateID: "older", Skills: []string{"Go"}},
		{CandidateID: "newer", Skills: []string{"Go"}},
	}, nil)
	appRepo.On("GetByJobID", mock.Anything, "job-1").Return([]domain.Application{}, nil)

	ranking, err := uc.RankCandidatesForJob(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)
	require.Len(t, ranking.Candidates, 2)
	assert.Equal(t, "older", ranking.Candidates[0].CandidateID)
	assert.Equal(t, "newer", ranking.Candidates[1].CandidateID)
}
