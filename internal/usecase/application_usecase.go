package usecase

import (
	"context"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	appRepo       domain.ApplicationRepository
	jobRepo       domain.JobRepository
	candidateRepo domain.CandidateRepository
	resumeRepo    domain.ResumeRepository
	validate      *validator.Validate
}

// NewApplicationUsecase creates the application lifecycle usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	resumeRepo domain.ResumeRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		resumeRepo:    resumeRepo,
		validate:      validator.New(),
	}
}

// Shortlist moves the candidate's application for the job into "shortlisted",
// creating the application first if the candidate never applied.
func (uc *applicationUsecase) Shortlist(ctx context.Context, employerID, candidateID string, req domain.ApplicationActionRequest) (*domain.Application, error) {
	return uc.act(ctx, employerID, candidateID, req, domain.ApplicationStatusShortlisted)
}

// Reject is the mirror transition into "rejected".
func (uc *applicationUsecase) Reject(ctx context.Context, employerID, candidateID string, req domain.ApplicationActionRequest) (*domain.Application, error) {
	return uc.act(ctx, employerID, candidateID, req, domain.ApplicationStatusRejected)
}

// act implements the shared find-or-create-in-target-state transition. Both
// directions are idempotent: repeating a call leaves one row in the target
// status, and flipping between them rewrites the same row.
func (uc *applicationUsecase) act(ctx context.Context, employerID, candidateID string, req domain.ApplicationActionRequest, status string) (*domain.Application, error) {
	// 1. Validate payload
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Invalid request: " + err.Error())
	}

	// 2. Ownership check
	job, err := uc.jobRepo.GetByIDForEmployer(ctx, req.JobID, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job == nil {
		return nil, apperror.NotFound("Job not found")
	}

	// 3. Find the existing application, if any
	existing, err := uc.appRepo.GetByJobAndCandidate(ctx, req.JobID, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	app := &domain.Application{
		JobID:         req.JobID,
		CandidateID:   candidateID,
		Status:        status,
		EmployerNotes: req.Notes,
	}

	if existing != nil {
		// Conflict path of the upsert keeps resume_id and applied_at anyway,
		// but carrying them makes the returned value complete pre-write.
		app.ID = existing.ID
		app.ResumeID = existing.ResumeID
		app.MatchScore = existing.MatchScore
	} else {
		// 4. Creating on the employer's behalf requires a resume to attach
		candidate, err := uc.candidateRepo.GetByID(ctx, candidateID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if candidate == nil {
			return nil, apperror.NotFound("Candidate not found")
		}

		resume, err := uc.resumeRepo.GetLatestByCandidateID(ctx, candidateID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if resume == nil {
			return nil, apperror.PreconditionFailed("Candidate must have at least one resume to apply")
		}
		app.ResumeID = resume.ID
	}

	// 5. Upsert resolves concurrent transitions to last-write-wins
	if err := uc.appRepo.Upsert(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *applicationUsecase) ListForEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	apps, err := uc.appRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}
