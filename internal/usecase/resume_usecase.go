package usecase

import (
	"context"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"go-talentmatch-backend/pkg/logger"
	"time"
)

type resumeUsecase struct {
	resumeRepo    domain.ResumeRepository
	candidateRepo domain.CandidateRepository
	store         domain.ResumeStore
	parser        domain.ResumeParser
	profiles      domain.ProfileProvider
}

// NewResumeUsecase creates the resume ingestion usecase
func NewResumeUsecase(
	resumeRepo domain.ResumeRepository,
	candidateRepo domain.CandidateRepository,
	store domain.ResumeStore,
	parser domain.ResumeParser,
	profiles domain.ProfileProvider,
) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo:    resumeRepo,
		candidateRepo: candidateRepo,
		store:         store,
		parser:        parser,
		profiles:      profiles,
	}
}

// Upload runs the ingestion pipeline: store the file, parse it with the AI
// service, resolve the candidate profile, persist the resume. The pipeline
// stops at the first failing stage so no partial resume rows are written.
func (uc *resumeUsecase) Upload(ctx context.Context, in domain.UploadInput) (*domain.UploadResult, error) {
	// 1. Upload the validated temp file to object storage
	url, storageID, err := uc.store.Upload(ctx, in.LocalPath, in.FileName)
	if err != nil {
		return nil, apperror.Upstream("Failed to upload resume", err)
	}

	// 2. Parse via the AI service using the public storage URL
	parsed, err := uc.parser.ParseResume(ctx, url)
	if err != nil {
		return nil, apperror.Upstream("Failed to parse resume with AI service", err)
	}

	// 3. Resolve (or lazily create) the candidate profile
	candidate, err := uc.resolveCandidate(ctx, in)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// 4. Persist the resume
	now := time.Now()
	resume := &domain.Resume{
		CandidateID: candidate.ID,
		FileName:    in.FileName,
		StorageURL:  url,
		StorageID:   storageID,
		Parsed:      *parsed,
		UploadedAt:  now,
		ParsedAt:    &now,
	}
	if err := uc.resumeRepo.Create(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}

	// 5. Bump the candidate's updated_at. The resume row is already durable
	// and reachable via candidate_id, so a failure here is logged, not fatal.
	if err := uc.candidateRepo.Touch(ctx, candidate.ID); err != nil {
		logger.Log.Error("resume stored but candidate link update failed",
			"candidate_id", candidate.ID,
			"resume_id", resume.ID,
			"error", err,
		)
	}

	return &domain.UploadResult{
		ResumeID: resume.ID,
		Parsed:   resume.Parsed,
	}, nil
}

// resolveCandidate finds the caller's candidate profile or creates one. Name
// and email come from the JWT claims first, then the identity service, then
// placeholders. Existing profiles carrying placeholders are backfilled when
// better data shows up; backfill failures are logged and ignored.
func (uc *resumeUsecase) resolveCandidate(ctx context.Context, in domain.UploadInput) (*domain.Candidate, error) {
	candidate, err := uc.candidateRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	name, email := in.UserName, in.UserEmail
	if name == "" || email == "" {
		if profile, perr := uc.profiles.Fetch(ctx, in.AuthToken); perr == nil {
			if name == "" {
				name = profile.Name
			}
			if email == "" {
				email = profile.Email
			}
		} else {
			logger.Log.Warn("identity profile lookup failed, using claim data",
				"user_id", in.UserID, "error", perr)
		}
	}
	if name == "" {
		name = domain.PlaceholderName
	}
	if email == "" {
		email = domain.PlaceholderEmail
	}

	if candidate == nil {
		candidate = &domain.Candidate{
			UserID: in.UserID,
			Name:   name,
			Email:  email,
		}
		if err := uc.candidateRepo.Create(ctx, candidate); err != nil {
			return nil, err
		}
		return candidate, nil
	}

	// Backfill placeholder fields on an existing profile
	changed := false
	if candidate.Name == domain.PlaceholderName && name != domain.PlaceholderName {
		candidate.Name = name
		changed = true
	}
	if candidate.Email == domain.PlaceholderEmail && email != domain.PlaceholderEmail {
		candidate.Email = email
		changed = true
	}
	if changed {
		if err := uc.candidateRepo.Update(ctx, candidate); err != nil {
			logger.Log.Warn("candidate profile backfill failed",
				"candidate_id", candidate.ID, "error", err)
		}
	}
	return candidate, nil
}
