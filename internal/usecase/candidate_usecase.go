package usecase

import (
	"context"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"time"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	resumeRepo    domain.ResumeRepository
	parser        domain.ResumeParser
}

// NewCandidateUsecase creates the candidate self-service usecase
func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	resumeRepo domain.ResumeRepository,
	parser domain.ResumeParser,
) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		resumeRepo:    resumeRepo,
		parser:        parser,
	}
}

// latestResume resolves the caller's candidate profile and most recent resume.
func (uc *candidateUsecase) latestResume(ctx context.Context, userID string) (*domain.Resume, error) {
	candidate, err := uc.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("No resumes found")
	}

	resume, err := uc.resumeRepo.GetLatestByCandidateID(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if resume == nil {
		return nil, apperror.NotFound("No resumes found")
	}
	return resume, nil
}

// GetMatches forwards the latest resume's skills and experience to the AI
// service and returns its ranked match list unchanged.
func (uc *candidateUsecase) GetMatches(ctx context.Context, userID string) ([]domain.JobMatch, error) {
	resume, err := uc.latestResume(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches, err := uc.parser.JobMatches(ctx, resume.Parsed.Skills, resume.Parsed.Experience)
	if err != nil {
		return nil, apperror.Upstream("Failed to get job matches from AI service", err)
	}
	return matches, nil
}

func (uc *candidateUsecase) GetSkills(ctx context.Context, userID string) ([]string, error) {
	resume, err := uc.latestResume(ctx, userID)
	if err != nil {
		return nil, err
	}
	if resume.Parsed.Skills == nil {
		return []string{}, nil
	}
	return resume.Parsed.Skills, nil
}

// GetDashboard aggregates the latest resume's parsed sections with any AI
// analysis attached to it. Missing analysis yields zero values, not an error.
func (uc *candidateUsecase) GetDashboard(ctx context.Context, userID string) (*domain.CandidateDashboard, error) {
	resume, err := uc.latestResume(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.CandidateDashboard{
		Skills:          resume.Parsed.Skills,
		Experience:      resume.Parsed.Experience,
		Education:       resume.Parsed.Education,
		SkillGaps:       []string{},
		RecommendedJobs: []domain.RecommendedJob{},
	}
	if resume.Analysis != nil {
		dashboard.MatchScore = resume.Analysis.MatchScore
		if resume.Analysis.SkillGaps != nil {
			dashboard.SkillGaps = resume.Analysis.SkillGaps
		}
		if resume.Analysis.RecommendedJobs != nil {
			dashboard.RecommendedJobs = resume.Analysis.RecommendedJobs
		}
	}
	return dashboard, nil
}

// GetNotifications returns the static activity feed. A real notification
// pipeline is owned by another service; this endpoint keeps the dashboard
// widget populated until that integration lands.
func (uc *candidateUsecase) GetNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	now := time.Now()
	return []domain.Notification{
		{ID: 1, Message: "Your profile was viewed by an employer", Type: "profile_view", Date: now.AddDate(0, 0, -1)},
		{ID: 2, Message: "New job matches are available", Type: "job_match", Date: now.AddDate(0, 0, -2)},
		{ID: 3, Message: "Your resume was parsed successfully", Type: "resume", Date: now.AddDate(0, 0, -3)},
	}, nil
}
