package usecase

import (
	"context"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/internal/matching"
	"go-talentmatch-backend/pkg/apperror"
	"sort"
)

type rankingUsecase struct {
	jobRepo       domain.JobRepository
	candidateRepo domain.CandidateRepository
	appRepo       domain.ApplicationRepository
}

// NewRankingUsecase creates the employer-facing candidate ranking usecase
func NewRankingUsecase(
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	appRepo domain.ApplicationRepository,
) domain.RankingUsecase {
	return &rankingUsecase{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		appRepo:       appRepo,
	}
}

// RankCandidatesForJob scores every candidate's latest resume against the
// job's required skills, drops zero scores, and annotates each row with the
// candidate's application standing for this job.
func (uc *rankingUsecase) RankCandidatesForJob(ctx context.Context, employerID, jobID string) (*domain.JobRanking, error) {
	// 1. Ownership check; missing and not-owned are indistinguishable
	job, err := uc.jobRepo.GetByIDForEmployer(ctx, jobID, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job == nil {
		return nil, apperror.NotFound("Job not found")
	}

	// 2. Every candidate with a resume, latest resume's skills only
	candidates, err := uc.candidateRepo.ListWithLatestResume(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// 3. Existing applications for status annotation
	apps, err := uc.appRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	byCandidate := make(map[string]*domain.Application, len(apps))
	for i := range apps {
		byCandidate[apps[i].CandidateID] = &apps[i]
	}

	// 4. Score, filter, annotate
	ranked := make([]domain.RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		score := matching.Score(c.Skills, job.RequiredSkills)
		if score == 0 {
			continue
		}

		row := domain.RankedCandidate{
			CandidateID:    c.CandidateID,
			Name:           c.Name,
			Email:          c.Email,
			MatchScore:     score,
			Skills:         c.Skills,
			MatchingSkills: matching.Overlap(c.Skills, job.RequiredSkills),
			Status:         domain.ApplicationStatusNotApplied,
		}
		if app, ok := byCandidate[c.CandidateID]; ok {
			row.Status = app.Status
			row.ApplicationID = &app.ID
			row.AppliedAt = &app.AppliedAt
		}
		ranked = append(ranked, row)
	}

	// Stable sort keeps enumeration (candidate creation) order among ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	return &domain.JobRanking{
		Job: domain.JobSummary{
			ID:      job.ID,
			Title:   job.Title,
			Company: job.Company,
			Status:  job.Status,
		},
		Candidates: ranked,
	}, nil
}
