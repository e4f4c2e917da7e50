package usecase

import (
	"context"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"math"
	"sort"
	"time"
)

type analyticsUsecase struct {
	jobRepo domain.JobRepository
	appRepo domain.ApplicationRepository
}

// NewAnalyticsUsecase creates the employer analytics usecase
func NewAnalyticsUsecase(jobRepo domain.JobRepository, appRepo domain.ApplicationRepository) domain.AnalyticsUsecase {
	return &analyticsUsecase{jobRepo: jobRepo, appRepo: appRepo}
}

// GetEmployerAnalytics folds the employer's jobs and applications into the
// dashboard summary. All aggregation happens in memory over one read per
// collection; at dashboard cardinality this beats a fan of grouped queries.
func (uc *analyticsUsecase) GetEmployerAnalytics(ctx context.Context, employerID string) (*domain.EmployerAnalytics, error) {
	jobs, err := uc.jobRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	apps, err := uc.appRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := &domain.EmployerAnalytics{
		TotalJobs:           len(jobs),
		TotalApplications:   len(apps),
		JobsByStatus:        make(map[string]int),
		ApplicationsByMonth: make(map[string]int),
		TopSkills:           []domain.SkillCount{},
	}

	for _, j := range jobs {
		out.JobsByStatus[j.Status]++
		if j.Status == domain.JobStatusActive {
			out.ActiveJobs++
		}
	}

	skillCounts := make(map[string]int)
	for _, a := range apps {
		switch a.Status {
		case domain.ApplicationStatusShortlisted:
			out.ShortlistedCandidates++
		case domain.ApplicationStatusRejected:
			out.RejectedCandidates++
		case domain.ApplicationStatusPending:
			out.PendingApplications++
		case domain.ApplicationStatusHired:
			out.HiredCandidates++
		}
		out.ApplicationsByMonth[a.AppliedAt.UTC().Format("2006-01")]++
		for _, skill := range a.ResumeSkills {
			skillCounts[skill]++
		}
	}

	out.TopSkills = topSkills(skillCounts, 10)
	out.AverageMatchScore = averageScore(apps)
	return out, nil
}

// GetJobAnalytics summarizes one job, including a trailing-30-day daily
// application series with zero-filled gaps.
func (uc *analyticsUsecase) GetJobAnalytics(ctx context.Context, employerID, jobID string) (*domain.JobAnalytics, error) {
	job, err := uc.jobRepo.GetByIDForEmployer(ctx, jobID, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job == nil {
		return nil, apperror.NotFound("Job not found")
	}

	apps, err := uc.appRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := &domain.JobAnalytics{
		Job: domain.JobSummary{
			ID:      job.ID,
			Title:   job.Title,
			Company: job.Company,
			Status:  job.Status,
		},
		TotalApplications: len(apps),
		AverageMatchScore: averageScore(apps),
	}

	daily := make(map[string]int)
	for _, a := range apps {
		switch a.Status {
		case domain.ApplicationStatusShortlisted:
			out.Shortlisted++
		case domain.ApplicationStatusRejected:
			out.Rejected++
		case domain.ApplicationStatusPending:
			out.Pending++
		case domain.ApplicationStatusHired:
			out.Hired++
		}
		daily[a.AppliedAt.UTC().Format("2006-01-02")]++
	}

	// Exactly 30 entries, oldest first, today last
	now := time.Now()
	series := make([]domain.DailyCount, 0, 30)
	for i := 29; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).UTC().Format("2006-01-02")
		series = append(series, domain.DailyCount{Date: date, Count: daily[date]})
	}
	out.ApplicationsOverTime = series

	return out, nil
}

// topSkills ranks skill frequencies descending, breaking count ties
// alphabetically so the output is deterministic.
func topSkills(counts map[string]int, limit int) []domain.SkillCount {
	ranked := make([]domain.SkillCount, 0, len(counts))
	for skill, count := range counts {
		ranked = append(ranked, domain.SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Skill < ranked[j].Skill
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// averageScore averages the non-nil match scores, rounded to two decimals.
// No scored applications yields 0.
func averageScore(apps []domain.Application) float64 {
	var sum, n int
	for _, a := range apps {
		if a.MatchScore != nil {
			sum += *a.MatchScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*100) / 100
}
