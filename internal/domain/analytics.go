package domain

import "context"

// SkillCount is one bucket of the skill frequency histogram.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// DailyCount is one day of the trailing-30-day application series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// EmployerAnalytics summarizes activity across all of an employer's jobs.
type EmployerAnalytics struct {
	TotalJobs             int            `json:"totalJobs"`
	ActiveJobs            int            `json:"activeJobs"`
	TotalApplications     int            `json:"totalApplications"`
	ShortlistedCandidates int            `json:"shortlistedCandidates"`
	RejectedCandidates    int            `json:"rejectedCandidates"`
	PendingApplications   int            `json:"pendingApplications"`
	HiredCandidates       int            `json:"hiredCandidates"`
	JobsByStatus          map[string]int `json:"jobsByStatus"`
	ApplicationsByMonth   map[string]int `json:"applicationsByMonth"`
	TopSkills             []SkillCount   `json:"topSkills"`
	AverageMatchScore     float64        `json:"averageMatchScore"`
}

// JobAnalytics summarizes activity for a single job.
type JobAnalytics struct {
	Job                  JobSummary   `json:"job"`
	TotalApplications    int          `json:"totalApplications"`
	Shortlisted          int          `json:"shortlisted"`
	Rejected             int          `json:"rejected"`
	Pending              int          `json:"pending"`
	Hired                int          `json:"hired"`
	AverageMatchScore    float64      `json:"averageMatchScore"`
	ApplicationsOverTime []DailyCount `json:"applicationsOverTime"`
}

type AnalyticsUsecase interface {
	GetEmployerAnalytics(ctx context.Context, employerID string) (*EmployerAnalytics, error)
	GetJobAnalytics(ctx context.Context, employerID, jobID string) (*JobAnalytics, error)
}
