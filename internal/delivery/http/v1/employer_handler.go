package v1

import (
	"context"

	"go-talentmatch-backend/internal/delivery/http/middleware"
	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	rankingUC     domain.RankingUsecase
	applicationUC domain.ApplicationUsecase
}

// NewEmployerHandler registers employer-facing candidate and application routes
func NewEmployerHandler(r *gin.RouterGroup, rankingUC domain.RankingUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &EmployerHandler{rankingUC: rankingUC, applicationUC: applicationUC}

	employer := r.Group("/employer")
	employer.Use(middleware.RequireRole("employer", "admin"))
	{
		// Same wildcard name as the action routes below; gin rejects mixed
		// names at one position. Here :id is the job, there the candidate.
		employer.GET("/candidates/:id", handler.RankCandidates)
		employer.POST("/candidates/:id/shortlist", handler.ShortlistCandidate)
		employer.POST("/candidates/:id/reject", handler.RejectCandidate)
		employer.GET("/applications", handler.ListApplications)
		employer.GET("/applications/export", handler.ExportApplications)
	}
}

// ActionRequest is the shortlist/reject payload
type ActionRequest struct {
	JobID string `json:"jobId" binding:"required"`
	Notes string `json:"notes"`
}

// RankCandidates godoc
// @Summary      Rank candidates for a job
// @Description  Score every candidate's latest resume against the job's required skills (Employer only)
// @Tags         employer
// @Produce      json
// @Param        id  path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobRanking}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employer/candidates/{id} [get]
// @Security     BearerAuth
func (h *EmployerHandler) RankCandidates(c *gin.Context) {
	employerID := c.GetString(string(domain.KeyUserID))

	jobID := c.Param("id")
	if jobID == "" {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	ranking, err := h.rankingUC.RankCandidatesForJob(c, employerID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates ranked", ranking)
}

// ShortlistCandidate godoc
// @Summary      Shortlist a candidate
// @Description  Move the candidate's application for the job into shortlisted, creating it if needed (Employer only)
// @Tags         employer
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Candidate ID"
// @Param        body  body      ActionRequest  true  "Target job and optional notes"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /employer/candidates/{id}/shortlist [post]
// @Security     BearerAuth
func (h *EmployerHandler) ShortlistCandidate(c *gin.Context) {
	h.act(c, h.applicationUC.Shortlist, "Candidate shortlisted")
}

// RejectCandidate godoc
// @Summary      Reject a candidate
// @Description  Move the candidate's application for the job into rejected, creating it if needed (Employer only)
// @Tags         employer
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Candidate ID"
// @Param        body  body      ActionRequest  true  "Target job and optional notes"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /employer/candidates/{id}/reject [post]
// @Security     BearerAuth
func (h *EmployerHandler) RejectCandidate(c *gin.Context) {
	h.act(c, h.applicationUC.Reject, "Candidate rejected")
}

func (h *EmployerHandler) act(c *gin.Context, fn func(ctx context.Context, employerID, candidateID string, req domain.ApplicationActionRequest) (*domain.Application, error), message string) {
	employerID := c.GetString(string(domain.KeyUserID))
	candidateID := c.Param("id")

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := fn(c, employerID, candidateID, domain.ApplicationActionRequest{
		JobID: req.JobID,
		Notes: req.Notes,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, message, app)
}

// ListApplications godoc
// @Summary      List applications
// @Description  Get all applications across the employer's jobs, newest first (Employer only)
// @Tags         employer
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Router       /employer/applications [get]
// @Security     BearerAuth
func (h *EmployerHandler) ListApplications(c *gin.Context) {
	employerID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.ListForEmployer(c, employerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// ExportApplications godoc
// @Summary      Export applications
// @Description  Download all applications across the employer's jobs as an XLSX file (Employer only)
// @Tags         employer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      403  {object}  response.Response
// @Router       /employer/applications/export [get]
// @Security     BearerAuth
func (h *EmployerHandler) ExportApplications(c *gin.Context) {
	employerID := c.GetString(string(domain.KeyUserID))

	data, filename, err := h.applicationUC.ExportForEmployer(c, employerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
