package v1

import (
	"go-talentmatch-backend/internal/delivery/http/middleware"
	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsUC domain.AnalyticsUsecase
}

// NewAnalyticsHandler registers employer analytics routes
func NewAnalyticsHandler(r *gin.RouterGroup, analyticsUC domain.AnalyticsUsecase) {
	handler := &AnalyticsHandler{analyticsUC: analyticsUC}

	analytics := r.Group("/employer/analytics")
	analytics.Use(middleware.RequireRole("employer", "admin"))
	{
		analytics.GET("", handler.GetEmployerAnalytics)
		analytics.GET("/jobs/:jobId", handler.GetJobAnalytics)
	}
}

// GetEmployerAnalytics godoc
// @Summary      Employer dashboard analytics
// @Description  Aggregate counts, monthly buckets, top skills and average match score across all of the employer's jobs
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.EmployerAnalytics}
// @Failure      403  {object}  response.Response
// @Router       /employer/analytics [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) GetEmployerAnalytics(c *gin.Context) {
	employerID := c.GetString(string(domain.KeyUserID))

	analytics, err := h.analyticsUC.GetEmployerAnalytics(c, employerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Analytics retrieved", analytics)
}

// GetJobAnalytics godoc
// @Summary      Per-job analytics
// @Description  Status breakdown, average match score and a trailing-30-day application series for one job
// @Tags         analytics
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.JobAnalytics}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /employer/analytics/jobs/{jobId} [get]
// @Security     BearerAuth
func (h *AnalyticsHandler) GetJobAnalytics(c *gin.Context) {
	employerID := c.GetString(string(domain.KeyUserID))
	jobID := c.Param("jobId")

	analytics, err := h.analyticsUC.GetJobAnalytics(c, employerID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job analytics retrieved", analytics)
}
