package v1

import (
	"go-talentmatch-backend/config"
	"go-talentmatch-backend/internal/delivery/http/middleware"
	"go-talentmatch-backend/internal/delivery/http/response"
	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"go-talentmatch-backend/pkg/security"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxResumeSize caps uploads at 5MB
const maxResumeSize = 5 << 20

type CandidateHandler struct {
	resumeUC    domain.ResumeUsecase
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers candidate self-service routes
func NewCandidateHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase, candidateUC domain.CandidateUsecase, cfg *config.Config) {
	handler := &CandidateHandler{resumeUC: resumeUC, candidateUC: candidateUC}

	uploadLimit := middleware.UploadRateLimitConfig(
		cfg.RateLimitUploadThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	)

	candidate := r.Group("/candidate")
	candidate.Use(middleware.RequireRole("candidate"))
	{
		candidate.POST("/upload-resume",
			middleware.RateLimitMiddleware(uploadLimit),
			handler.UploadResume)
		candidate.GET("/matches", handler.GetMatches)
		candidate.GET("/skills", handler.GetSkills)
		candidate.GET("/dashboard", handler.GetDashboard)
		candidate.GET("/notifications", handler.GetNotifications)
	}
}

// UploadResume godoc
// @Summary      Upload a resume
// @Description  Upload a resume file (PDF/DOC/DOCX, max 5MB); it is stored, parsed by the AI service and linked to the candidate profile
// @Tags         candidate
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "Resume file"
// @Success      201  {object}  response.Response{data=domain.UploadResult}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /candidate/upload-resume [post]
// @Security     BearerAuth
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	// 1. Grab the multipart file under the expected field name
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.BadRequest(`No file uploaded. Use "resume" as the field name`))
		return
	}

	// 2. Size ceiling before touching the content
	if fileHeader.Size > maxResumeSize {
		c.Error(apperror.BadRequest("File too large. Maximum size is 5MB."))
		return
	}

	// 3. Content validation happens before any storage or AI call
	src, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	// ReadFull so a legal short first read cannot truncate the sniff window;
	// an unexpected EOF just means the whole file fits in it
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		c.Error(apperror.Internal(err))
		return
	}
	head = head[:n]

	result := security.ValidateResumeFile(fileHeader.Filename, head, http.DetectContentType(head))
	if !result.Valid {
		c.Error(apperror.BadRequest("Invalid file: " + result.Error))
		return
	}

	// 4. Spool the validated upload to a temp file for the pipeline
	tempPath := filepath.Join(os.TempDir(), uuid.NewString()+result.Extension)
	dst, err := os.Create(tempPath)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if _, err := dst.Write(head); err == nil {
		_, err = io.Copy(dst, src)
	}
	dst.Close()
	if err != nil {
		os.Remove(tempPath)
		c.Error(apperror.Internal(err))
		return
	}

	// 5. Run the ingestion pipeline
	out, err := h.resumeUC.Upload(c, domain.UploadInput{
		UserID:    c.GetString(string(domain.KeyUserID)),
		UserName:  c.GetString(string(domain.KeyUserName)),
		UserEmail: c.GetString(string(domain.KeyUserEmail)),
		AuthToken: c.GetString(string(domain.KeyAuthToken)),
		LocalPath: tempPath,
		FileName:  fileHeader.Filename,
	})
	if err != nil {
		os.Remove(tempPath)
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume uploaded and parsed successfully", out)
}

// GetMatches godoc
// @Summary      Get job matches
// @Description  Get AI-ranked job matches based on the latest resume
// @Tags         candidate
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobMatch}
// @Failure      404  {object}  response.Response
// @Router       /candidate/matches [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetMatches(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	matches, err := h.candidateUC.GetMatches(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matches retrieved", matches)
}

// GetSkills godoc
// @Summary      Get extracted skills
// @Description  Get the skills parsed from the latest resume
// @Tags         candidate
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Failure      404  {object}  response.Response
// @Router       /candidate/skills [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetSkills(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	skills, err := h.candidateUC.GetSkills(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skills retrieved", skills)
}

// GetDashboard godoc
// @Summary      Get candidate dashboard
// @Description  Get the parsed profile and AI analysis from the latest resume
// @Tags         candidate
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateDashboard}
// @Failure      404  {object}  response.Response
// @Router       /candidate/dashboard [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetDashboard(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	dashboard, err := h.candidateUC.GetDashboard(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard retrieved", dashboard)
}

// GetNotifications godoc
// @Summary      Get notifications
// @Description  Get the candidate's activity feed
// @Tags         candidate
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Notification}
// @Router       /candidate/notifications [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	notifications, err := h.candidateUC.GetNotifications(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved", notifications)
}
