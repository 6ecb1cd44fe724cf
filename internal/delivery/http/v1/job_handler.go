package v1

import (
	"net/http"
	"strconv"

	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers job posting routes
func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := r.Group("/jobs")
	{
		jobs.POST("", handler.CreateJob)
		jobs.GET("", handler.ListJobs)
		jobs.GET("/:jobId", handler.GetJob)
		jobs.PATCH("/:jobId/status", handler.TransitionStatus)
		jobs.GET("/:jobId/stats", handler.GetScreeningStats)
	}
}

// CreateJobRequest is the payload for posting a new job
type CreateJobRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired float64  `json:"experience_required" binding:"gte=0"`
	Location           *string  `json:"location"`
	Status             string   `json:"status"`
}

// TransitionStatusRequest carries the target lifecycle status
type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateJob godoc
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateJobRequest  true  "Job data"
// @Success      201   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.Job{
		Title:              req.Title,
		Description:        req.Description,
		RequiredSkills:     req.RequiredSkills,
		ExperienceRequired: req.ExperienceRequired,
		Location:           req.Location,
		Status:             req.Status,
	}
	if err := h.jobUC.CreateJob(c.Request.Context(), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListJobs godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response{data=[]domain.Job}
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessPaged(c, http.StatusOK, "Jobs retrieved", jobs, response.Meta{
		Page: page, PageSize: pageSize, Total: total,
	})
}

// GetJob godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// TransitionStatus godoc
// @Summary      Move a job through its lifecycle
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                      true  "Job ID"
// @Param        body   body      TransitionStatusRequest  true  "Target status"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      400    {object}  response.Response
// @Router       /jobs/{jobId}/status [patch]
func (h *JobHandler) TransitionStatus(c *gin.Context) {
	id, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	var req TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	job, err := h.jobUC.TransitionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", job)
}

// GetScreeningStats godoc
// @Summary      Aggregate screening outcomes for a job
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.JobScreeningStats}
// @Failure      404    {object}  response.Response
// @Router       /jobs/{jobId}/stats [get]
func (h *JobHandler) GetScreeningStats(c *gin.Context) {
	id, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	stats, err := h.jobUC.GetScreeningStats(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Screening stats retrieved", stats)
}

// pathID parses an int64 path parameter, appending a BadRequest on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid " + name))
		return 0, false
	}
	return id, true
}
