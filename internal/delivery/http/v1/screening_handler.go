package v1

import (
	"net/http"
	"strconv"

	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ScreeningHandler struct {
	screeningUC domain.ScreeningUsecase
}

// NewScreeningHandler registers candidate screening routes
func NewScreeningHandler(r *gin.RouterGroup, screeningUC domain.ScreeningUsecase) {
	handler := &ScreeningHandler{screeningUC: screeningUC}

	screening := r.Group("/screening")
	{
		screening.POST("/jobs/:jobId/resumes/:resumeId", handler.EvaluateResume)
		screening.GET("/jobs/:jobId/resumes/:resumeId", handler.GetPairEvaluation)
		screening.POST("/jobs/:jobId/match", handler.MatchAll)
		screening.GET("/jobs/:jobId/evaluations", handler.ListEvaluations)
		screening.GET("/evaluations/:id", handler.GetEvaluation)
		screening.PATCH("/evaluations/:id", handler.UpdateReview)
		screening.DELETE("/evaluations/:id", handler.DeleteEvaluation)
	}
}

// UpdateReviewRequest carries a manual HR decision on an evaluation
type UpdateReviewRequest struct {
	Status   string  `json:"status" binding:"required"`
	Comments *string `json:"comments"`
}

// EvaluateResume godoc
// @Summary      Score one resume against a job and store the evaluation
// @Tags         screening
// @Produce      json
// @Param        jobId     path      int  true  "Job ID"
// @Param        resumeId  path      int  true  "Resume ID"
// @Success      200       {object}  response.Response{data=domain.Evaluation}
// @Failure      404       {object}  response.Response
// @Failure      422       {object}  response.Response
// @Router       /screening/jobs/{jobId}/resumes/{resumeId} [post]
func (h *ScreeningHandler) EvaluateResume(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	resumeID, ok := pathID(c, "resumeId")
	if !ok {
		return
	}

	eval, err := h.screeningUC.EvaluateAndStore(c.Request.Context(), jobID, resumeID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate evaluated", eval)
}

// GetPairEvaluation godoc
// @Summary      Get the stored evaluation for a (job, resume) pair
// @Tags         screening
// @Produce      json
// @Param        jobId     path      int  true  "Job ID"
// @Param        resumeId  path      int  true  "Resume ID"
// @Success      200       {object}  response.Response{data=domain.Evaluation}
// @Failure      404       {object}  response.Response
// @Router       /screening/jobs/{jobId}/resumes/{resumeId} [get]
func (h *ScreeningHandler) GetPairEvaluation(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	resumeID, ok := pathID(c, "resumeId")
	if !ok {
		return
	}
	eval, err := h.screeningUC.GetEvaluationByPair(c.Request.Context(), jobID, resumeID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Evaluation retrieved", eval)
}

// MatchAll godoc
// @Summary      Screen every resume submitted for a job
// @Description  Runs the full matching pipeline per candidate, isolating failures, and returns results ranked by overall score. Truncation via limit is presentation only; every candidate is still evaluated and stored.
// @Tags         screening
// @Produce      json
// @Param        jobId  path      int  true   "Job ID"
// @Param        limit  query     int  false  "Return only the top N results"
// @Success      200    {object}  response.Response{data=[]domain.RankedResult}
// @Failure      404    {object}  response.Response
// @Router       /screening/jobs/{jobId}/match [post]
func (h *ScreeningHandler) MatchAll(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	results, err := h.screeningUC.EvaluateAll(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.Error(apperror.BadRequest("Invalid limit"))
			return
		}
		if limit < len(results) {
			results = results[:limit]
		}
	}
	response.Success(c, http.StatusOK, "Batch screening complete", results)
}

// ListEvaluations godoc
// @Summary      List evaluations for a job, ranked by score
// @Tags         screening
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Evaluation}
// @Failure      404    {object}  response.Response
// @Router       /screening/jobs/{jobId}/evaluations [get]
func (h *ScreeningHandler) ListEvaluations(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	evals, err := h.screeningUC.ListEvaluations(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Evaluations retrieved", evals)
}

// GetEvaluation godoc
// @Summary      Get one evaluation
// @Tags         screening
// @Produce      json
// @Param        id   path      int  true  "Evaluation ID"
// @Success      200  {object}  response.Response{data=domain.Evaluation}
// @Failure      404  {object}  response.Response
// @Router       /screening/evaluations/{id} [get]
func (h *ScreeningHandler) GetEvaluation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	eval, err := h.screeningUC.GetEvaluation(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Evaluation retrieved", eval)
}

// UpdateReview godoc
// @Summary      Record a manual review decision on an evaluation
// @Tags         screening
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Evaluation ID"
// @Param        body  body      UpdateReviewRequest  true  "Review decision"
// @Success      200   {object}  response.Response{data=domain.Evaluation}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /screening/evaluations/{id} [patch]
func (h *ScreeningHandler) UpdateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	eval, err := h.screeningUC.UpdateReview(c.Request.Context(), id, req.Status, req.Comments)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Evaluation updated", eval)
}

// DeleteEvaluation godoc
// @Summary      Delete an evaluation
// @Tags         screening
// @Produce      json
// @Param        id   path      int  true  "Evaluation ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /screening/evaluations/{id} [delete]
func (h *ScreeningHandler) DeleteEvaluation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.screeningUC.DeleteEvaluation(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Evaluation deleted", nil)
}
