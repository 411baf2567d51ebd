package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/internal/validator"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(v *validator.Validator, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: NewBaseHandler(v),
		jobService:  jobService,
	}
}

// RegisterPublicRoutes mounts the browsable listing.
func (h *JobHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("", h.Search)
	r.GET("/:jobId", h.GetJob)
}

// RegisterRoutes mounts studio-only management routes.
func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateJob)
	r.PUT("/:jobId", h.UpdateJob)
	r.PUT("/:jobId/close", h.CloseJob)
	r.DELETE("/:jobId", h.DeleteJob)
}

func (h *JobHandler) Search(c *gin.Context) {
	var criteria repositories.JobCriteria
	if !h.BindAndValidateQuery(c, &criteria) {
		return
	}

	response, err := h.jobService.Search(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(userID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.CloseJob(userID, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job closed"})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(userID, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
