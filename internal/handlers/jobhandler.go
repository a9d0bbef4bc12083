package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
)

const jobsPath = "/admin/jobs"

type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
	Log        zerolog.Logger
}

func NewJobHandler(llm *services.LLMService, j *services.JobService, log zerolog.Logger) *JobHandler {
	return &JobHandler{
		LLMService: llm,
		JobService: j,
		Log:        log,
	}
}

func (h *JobHandler) List(c *gin.Context) {
	page, err := h.JobService.List(c.Request.Context(), listRequest(c, services.JobListSpec))
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	job, err := h.JobService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobRequest
	if !bind(c, h.Log, &req, jobsPath) {
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	var req dtos.JobRequest
	if !bind(c, h.Log, &req, jobsPath) {
		return
	}
	job, err := h.JobService.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Approve(c *gin.Context) { h.setStatus(c, models.JobActive) }
func (h *JobHandler) Reject(c *gin.Context)  { h.setStatus(c, models.JobRejected) }

func (h *JobHandler) setStatus(c *gin.Context, status string) {
	id, err := idParam(c)
	if err == nil {
		err = h.JobService.SetStatus(c.Request.Context(), id, status)
	}
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	backToList(c, jobsPath)
}

func (h *JobHandler) Feature(c *gin.Context) {
	id, err := idParam(c)
	if err == nil {
		_, err = h.JobService.ToggleFeatured(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	backToList(c, jobsPath)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err == nil {
		err = h.JobService.Delete(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}
	backToList(c, jobsPath)
}

// ParseJob is the POST /admin/jobs/extract endpoint. It pre-fills a job
// form from a posting's HTML.
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	extracted, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if errors.Is(err, services.ErrExtractionDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		fail(c, h.Log, err, jobsPath)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    extracted,
	})
}
