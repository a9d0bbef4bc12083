package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
)

const applicationsPath = "/admin/applications"

type ApplicationHandler struct {
	Applications *services.ApplicationService
	Log          zerolog.Logger
}

func NewApplicationHandler(applications *services.ApplicationService, log zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications, Log: log}
}

func (h *ApplicationHandler) List(c *gin.Context) {
	page, err := h.Applications.List(c.Request.Context(), listRequest(c, services.ApplicationListSpec))
	if err != nil {
		fail(c, h.Log, err, applicationsPath)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, applicationsPath)
		return
	}
	app, err := h.Applications.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Log, err, applicationsPath)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) ChangeStatus(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, applicationsPath)
		return
	}
	var req dtos.ApplicationStatusRequest
	if !bind(c, h.Log, &req, applicationsPath) {
		return
	}
	if err := h.Applications.ChangeStatus(c.Request.Context(), id, &req); err != nil {
		fail(c, h.Log, err, applicationsPath)
		return
	}
	backToList(c, applicationsPath)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err == nil {
		err = h.Applications.Delete(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, h.Log, err, applicationsPath)
		return
	}
	backToList(c, applicationsPath)
}
