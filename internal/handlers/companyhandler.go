package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
)

const companiesPath = "/admin/companies"

type CompanyHandler struct {
	Companies *services.CompanyService
	Log       zerolog.Logger
}

func NewCompanyHandler(companies *services.CompanyService, log zerolog.Logger) *CompanyHandler {
	return &CompanyHandler{Companies: companies, Log: log}
}

func (h *CompanyHandler) List(c *gin.Context) {
	page, err := h.Companies.List(c.Request.Context(), listRequest(c, services.CompanyListSpec))
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	company, err := h.Companies.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req dtos.CompanyRequest
	if !bind(c, h.Log, &req, companiesPath) {
		return
	}
	logo, err := optionalFile(c, "logo")
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}

	company, err := h.Companies.Create(c.Request.Context(), &req, logo)
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	var req dtos.CompanyRequest
	if !bind(c, h.Log, &req, companiesPath) {
		return
	}
	logo, err := optionalFile(c, "logo")
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}

	company, err := h.Companies.Update(c.Request.Context(), id, &req, logo)
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Verify(c *gin.Context) {
	id, err := idParam(c)
	if err == nil {
		_, err = h.Companies.ToggleVerified(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	backToList(c, companiesPath)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err == nil {
		err = h.Companies.Delete(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, h.Log, err, companiesPath)
		return
	}
	backToList(c, companiesPath)
}

// optionalFile returns nil when the form carries no file under field.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Validation(field + " could not be read: " + err.Error())
	}
	return fh, nil
}
