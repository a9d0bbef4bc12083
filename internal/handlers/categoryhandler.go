package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
)

const categoriesPath = "/admin/categories"

type CategoryHandler struct {
	Categories *services.CategoryService
	Log        zerolog.Logger
}

func NewCategoryHandler(categories *services.CategoryService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Log: log}
}

func (h *CategoryHandler) List(c *gin.Context) {
	page, err := h.Categories.List(c.Request.Context(), listRequest(c, services.CategoryListSpec))
	if err != nil {
		fail(c, h.Log, err, categoriesPath)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CategoryHandler) Options(c *gin.Context) {
	all, err := h.Categories.All(c.Request.Context())
	if err != nil {
		fail(c, h.Log, err, categoriesPath)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dtos.CategoryRequest
	if !bind(c, h.Log, &req, categoriesPath) {
		return
	}
	category, err := h.Categories.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.Log, err, categoriesPath)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, categoriesPath)
		return
	}
	var req dtos.CategoryRequest
	if !bind(c, h.Log, &req, categoriesPath) {
		return
	}
	category, err := h.Categories.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, h.Log, err, categoriesPath)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err == nil {
		err = h.Categories.Delete(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, h.Log, err, categoriesPath)
		return
	}
	backToList(c, categoriesPath)
}
