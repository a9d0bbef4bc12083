package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/auth"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
)

const usersPath = "/admin/users"

type UserHandler struct {
	Users *services.UserService
	Log   zerolog.Logger
}

func NewUserHandler(users *services.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{Users: users, Log: log}
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := h.Users.List(c.Request.Context(), listRequest(c, services.UserListSpec))
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	user, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dtos.UserCreateRequest
	if !bind(c, h.Log, &req, usersPath) {
		return
	}
	user, err := h.Users.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	var req dtos.UserUpdateRequest
	if !bind(c, h.Log, &req, usersPath) {
		return
	}
	user, err := h.Users.Update(c.Request.Context(), id, &req)
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Suspend(c *gin.Context)  { h.setStatus(c, models.UserSuspended) }
func (h *UserHandler) Activate(c *gin.Context) { h.setStatus(c, models.UserActive) }

func (h *UserHandler) setStatus(c *gin.Context, status string) {
	id, err := idParam(c)
	if err == nil {
		err = h.Users.SetStatus(c.Request.Context(), actorID(c), id, status)
	}
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	backToList(c, usersPath)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err == nil {
		err = h.Users.Delete(c.Request.Context(), actorID(c), id)
	}
	if err != nil {
		fail(c, h.Log, err, usersPath)
		return
	}
	backToList(c, usersPath)
}

func actorID(c *gin.Context) uint {
	if u := auth.Principal(c); u != nil {
		return u.ID
	}
	return 0
}
