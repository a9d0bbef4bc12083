package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/auth"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/rs/zerolog"
)

// fail renders err according to its kind. listPath is where a missing
// record sends the admin.
func fail(c *gin.Context, log zerolog.Logger, err error, listPath string) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Database("handling request", err)
	}

	switch e.Kind {
	case apperr.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Message, "errors": e.Details})
	case apperr.KindNotFound:
		c.Redirect(http.StatusSeeOther, listPath)
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": e.Message})
	case apperr.KindUnauthorized:
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
	c.Abort()
}

// bind parses the body into req and reports binding problems as a
// validation failure.
func bind(c *gin.Context, log zerolog.Logger, req any, listPath string) bool {
	if err := c.ShouldBind(req); err != nil {
		fail(c, log, apperr.FromValidator(err), listPath)
		return false
	}
	return true
}

// idParam reads :id. Anything that is not a positive integer is treated
// as a missing record.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound("record", c.Param("id"))
	}
	return uint(id), nil
}

// backToList redirects to listPath keeping the current query string, so
// the admin lands on the same filtered page after an action.
func backToList(c *gin.Context, listPath string) {
	target := listPath
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}
	c.Redirect(http.StatusSeeOther, target)
}

func listRequest(c *gin.Context, spec listquery.Spec) listquery.Request {
	return listquery.ParseRequest(c.Request.URL.Query(), spec)
}
