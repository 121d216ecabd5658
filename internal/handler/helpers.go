package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/nemi-admin-api/internal/middleware"
	"github.com/noah-isme/nemi-admin-api/internal/models"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
	"github.com/noah-isme/nemi-admin-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.Claims(c)
}

// listParams reads limit/offset query parameters. Unparseable values fall back to defaults.
func listParams(c *gin.Context) models.ListParams {
	var params models.ListParams
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		params.Offset = offset
	}
	return params.Normalize()
}

// bindJSON decodes the request body, writing a 400 response on failure.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}
