package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/api"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/upstream"
)

func raw(c *gin.Context, body json.RawMessage) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func storeError(c *gin.Context, err error) {
	abort(c, api.StoreError(err))
}

func upstreamError(c *gin.Context, code int, err error) {
	abort(c, api.UpstreamError(code, err))
}

func validationError(c *gin.Context, err error) {
	abort(c, api.RequestValidationError(err))
}

// fail is used by handlers that touch both the store and the upstream api.
func fail(c *gin.Context, code int, err error) {
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		upstreamError(c, code, err)
		return
	}
	storeError(c, err)
}

func abort(c *gin.Context, err *api.Error) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err})
}
