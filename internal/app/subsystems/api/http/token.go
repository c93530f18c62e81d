package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meshbridge/meshbridge/pkg/correlation"
)

// Dummy

func (s *server) dummy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Create Auth Request

func (s *server) createAuthRequest(c *gin.Context) {
	r, err := s.api.CreateAuthRequest(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request_id": r.Id})
}

// Store Token

type StoreTokenBody struct {
	AccessToken string `json:"access_token" binding:"required"`
	BrokerType  string `json:"broker_type" binding:"required"`
}

func (s *server) storeToken(c *gin.Context) {
	// unknown ids are reported before the body is validated
	if _, err := s.api.GetToken(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}

	var body StoreTokenBody
	if err := c.ShouldBindJSON(&body); err != nil {
		validationError(c, err)
		return
	}

	_, err := s.api.StoreToken(c.Request.Context(), c.Param("id"), correlation.TokenPayload{
		AccessToken: body.AccessToken,
		BrokerType:  body.BrokerType,
	})
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Get Token

func (s *server) getToken(c *gin.Context) {
	r, err := s.api.GetToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}

	if r.Status == correlation.Pending {
		c.JSON(http.StatusOK, gin.H{
			"status":  r.Status,
			"message": "Token not yet available",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       r.Status,
		"access_token": r.Payload.AccessToken,
		"broker_type":  r.Payload.BrokerType,
	})
}

// Init Auth

func (s *server) initAuth(c *gin.Context) {
	r, err := s.api.ResumeAuthRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}

	url, err := s.api.AuthUrl(c.Request.Context())
	if err != nil {
		upstreamError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("X-Request-Id", r.Id)
	c.Redirect(http.StatusFound, url)
}
