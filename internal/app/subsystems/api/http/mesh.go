package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/upstream"
)

// Get Link Token

func (s *server) getLinkToken(c *gin.Context) {
	token, err := s.api.IssueLinkToken(c.Request.Context())
	if err != nil {
		upstreamError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link_token": token})
}

// Preview Transfer

type PreviewTransferParams struct {
	AuthToken  string  `form:"auth_token" binding:"required"`
	FromType   string  `form:"from_type" binding:"required"`
	ToType     string  `form:"to_type" binding:"required"`
	ToAddress  string  `form:"to_address" binding:"required"`
	Amount     float64 `form:"amount" binding:"required,gt=0"`
	Symbol     string  `form:"symbol" binding:"required"`
	AddressTag string  `form:"address_tag"`
	NetworkId  string  `form:"network_id"`
}

func (s *server) previewTransfer(c *gin.Context) {
	var params PreviewTransferParams
	if err := c.ShouldBindQuery(&params); err != nil {
		validationError(c, err)
		return
	}

	res, err := s.api.PreviewTransfer(c.Request.Context(), &upstream.PreviewRequest{
		FromAuthToken: params.AuthToken,
		FromType:      params.FromType,
		ToType:        params.ToType,
		ToAddress:     params.ToAddress,
		Amount:        params.Amount,
		AddressTag:    params.AddressTag,
		Symbol:        params.Symbol,
		NetworkId:     params.NetworkId,
	})
	if err != nil {
		upstreamError(c, http.StatusInternalServerError, err)
		return
	}

	raw(c, res)
}

// Execute Transfer

type ExecuteTransferBody struct {
	AuthToken string `json:"auth_token" binding:"required"`
	FromType  string `json:"from_type" binding:"required"`
	PreviewId string `json:"preview_id" binding:"required"`
	MfaCode   string `json:"mfa_code" binding:"required"`
}

func (s *server) executeTransfer(c *gin.Context) {
	var body ExecuteTransferBody
	if err := c.ShouldBindJSON(&body); err != nil {
		validationError(c, err)
		return
	}

	res, err := s.api.ExecuteTransfer(c.Request.Context(), &upstream.ExecuteRequest{
		FromAuthToken: body.AuthToken,
		FromType:      body.FromType,
		PreviewId:     body.PreviewId,
		MfaCode:       body.MfaCode,
	})
	if err != nil {
		upstreamError(c, http.StatusBadGateway, err)
		return
	}

	raw(c, res)
}

// Get Holdings

type GetHoldingsParams struct {
	AuthToken string `form:"auth_token" binding:"required"`
	FromType  string `form:"from_type" binding:"required"`
}

func (s *server) getHoldings(c *gin.Context) {
	var params GetHoldingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		validationError(c, err)
		return
	}

	res, err := s.api.GetHoldings(c.Request.Context(), params.AuthToken, params.FromType)
	if err != nil {
		upstreamError(c, http.StatusInternalServerError, err)
		return
	}

	raw(c, res)
}

// Get Networks

func (s *server) getNetworks(c *gin.Context) {
	res, err := s.api.GetNetworks(c.Request.Context())
	if err != nil {
		upstreamError(c, http.StatusInternalServerError, err)
		return
	}

	raw(c, res)
}
