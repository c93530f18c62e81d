package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/api"
	"github.com/meshbridge/meshbridge/pkg/correlation"
)

// Transfer Link Token

type TransferLinkTokenBody struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (s *server) transferLinkToken(c *gin.Context) {
	var body TransferLinkTokenBody
	if err := c.ShouldBindJSON(&body); err != nil {
		validationError(c, err)
		return
	}

	token, err := s.api.IssueTransferLinkToken(c.Request.Context(), body.Amount, api.Receiving)
	if err != nil {
		upstreamError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link_token": token})
}

// Request Transfer

type RequestTransferBody struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	RequestId string  `json:"request_id"`
}

func (s *server) requestTransfer(d api.Destination) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body RequestTransferBody
		if err := c.ShouldBindJSON(&body); err != nil {
			validationError(c, err)
			return
		}

		r, token, err := s.api.RequestTransfer(c.Request.Context(), body.RequestId, body.Amount, d)
		if err != nil {
			fail(c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"request_id": r.Id,
			"link_token": token,
		})
	}
}

// Record Transfer Result

type TransferResultBody struct {
	RequestId string `json:"request_id" binding:"required"`
	Status    string `json:"status" binding:"required,oneofci=success complete failed"`
	TxHash    string `json:"tx_hash"`
}

func (s *server) recordTransferResult(c *gin.Context) {
	var body TransferResultBody
	if err := c.ShouldBindJSON(&body); err != nil {
		validationError(c, err)
		return
	}

	status, err := correlation.ParseStatus(body.Status)
	if err != nil {
		validationError(c, err)
		return
	}

	if _, err := s.api.RecordTransferResult(c.Request.Context(), body.RequestId, status, body.TxHash); err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// Transfer Status

type TransferStatus struct {
	RequestId string             `json:"request_id"`
	Status    correlation.Status `json:"status"`
	Amount    float64            `json:"amount"`
	TxHash    *string            `json:"tx_hash"`
}

func (s *server) transferStatus(c *gin.Context) {
	r, err := s.api.TransferStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}

	amount, _ := strconv.ParseFloat(r.Tags["amount"], 64)

	res := &TransferStatus{
		RequestId: r.Id,
		Status:    r.Status,
		Amount:    amount,
	}
	if r.Payload.TxHash != "" {
		res.TxHash = &r.Payload.TxHash
	}

	c.JSON(http.StatusOK, res)
}
