package handler

import (
	"concurrent-ledger/internal/adapter/http/dto"
	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/pkg/apperror"
	"concurrent-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	transferSvc ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// Transfer handles POST /api/v1/transfers.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("amount must be a decimal number"))
		return
	}

	result, err := h.transferSvc.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.TransferResponse{
		TransferID:  result.TransferID.String(),
		FromAccount: result.FromAccount.ID,
		ToAccount:   result.ToAccount.ID,
		Amount:      result.Amount.String(),
		Fee:         result.Fee.String(),
		FromBalance: result.FromAccount.Balance.String(),
		ToBalance:   result.ToAccount.Balance.String(),
	})
}
