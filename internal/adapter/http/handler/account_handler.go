package handler

import (
	"concurrent-ledger/internal/adapter/http/dto"
	"concurrent-ledger/internal/core/domain"
	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/pkg/apperror"
	"concurrent-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account-related endpoints.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// Create handles POST /api/v1/accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	balance := decimal.Zero
	if req.Balance != "" {
		var err error
		balance, err = decimal.NewFromString(req.Balance)
		if err != nil {
			response.Error(c, apperror.Validation("balance must be a decimal number"))
			return
		}
	}

	account, err := h.accountSvc.Create(c.Request.Context(), req.ID, balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAccountResponse(account))
}

// Get handles GET /api/v1/accounts/:id.
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accountSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAccountResponse(account))
}

// List handles GET /api/v1/accounts.
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResponse(&accounts[i]))
	}

	response.OK(c, dto.AccountListResponse{Items: items, Total: len(items)})
}

// GetBalance handles GET /api/v1/accounts/:id/balance.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	account, err := h.accountSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		AccountID: account.ID,
		Balance:   account.Balance.String(),
	})
}

// SetBalance handles PUT /api/v1/accounts/:id/balance.
func (h *AccountHandler) SetBalance(c *gin.Context) {
	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		response.Error(c, apperror.Validation("balance must be a decimal number"))
		return
	}

	account, err := h.accountSvc.SetBalance(c.Request.Context(), c.Param("id"), balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAccountResponse(account))
}

// Adjust handles POST /api/v1/accounts/:id/adjust.
func (h *AccountHandler) Adjust(c *gin.Context) {
	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		response.Error(c, apperror.Validation("delta must be a decimal number"))
		return
	}

	account, err := h.accountSvc.AdjustBalance(c.Request.Context(), c.Param("id"), delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAccountResponse(account))
}

// Delete handles DELETE /api/v1/accounts/:id.
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.accountSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func toAccountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        account.ID,
		Balance:   account.Balance.String(),
		CreatedAt: account.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: account.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
