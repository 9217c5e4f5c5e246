package dto

// CreateAccountRequest is the request body for account creation.
// Balance travels as a decimal string to keep monetary precision.
type CreateAccountRequest struct {
	ID      string `json:"id" binding:"required,min=1,max=64,safe_id"`
	Balance string `json:"balance" binding:"omitempty,decimal_amount"`
}

// SetBalanceRequest is the request body for a balance overwrite.
type SetBalanceRequest struct {
	Balance string `json:"balance" binding:"required,decimal_amount"`
}

// AdjustBalanceRequest is the request body for a relative balance change.
// The delta may be negative, so it skips the non-negative amount check.
type AdjustBalanceRequest struct {
	Delta string `json:"delta" binding:"required,decimal_signed"`
}

// TransferRequest is the request body for a funds transfer.
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,min=1,max=64,safe_id"`
	ToAccountID   string `json:"to_account_id" binding:"required,min=1,max=64,safe_id"`
	Amount        string `json:"amount" binding:"required,decimal_amount"`
}

// AccountResponse is the response body for account queries.
type AccountResponse struct {
	ID        string `json:"id"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// TransferResponse is the response body for a committed transfer.
type TransferResponse struct {
	TransferID  string `json:"transfer_id"`
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	FromBalance string `json:"from_balance"`
	ToBalance   string `json:"to_balance"`
}

// AccountListResponse wraps an account listing.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Total int               `json:"total"`
}
