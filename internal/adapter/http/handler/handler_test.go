package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concurrent-ledger/internal/adapter/http/dto"
	"concurrent-ledger/internal/core/domain"
	"concurrent-ledger/internal/core/ports/mocks"
	"concurrent-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAccount(id, balance string) *domain.Account {
	return &domain.Account{
		ID:        id,
		Balance:   decimal.RequireFromString(balance),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func postJSON(t *testing.T, handler gin.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

// --- Account Handler Tests ---

func TestAccountCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().Create(gomock.Any(), "alice", gomock.Any()).
		Return(testAccount("alice", "100.50"), nil)

	w := postJSON(t, h.Create, "/api/v1/accounts", dto.CreateAccountRequest{
		ID: "alice", Balance: "100.50",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["id"])
	assert.Equal(t, "100.5", data["balance"])
}

func TestAccountCreate_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().Create(gomock.Any(), "alice", gomock.Any()).
		Return(nil, apperror.ErrAccountExists("alice"))

	w := postJSON(t, h.Create, "/api/v1/accounts", dto.CreateAccountRequest{ID: "alice"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ACC_002")
}

func TestAccountCreate_BindingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	// Missing required id
	w := postJSON(t, h.Create, "/api/v1/accounts", map[string]string{"balance": "10"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
}

func TestAccountCreate_RejectsUnsafeID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	w := postJSON(t, h.Create, "/api/v1/accounts", dto.CreateAccountRequest{ID: "alice bob"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().Get(gomock.Any(), "alice").Return(testAccount("alice", "42"), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/accounts/alice", nil)
	c.Params = gin.Params{{Key: "id", Value: "alice"}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":"42"`)
}

func TestAccountGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().Get(gomock.Any(), "ghost").Return(nil, apperror.ErrAccountNotFound("ghost"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ghost", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ACC_001")
}

func TestAccountList_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().List(gomock.Any()).Return([]domain.Account{
		*testAccount("alice", "10"),
		*testAccount("bob", "20"),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
}

func TestAccountSetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().SetBalance(gomock.Any(), "alice", gomock.Any()).
		Return(testAccount("alice", "500"), nil)

	raw, _ := json.Marshal(dto.SetBalanceRequest{Balance: "500"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/accounts/alice/balance", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "alice"}}

	h.SetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":"500"`)
}

func TestAccountSetBalance_RejectsNegative(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	// decimal_amount binding rejects before the service is reached
	raw, _ := json.Marshal(dto.SetBalanceRequest{Balance: "-5"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/accounts/alice/balance", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "alice"}}

	h.SetBalance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountAdjust_AllowsNegativeDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().AdjustBalance(gomock.Any(), "alice", gomock.Any()).
		Return(testAccount("alice", "75"), nil)

	raw, _ := json.Marshal(dto.AdjustBalanceRequest{Delta: "-25"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/accounts/alice/adjust", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "alice"}}

	h.Adjust(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccountAdjust_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().AdjustBalance(gomock.Any(), "alice", gomock.Any()).
		Return(nil, apperror.ErrInsufficientFunds("alice"))

	raw, _ := json.Marshal(dto.AdjustBalanceRequest{Delta: "-1000"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/accounts/alice/adjust", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "alice"}}

	h.Adjust(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ACC_003")
}

func TestAccountDelete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(mockSvc)

	mockSvc.EXPECT().Delete(gomock.Any(), "alice").Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/alice", nil)
	c.Params = gin.Params{{Key: "id", Value: "alice"}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

// --- Transfer Handler Tests ---

func TestTransfer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(mockSvc)

	result := &domain.TransferResult{
		TransferID:  uuid.New(),
		FromAccount: testAccount("alice", "70"),
		ToAccount:   testAccount("bob", "130"),
		Amount:      decimal.RequireFromString("30"),
		Fee:         decimal.Zero,
	}
	mockSvc.EXPECT().Transfer(gomock.Any(), "alice", "bob", gomock.Any()).Return(result, nil)

	w := postJSON(t, h.Transfer, "/api/v1/transfers", dto.TransferRequest{
		FromAccountID: "alice", ToAccountID: "bob", Amount: "30",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, result.TransferID.String(), data["transfer_id"])
	assert.Equal(t, "70", data["from_balance"])
	assert.Equal(t, "130", data["to_balance"])
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(mockSvc)

	mockSvc.EXPECT().Transfer(gomock.Any(), "alice", "bob", gomock.Any()).
		Return(nil, apperror.ErrInsufficientFunds("alice"))

	w := postJSON(t, h.Transfer, "/api/v1/transfers", dto.TransferRequest{
		FromAccountID: "alice", ToAccountID: "bob", Amount: "1000",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ACC_003")
}

func TestTransfer_MissingAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(mockSvc)

	mockSvc.EXPECT().Transfer(gomock.Any(), "alice", "ghost", gomock.Any()).
		Return(nil, apperror.ErrAccountNotFound("ghost"))

	w := postJSON(t, h.Transfer, "/api/v1/transfers", dto.TransferRequest{
		FromAccountID: "alice", ToAccountID: "ghost", Amount: "10",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ACC_001")
}

func TestTransfer_BindingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(mockSvc)

	// Negative amount fails the decimal_amount binding
	w := postJSON(t, h.Transfer, "/api/v1/transfers", dto.TransferRequest{
		FromAccountID: "alice", ToAccountID: "bob", Amount: "-5",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
}
