package loyalty_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/loyalty"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.Account{}, &models.Transaction{}, &models.PointsRule{}, &models.NotificationRecord{})

	err = db.AutoMigrate(&models.Account{}, &models.Transaction{}, &models.PointsRule{}, &models.NotificationRecord{})
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
	logger.Log = zap.NewNop()
}

func setupRouter() *gin.Engine {
	r := gin.New()
	loyalty.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func seedAccount(active bool) models.Account {
	account := models.Account{
		Phone: "70000000001", Card: "411111111111", Email: "a@x.com",
		EmailNotification: false, PhoneNotification: false, Active: active,
	}
	database.DB.Create(&account)
	return account
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDepositEndpoint(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	seedAccount(true)
	database.DB.Create(&models.PointsRule{PointsRule: "standard", AccrualType: models.AccrualTypeRelative, AccrualValue: 10})

	r := setupRouter()

	body := `{"account_id":"411111111111","account_type":"card","loyalty_points_rule":"standard","description":"purchase","payment_id":"pay-100","payment_amount":250,"payment_time":1700000000}`
	w := postJSON(r, "/api/v1/loyalty/deposit", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int                         `json:"status"`
		Data loyalty.TransactionResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, 200, resp.Code)
	// 250 / 100 * 10
	assert.Equal(t, 25.0, resp.Data.PointsAmount)
	assert.Equal(t, "standard", resp.Data.PointsRule)
}

func TestDepositEndpointErrors(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	seedAccount(false)

	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{
			name:            "Inactive Account",
			body:            `{"account_id":"411111111111","account_type":"card","loyalty_points_rule":"standard","description":"purchase","payment_id":"pay-100","payment_amount":250,"payment_time":1700000000}`,
			expectedMessage: "Account is not active",
		},
		{
			name:            "Unknown Account",
			body:            `{"account_id":"400000000000","account_type":"card","loyalty_points_rule":"standard","description":"purchase","payment_id":"pay-100","payment_amount":250,"payment_time":1700000000}`,
			expectedMessage: "Account is not found",
		},
		{
			name:            "Unknown Type",
			body:            `{"account_id":"411111111111","account_type":"login","loyalty_points_rule":"standard","description":"purchase","payment_id":"pay-100","payment_amount":250,"payment_time":1700000000}`,
			expectedMessage: "Wrong account parameters",
		},
		{
			name:            "Missing Fields",
			body:            `{"account_id":"411111111111","account_type":"card"}`,
			expectedMessage: "Invalid request parameters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter()
			w := postJSON(r, "/api/v1/loyalty/deposit", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Message string `json:"message"`
			}
			json.Unmarshal(w.Body.Bytes(), &resp)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestWithdrawEndpoint(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	account := seedAccount(true)
	database.DB.Create(&models.Transaction{AccountID: account.ID, PointsRule: "standard", PointsAmount: 100})

	r := setupRouter()

	body := `{"account_id":"411111111111","account_type":"card","points_amount":30,"description":"coffee"}`
	w := postJSON(r, "/api/v1/loyalty/withdraw", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data loyalty.TransactionResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, -30.0, resp.Data.PointsAmount)
	assert.Equal(t, "withdraw", resp.Data.PointsRule)

	var balance float64
	database.DB.Model(&models.Transaction{}).
		Where("account_id = ? AND canceled = 0", account.ID).
		Select("COALESCE(SUM(points_amount), 0)").Scan(&balance)
	assert.Equal(t, 70.0, balance)
}

func TestWithdrawEndpointErrors(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	account := seedAccount(true)
	database.DB.Create(&models.Transaction{AccountID: account.ID, PointsRule: "standard", PointsAmount: 20})

	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{
			name:            "Zero Amount",
			body:            `{"account_id":"411111111111","account_type":"card","points_amount":0,"description":"coffee"}`,
			expectedMessage: "Wrong loyalty points amount",
		},
		{
			name:            "Negative Amount",
			body:            `{"account_id":"411111111111","account_type":"card","points_amount":-5,"description":"coffee"}`,
			expectedMessage: "Wrong loyalty points amount",
		},
		{
			name:            "Insufficient Funds",
			body:            `{"account_id":"411111111111","account_type":"card","points_amount":30,"description":"coffee"}`,
			expectedMessage: "Insufficient funds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter()
			w := postJSON(r, "/api/v1/loyalty/withdraw", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Message string `json:"message"`
			}
			json.Unmarshal(w.Body.Bytes(), &resp)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}

	// Failed withdrawals created no rows
	var count int64
	database.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCancelEndpoint(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	account := seedAccount(true)
	transaction := models.Transaction{AccountID: account.ID, PointsRule: "standard", PointsAmount: 100}
	database.DB.Create(&transaction)

	r := setupRouter()

	body := fmt.Sprintf(`{"transaction_id":%d,"cancellation_reason":"operator mistake"}`, transaction.ID)
	w := postJSON(r, "/api/v1/loyalty/cancel", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data loyalty.TransactionResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NotEqual(t, int64(0), resp.Data.Canceled)
	assert.Equal(t, "operator mistake", resp.Data.CancellationReason)

	// Second cancel is rejected: the live-row lookup no longer matches
	w = postJSON(r, "/api/v1/loyalty/cancel", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp struct {
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &errResp)
	assert.Equal(t, "Transaction is not found", errResp.Message)
}

func TestCancelEndpointValidation(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	r := setupRouter()

	// Reason below min length fails binding
	w := postJSON(r, "/api/v1/loyalty/cancel", `{"transaction_id":1,"cancellation_reason":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown transaction
	w = postJSON(r, "/api/v1/loyalty/cancel", `{"transaction_id":999,"cancellation_reason":"mistake"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Transaction is not found", resp.Message)
}
