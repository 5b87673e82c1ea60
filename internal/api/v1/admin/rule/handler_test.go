package rule_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/admin/rule"
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

	db.Migrator().DropTable(&models.PointsRule{})

	err = db.AutoMigrate(&models.PointsRule{})
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	logger.Log = zap.NewNop()
}

func setupRouter() *gin.Engine {
	r := gin.New()
	rule.RegisterRoutes(r.Group("/admin"))
	return r
}

func TestCreateAndListRules(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	r := setupRouter()

	body := `{"points_rule":"standard","accrual_type":"relative","accrual_value":5}`
	req, _ := http.NewRequest(http.MethodPost, "/admin/rules", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate name is rejected
	req, _ = http.NewRequest(http.MethodPost, "/admin/rules", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/admin/rules", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data rule.RuleListResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Data.Rules, 1)
	assert.Equal(t, "standard", resp.Data.Rules[0].PointsRule)
	assert.Equal(t, models.AccrualTypeRelative, resp.Data.Rules[0].AccrualType)
	assert.Equal(t, 5.0, resp.Data.Rules[0].AccrualValue)
}

func TestCreateRuleInvalidAccrualType(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	r := setupRouter()

	body := `{"points_rule":"standard","accrual_type":"multiplicative","accrual_value":5}`
	req, _ := http.NewRequest(http.MethodPost, "/admin/rules", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRule(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	seeded := models.PointsRule{PointsRule: "standard", AccrualType: models.AccrualTypeRelative, AccrualValue: 5}
	database.DB.Create(&seeded)

	r := setupRouter()

	body := `{"accrual_type":"absolute","accrual_value":50}`
	req, _ := http.NewRequest(http.MethodPut, "/admin/rules/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.PointsRule
	database.DB.First(&reloaded, seeded.ID)
	assert.Equal(t, models.AccrualTypeAbsolute, reloaded.AccrualType)
	assert.Equal(t, 50.0, reloaded.AccrualValue)

	// Unknown rule
	req, _ = http.NewRequest(http.MethodPut, "/admin/rules/99", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRule(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	seeded := models.PointsRule{PointsRule: "standard", AccrualType: models.AccrualTypeRelative, AccrualValue: 5}
	database.DB.Create(&seeded)

	r := setupRouter()

	req, _ := http.NewRequest(http.MethodDelete, "/admin/rules/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.PointsRule{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Deleting again fails
	req, _ = http.NewRequest(http.MethodDelete, "/admin/rules/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
