package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/api/v1/auth"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/services"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(&models.AdminUser{})

	err = db.AutoMigrate(&models.AdminUser{})
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
	logger.Log = zap.NewNop()
}

func seedAdmin(username, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	database.DB.Create(&models.AdminUser{Username: username, Password: string(hash)})
}

func setupRouter() *gin.Engine {
	r := gin.New()
	auth.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestLogin(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	seedAdmin("admin", "secret123")

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"Valid Credentials", `{"username":"admin","password":"secret123"}`, http.StatusOK},
		{"Wrong Password", `{"username":"admin","password":"wrong"}`, http.StatusUnauthorized},
		{"Unknown User", `{"username":"ghost","password":"secret123"}`, http.StatusUnauthorized},
		{"Missing Fields", `{"username":"admin"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter()

			req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					Data auth.LoginResponse `json:"data"`
				}
				json.Unmarshal(w.Body.Bytes(), &resp)
				assert.Equal(t, "admin", resp.Data.Username)
				assert.NotEmpty(t, resp.Data.Token)
			}
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { database.RedisClient = nil }()

	seedAdmin("admin", "secret123")

	r := setupRouter()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":"admin","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data auth.LoginResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	req, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	denylisted, err := services.IsDenylisted(resp.Data.Token)
	assert.NoError(t, err)
	assert.True(t, denylisted)
}
