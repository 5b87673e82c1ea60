package services

import (
	"errors"

	"github.com/MikhailShapshay/test-task-loyalty-service/config"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

func LoginAdmin(username, password string) (string, *models.AdminUser, error) {
	var admin models.AdminUser
	if err := database.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return "", nil, err
	}

	return token, &admin, nil
}

// EnsureAdminUser creates the admin account from config on first boot.
func EnsureAdminUser(cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	var existing models.AdminUser
	result := database.DB.Where("username = ?", cfg.AdminUsername).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.AdminUser{
		Username: cfg.AdminUsername,
		Password: string(hashedPassword),
	}
	return database.DB.Create(admin).Error
}
