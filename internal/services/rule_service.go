package services

import (
	"errors"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrRuleNotFound = errors.New("points rule is not found")
var ErrRuleAlreadyExists = errors.New("points rule with this name already exists")
var ErrInvalidAccrualType = errors.New("accrual type must be relative or absolute")

func FindRuleByName(name string) (models.PointsRule, error) {
	var rule models.PointsRule
	if err := database.DB.Where("points_rule = ?", name).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rule, ErrRuleNotFound
		}
		return rule, err
	}
	return rule, nil
}

func FindRules() ([]models.PointsRule, error) {
	var rules []models.PointsRule
	if err := database.DB.Order("id").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func CreateRule(name string, accrualType models.AccrualType, accrualValue float64) (*models.PointsRule, error) {
	if !accrualType.Valid() {
		return nil, ErrInvalidAccrualType
	}

	var existing models.PointsRule
	result := database.DB.Where("points_rule = ?", name).First(&existing)
	if result.Error == nil {
		return nil, ErrRuleAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	rule := &models.PointsRule{
		PointsRule:   name,
		AccrualType:  accrualType,
		AccrualValue: accrualValue,
	}
	if err := database.DB.Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

func UpdateRule(id uint, accrualType models.AccrualType, accrualValue float64) (*models.PointsRule, error) {
	if !accrualType.Valid() {
		return nil, ErrInvalidAccrualType
	}

	var rule models.PointsRule
	if err := database.DB.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	if err := database.DB.Model(&rule).Updates(map[string]interface{}{
		"accrual_type":  accrualType,
		"accrual_value": accrualValue,
	}).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func DeleteRule(id uint) error {
	result := database.DB.Delete(&models.PointsRule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// SeedDefaultRules inserts a starter rule set when the table is empty.
func SeedDefaultRules() error {
	var count int64
	if err := database.DB.Model(&models.PointsRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.PointsRule{
		{PointsRule: "standard", AccrualType: models.AccrualTypeRelative, AccrualValue: 5},
		{PointsRule: "welcome", AccrualType: models.AccrualTypeAbsolute, AccrualValue: 100},
	}
	if err := database.DB.Create(&defaults).Error; err != nil {
		return err
	}

	logger.Log.Info("Seeded default points rules", zap.Int("count", len(defaults)))
	return nil
}
