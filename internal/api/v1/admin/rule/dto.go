package rule

import (
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
)

type CreateRuleInput struct {
	PointsRule   string   `json:"points_rule" binding:"required,min=4"`
	AccrualType  string   `json:"accrual_type" binding:"required,oneof=relative absolute"`
	AccrualValue *float64 `json:"accrual_value" binding:"required"`
}

type UpdateRuleInput struct {
	AccrualType  string   `json:"accrual_type" binding:"required,oneof=relative absolute"`
	AccrualValue *float64 `json:"accrual_value" binding:"required"`
}

type RuleResponse struct {
	ID           uint               `json:"id"`
	PointsRule   string             `json:"points_rule"`
	AccrualType  models.AccrualType `json:"accrual_type"`
	AccrualValue float64            `json:"accrual_value"`
}

type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}
