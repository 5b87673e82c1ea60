package rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/services"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ListRules godoc
// @Summary List points rules
// @Description Get all accrual rules. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=RuleListResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/rules [get]
func ListRules(c *gin.Context) {
	rules, err := services.FindRules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch rules"))
		return
	}

	items := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		items = append(items, toRuleResponse(r))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rules retrieved successfully", RuleListResponse{Rules: items}))
}

// CreateRule godoc
// @Summary Create a points rule
// @Description Create a named accrual rule. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param   input     body   CreateRuleInput  true  "Rule fields"
// @Success 201 {object} utils.Response{data=RuleResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/rules [post]
func CreateRule(c *gin.Context) {
	var input CreateRuleInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	rule, err := services.CreateRule(input.PointsRule, models.AccrualType(input.AccrualType), *input.AccrualValue)
	if err != nil {
		if errors.Is(err, services.ErrRuleAlreadyExists) {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		if errors.Is(err, services.ErrInvalidAccrualType) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create rule"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Rule created successfully", toRuleResponse(*rule)))
}

// UpdateRule godoc
// @Summary Update a points rule
// @Description Change a rule's accrual type or value. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param   id        path   int              true  "Rule ID"
// @Param   input     body   UpdateRuleInput  true  "Rule fields"
// @Success 200 {object} utils.Response{data=RuleResponse}
// @Failure 400 {object} utils.Response
// @Router /admin/rules/{id} [put]
func UpdateRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid rule ID"))
		return
	}

	var input UpdateRuleInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	rule, err := services.UpdateRule(uint(id), models.AccrualType(input.AccrualType), *input.AccrualValue)
	if err != nil {
		if errors.Is(err, services.ErrRuleNotFound) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update rule"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rule updated successfully", toRuleResponse(*rule)))
}

// DeleteRule godoc
// @Summary Delete a points rule
// @Description Remove a rule; existing transactions keep their rule label. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param   id   path   int  true  "Rule ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/rules/{id} [delete]
func DeleteRule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid rule ID"))
		return
	}

	if err := services.DeleteRule(uint(id)); err != nil {
		if errors.Is(err, services.ErrRuleNotFound) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete rule"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rule deleted successfully", nil))
}

func toRuleResponse(r models.PointsRule) RuleResponse {
	return RuleResponse{
		ID:           r.ID,
		PointsRule:   r.PointsRule,
		AccrualType:  r.AccrualType,
		AccrualValue: r.AccrualValue,
	}
}
