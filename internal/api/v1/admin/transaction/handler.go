package transaction

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/services"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ListTransactions godoc
// @Summary List ledger transactions
// @Description Get a paginated list of ledger transactions with filtering. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param account_id query int false "Filter by account ID"
// @Param rule query string false "Filter by rule label"
// @Param state query string false "Filter by state (live or canceled)"
// @Param start_time query string false "Filter by start time (RFC3339)"
// @Param end_time query string false "Filter by end time (RFC3339)"
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions [get]
func ListTransactions(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return
	}

	filter := services.TransactionFilter{
		Page:  page,
		Limit: limit,
	}

	if !bindFilter(c, &filter, true) {
		return
	}

	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch transactions"))
		return
	}

	var items []TransactionListItem
	for _, t := range transactions {
		items = append(items, TransactionListItem{
			ID:                 t.ID,
			CreatedAt:          t.CreatedAt,
			AccountID:          t.AccountID,
			PointsRule:         t.PointsRule,
			PointsAmount:       t.PointsAmount,
			Description:        t.Description,
			PaymentID:          t.PaymentID,
			PaymentAmount:      t.PaymentAmount,
			PaymentTime:        t.PaymentTime,
			Canceled:           t.Canceled,
			CancellationReason: t.CancellationReason,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: items,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}))
}

// ExportTransactions godoc
// @Summary Export ledger transactions
// @Description Export ledger transactions to CSV. Admin only.
// @Tags admin
// @Produce text/csv
// @Security Bearer
// @Param account_id query int false "Filter by account ID"
// @Param rule query string false "Filter by rule label"
// @Param state query string false "Filter by state (live or canceled)"
// @Param start_time query string false "Filter by start time (RFC3339)"
// @Param end_time query string false "Filter by end time (RFC3339)"
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions/export [get]
func ExportTransactions(c *gin.Context) {
	filter := services.TransactionFilter{
		Page:  1,
		Limit: 10000, // Hard limit for safety
	}

	if !bindFilter(c, &filter, false) {
		return
	}

	transactions, _, err := services.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch transactions"))
		return
	}

	csvContent, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to generate CSV"))
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csvContent)
}

// bindFilter fills filter from the query string. With strict=true malformed
// values produce a 400; the export path skips malformed values instead.
func bindFilter(c *gin.Context, filter *services.TransactionFilter, strict bool) bool {
	if accountIDStr, exists := c.GetQuery("account_id"); exists {
		accountID, err := strconv.Atoi(accountIDStr)
		if err != nil {
			if strict {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid account_id"))
				return false
			}
		} else {
			id := uint(accountID)
			filter.AccountID = &id
		}
	}

	if ruleStr, exists := c.GetQuery("rule"); exists {
		filter.PointsRule = &ruleStr
	}

	if state, exists := c.GetQuery("state"); exists {
		switch state {
		case "live":
			filter.LiveOnly = true
		case "canceled":
			filter.CanceledOnly = true
		default:
			if strict {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid state"))
				return false
			}
		}
	}

	if startTimeStr, exists := c.GetQuery("start_time"); exists {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err != nil {
			if strict {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid start_time format"))
				return false
			}
		} else {
			filter.StartTime = &startTime
		}
	}

	if endTimeStr, exists := c.GetQuery("end_time"); exists {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err != nil {
			if strict {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid end_time format"))
				return false
			}
		} else {
			filter.EndTime = &endTime
		}
	}

	return true
}
