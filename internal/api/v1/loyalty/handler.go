package loyalty

import (
	"errors"
	"net/http"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/services"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/utils"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deposit godoc
// @Summary Deposit loyalty points
// @Description Record earned points for a payment against an active account
// @Tags loyalty
// @Accept  json
// @Produce  json
// @Param   input     body   DepositInput  true  "Deposit fields"
// @Success 200 {object} utils.Response{data=TransactionResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /loyalty/deposit [post]
func Deposit(c *gin.Context) {
	var input DepositInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	logger.Log.Info("Deposit transaction input",
		zap.String("account_type", input.AccountType),
		zap.String("account_id", input.AccountID),
		zap.String("points_rule", input.PointsRule),
		zap.String("payment_id", input.PaymentID))

	transaction, err := services.Deposit(services.DepositInput{
		AccountType:   models.AccountType(input.AccountType),
		AccountID:     input.AccountID,
		PointsRule:    input.PointsRule,
		Description:   input.Description,
		PaymentID:     input.PaymentID,
		PaymentAmount: *input.PaymentAmount,
		PaymentTime:   input.PaymentTime,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Points deposited successfully", toTransactionResponse(*transaction)))
}

// Withdraw godoc
// @Summary Withdraw loyalty points
// @Description Spend points from an active account with sufficient balance
// @Tags loyalty
// @Accept  json
// @Produce  json
// @Param   input     body   WithdrawInput  true  "Withdraw fields"
// @Success 200 {object} utils.Response{data=TransactionResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /loyalty/withdraw [post]
func Withdraw(c *gin.Context) {
	var input WithdrawInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	logger.Log.Info("Withdraw loyalty points transaction input",
		zap.String("account_type", input.AccountType),
		zap.String("account_id", input.AccountID),
		zap.Float64("points_amount", *input.PointsAmount))

	transaction, err := services.Withdraw(models.AccountType(input.AccountType), input.AccountID, *input.PointsAmount, input.Description)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Points withdrawn successfully", toTransactionResponse(*transaction)))
}

// Cancel godoc
// @Summary Cancel a transaction
// @Description Void a live transaction, excluding it from the balance
// @Tags loyalty
// @Accept  json
// @Produce  json
// @Param   input     body   CancelInput  true  "Cancel fields"
// @Success 200 {object} utils.Response{data=TransactionResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /loyalty/cancel [post]
func Cancel(c *gin.Context) {
	var input CancelInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	transaction, err := services.Cancel(input.TransactionID, input.CancellationReason)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transaction canceled successfully", toTransactionResponse(*transaction)))
}

// respondLedgerError maps service errors onto the structured 400 responses.
// All business failures here are terminal for the request and logged by the
// request middleware.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAccountType):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Wrong account parameters"))
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Account is not found"))
	case errors.Is(err, services.ErrAccountNotActive):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Account is not active"))
	case errors.Is(err, services.ErrWrongAmount):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Wrong loyalty points amount"))
	case errors.Is(err, services.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Insufficient funds"))
	case errors.Is(err, services.ErrCancelReasonMissing):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Cancellation reason is not specified"))
	case errors.Is(err, services.ErrTransactionNotFound):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Transaction is not found"))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Internal error"))
	}
}

func toTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
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
	}
}
