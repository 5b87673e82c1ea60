package account

import (
	"errors"
	"net/http"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/services"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// Create godoc
// @Summary Create a loyalty account
// @Description Create an account identified by phone, card and email
// @Tags account
// @Accept  json
// @Produce  json
// @Param   input     body   CreateAccountInput  true  "Account fields"
// @Success 201 {object} utils.Response{data=AccountResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /account [post]
func Create(c *gin.Context) {
	var input CreateAccountInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	account, err := services.CreateAccount(services.CreateAccountInput{
		Phone:             input.Phone,
		Card:              input.Card,
		Email:             input.Email,
		EmailNotification: *input.EmailNotification,
		PhoneNotification: *input.PhoneNotification,
		Active:            *input.Active,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create account"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Account created successfully", toAccountResponse(*account)))
}

// Activate godoc
// @Summary Activate an account
// @Description Activate an account resolved by identifier type and value
// @Tags account
// @Produce  json
// @Param   type   path   string  true  "Identifier type (phone, card or email)"
// @Param   id     path   string  true  "Identifier value"
// @Success 200 {object} utils.Response{data=StatusResponse}
// @Failure 400 {object} utils.Response
// @Router /account/{type}/{id}/activate [get]
func Activate(c *gin.Context) {
	setActive(c, true)
}

// Deactivate godoc
// @Summary Deactivate an account
// @Description Deactivate an account resolved by identifier type and value
// @Tags account
// @Produce  json
// @Param   type   path   string  true  "Identifier type (phone, card or email)"
// @Param   id     path   string  true  "Identifier value"
// @Success 200 {object} utils.Response{data=StatusResponse}
// @Failure 400 {object} utils.Response
// @Router /account/{type}/{id}/deactivate [get]
func Deactivate(c *gin.Context) {
	setActive(c, false)
}

func setActive(c *gin.Context, active bool) {
	accountType := models.AccountType(c.Param("type"))
	id := c.Param("id")

	if err := services.SetAccountActive(accountType, id, active); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("OK", StatusResponse{Success: true}))
}

// Balance godoc
// @Summary Get account balance
// @Description Live balance: sum of non-canceled transaction amounts
// @Tags account
// @Produce  json
// @Param   type   path   string  true  "Identifier type (phone, card or email)"
// @Param   id     path   string  true  "Identifier value"
// @Success 200 {object} utils.Response{data=BalanceResponse}
// @Failure 400 {object} utils.Response
// @Router /account/{type}/{id}/balance [get]
func Balance(c *gin.Context) {
	accountType := models.AccountType(c.Param("type"))
	id := c.Param("id")

	account, err := services.FindAccount(accountType, id)
	if err != nil {
		respondAccountError(c, err)
		return
	}

	balance, err := services.AccountBalance(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to compute balance"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("OK", BalanceResponse{Balance: balance}))
}

// respondAccountError maps lookup failures onto the 400 responses the API
// promises. Account not-found is deliberately a 400, not a 404.
func respondAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAccountType):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Wrong account parameters"))
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Account is not found"))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Internal error"))
	}
}

func toAccountResponse(a models.Account) AccountResponse {
	return AccountResponse{
		ID:                a.ID,
		CreatedAt:         a.CreatedAt,
		Phone:             a.Phone,
		Card:              a.Card,
		Email:             a.Email,
		EmailNotification: a.EmailNotification,
		PhoneNotification: a.PhoneNotification,
		Active:            a.Active,
	}
}
