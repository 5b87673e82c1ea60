package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidAccountType = errors.New("wrong account parameters")
var ErrAccountNotFound = errors.New("account is not found")
var ErrAccountNotActive = errors.New("account is not active")

// CreateAccountInput carries the six mandatory account fields.
type CreateAccountInput struct {
	Phone             string
	Card              string
	Email             string
	EmailNotification bool
	PhoneNotification bool
	Active            bool
}

func CreateAccount(in CreateAccountInput) (*models.Account, error) {
	account := &models.Account{
		Phone:             in.Phone,
		Card:              in.Card,
		Email:             in.Email,
		EmailNotification: in.EmailNotification,
		PhoneNotification: in.PhoneNotification,
		Active:            in.Active,
	}

	if err := database.DB.Create(account).Error; err != nil {
		return nil, err
	}

	return account, nil
}

// FindAccount resolves an account by one of its identifier columns.
// The resolved account is returned by value and passed explicitly into
// whatever operation needs it next.
func FindAccount(accountType models.AccountType, id string) (models.Account, error) {
	var account models.Account

	if !accountType.Valid() || id == "" {
		return account, ErrInvalidAccountType
	}

	if err := database.DB.Where(fmt.Sprintf("%s = ?", accountType), id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrAccountNotFound
		}
		return account, err
	}

	return account, nil
}

// SetAccountActive flips the active flag. When the account is already at the
// target state the call is a silent no-op and no notification fires.
func SetAccountActive(accountType models.AccountType, id string, active bool) error {
	account, err := FindAccount(accountType, id)
	if err != nil {
		return err
	}

	if account.Active == active {
		return nil
	}

	account.Active = active
	if err := database.DB.Model(&account).Update("active", active).Error; err != nil {
		return err
	}

	invalidateBalanceCache(account.ID)
	Notify(account)

	return nil
}

// AccountBalance returns the live balance: the sum of points_amount over
// non-canceled transactions. Cached in redis for an hour; every ledger write
// invalidates the entry.
func AccountBalance(accountID uint) (float64, error) {
	cacheKey := balanceCacheKey(accountID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			if balance, err := strconv.ParseFloat(val, 64); err == nil {
				return balance, nil
			}
		}
	}

	balance, err := sumBalance(database.DB, accountID)
	if err != nil {
		return 0, err
	}

	if database.RedisClient != nil {
		database.RedisClient.Set(database.Ctx, cacheKey, strconv.FormatFloat(balance, 'f', -1, 64), time.Hour)
	}

	return balance, nil
}

// sumBalance aggregates on the given handle so withdraw can reuse it inside
// a locked transaction.
func sumBalance(db *gorm.DB, accountID uint) (float64, error) {
	var balance float64
	err := db.Model(&models.Transaction{}).
		Where("account_id = ? AND canceled = 0", accountID).
		Select("COALESCE(SUM(points_amount), 0)").
		Scan(&balance).Error
	return balance, err
}

func balanceCacheKey(accountID uint) string {
	return fmt.Sprintf("balance:%d", accountID)
}

func invalidateBalanceCache(accountID uint) {
	if database.RedisClient == nil {
		return
	}
	if err := database.RedisClient.Del(database.Ctx, balanceCacheKey(accountID)).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate balance cache",
			zap.Uint("account_id", accountID), zap.Error(err))
	}
}
