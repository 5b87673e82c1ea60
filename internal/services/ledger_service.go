package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrWrongAmount = errors.New("wrong loyalty points amount")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrTransactionNotFound = errors.New("transaction is not found")
var ErrCancelReasonMissing = errors.New("cancellation reason is not specified")

// DepositInput carries a point-earning payment event.
type DepositInput struct {
	AccountType   models.AccountType
	AccountID     string
	PointsRule    string
	Description   string
	PaymentID     string
	PaymentAmount float64
	PaymentTime   int64
}

// Deposit records earned points for a payment. The rule named by PointsRule
// decides how the payment amount converts into points; a rule that does not
// exist is tolerated and earns 0 points.
func Deposit(in DepositInput) (*models.Transaction, error) {
	account, err := FindAccount(in.AccountType, in.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, ErrAccountNotActive
	}

	var pointsAmount float64
	rule, err := FindRuleByName(in.PointsRule)
	if err == nil {
		pointsAmount = rule.Accrue(in.PaymentAmount)
	} else if !errors.Is(err, ErrRuleNotFound) {
		return nil, err
	}

	transaction := &models.Transaction{
		AccountID:     account.ID,
		PointsRule:    in.PointsRule,
		PointsAmount:  pointsAmount,
		Description:   in.Description,
		PaymentID:     in.PaymentID,
		PaymentAmount: in.PaymentAmount,
		PaymentTime:   in.PaymentTime,
	}

	if err := database.DB.Create(transaction).Error; err != nil {
		return nil, err
	}

	invalidateBalanceCache(account.ID)

	balance, err := AccountBalance(account.ID)
	if err != nil {
		logger.Log.Warn("Failed to compute balance for notification",
			zap.Uint("account_id", account.ID), zap.Error(err))
		balance = pointsAmount
	}
	NotifyPointsReceived(account, pointsAmount, balance)

	return transaction, nil
}

// Withdraw spends points. The balance check and the insert run in one
// database transaction with the account row locked, so two concurrent
// withdrawals cannot both pass the insufficient-funds gate.
func Withdraw(accountType models.AccountType, accountID string, pointsAmount float64, description string) (*models.Transaction, error) {
	account, err := FindAccount(accountType, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, ErrAccountNotActive
	}
	if pointsAmount <= 0 {
		return nil, ErrWrongAmount
	}

	transaction := &models.Transaction{
		AccountID:    account.ID,
		PointsRule:   models.WithdrawRuleLabel,
		PointsAmount: -pointsAmount,
		Description:  description,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		locked := tx
		// sqlite has no FOR UPDATE; its single-writer model already
		// serializes the check-then-insert.
		if tx.Dialector.Name() == "postgres" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var row models.Account
		if err := locked.First(&row, account.ID).Error; err != nil {
			return err
		}

		balance, err := sumBalance(tx, account.ID)
		if err != nil {
			return err
		}
		if balance < pointsAmount {
			return ErrInsufficientFunds
		}

		return tx.Create(transaction).Error
	})
	if err != nil {
		return nil, err
	}

	invalidateBalanceCache(account.ID)

	return transaction, nil
}

// Cancel voids a live transaction, excluding it from the balance. A canceled
// transaction is not found by the live-row lookup, so a second cancel is
// rejected as not found.
func Cancel(transactionID uint, reason string) (*models.Transaction, error) {
	if len(reason) < 2 {
		return nil, ErrCancelReasonMissing
	}

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND canceled = 0", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	transaction.Canceled = time.Now().Unix()
	transaction.CancellationReason = reason
	if err := database.DB.Model(&transaction).Updates(map[string]interface{}{
		"canceled":            transaction.Canceled,
		"cancellation_reason": transaction.CancellationReason,
	}).Error; err != nil {
		return nil, err
	}

	invalidateBalanceCache(transaction.AccountID)

	return &transaction, nil
}

// TransactionFilter defines criteria for filtering ledger transactions
type TransactionFilter struct {
	AccountID    *uint
	PointsRule   *string
	CanceledOnly bool
	LiveOnly     bool
	StartTime    *time.Time
	EndTime      *time.Time
	Page         int
	Limit        int
}

// FindTransactions retrieves a paginated list of ledger transactions with filtering
func FindTransactions(filter TransactionFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := database.DB.Model(&models.Transaction{})

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.PointsRule != nil {
		query = query.Where("points_rule = ?", *filter.PointsRule)
	}
	if filter.CanceledOnly {
		query = query.Where("canceled <> 0")
	}
	if filter.LiveOnly {
		query = query.Where("canceled = 0")
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GenerateTransactionCSV generates a CSV file content for ledger transactions
func GenerateTransactionCSV(transactions []models.Transaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{
		"ID", "Time", "Account ID", "Rule", "Points Amount",
		"Description", "Payment ID", "Payment Amount", "Payment Time",
		"Canceled", "Cancellation Reason",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range transactions {
		canceled := ""
		if t.Canceled != 0 {
			canceled = time.Unix(t.Canceled, 0).Format(time.RFC3339)
		}
		record := []string{
			fmt.Sprintf("%d", t.ID),
			t.CreatedAt.Format(time.RFC3339Nano),
			fmt.Sprintf("%d", t.AccountID),
			t.PointsRule,
			fmt.Sprintf("%.2f", t.PointsAmount),
			t.Description,
			t.PaymentID,
			fmt.Sprintf("%.2f", t.PaymentAmount),
			fmt.Sprintf("%d", t.PaymentTime),
			canceled,
			t.CancellationReason,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
