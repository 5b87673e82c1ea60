package loyalty

import "time"

type DepositInput struct {
	AccountID     string   `json:"account_id" binding:"required,numeric"`
	AccountType   string   `json:"account_type" binding:"required,min=4"`
	PointsRule    string   `json:"loyalty_points_rule" binding:"required,min=4"`
	Description   string   `json:"description" binding:"required,min=2"`
	PaymentID     string   `json:"payment_id" binding:"required,min=4"`
	PaymentAmount *float64 `json:"payment_amount" binding:"required"`
	PaymentTime   int64    `json:"payment_time" binding:"required"`
}

type WithdrawInput struct {
	AccountID    string   `json:"account_id" binding:"required,numeric"`
	AccountType  string   `json:"account_type" binding:"required,min=4"`
	PointsAmount *float64 `json:"points_amount" binding:"required"`
	Description  string   `json:"description" binding:"required,min=2"`
}

type CancelInput struct {
	TransactionID      uint   `json:"transaction_id" binding:"required"`
	CancellationReason string `json:"cancellation_reason" binding:"required,min=2"`
}

// TransactionResponse defines the response structure for a ledger transaction.
type TransactionResponse struct {
	ID                 uint      `json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	AccountID          uint      `json:"account_id"`
	PointsRule         string    `json:"points_rule"`
	PointsAmount       float64   `json:"points_amount"`
	Description        string    `json:"description"`
	PaymentID          string    `json:"payment_id,omitempty"`
	PaymentAmount      float64   `json:"payment_amount,omitempty"`
	PaymentTime        int64     `json:"payment_time,omitempty"`
	Canceled           int64     `json:"canceled"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
}
