package transaction

import "time"

type TransactionListItem struct {
	ID                 uint      `json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	AccountID          uint      `json:"account_id"`
	PointsRule         string    `json:"points_rule"`
	PointsAmount       float64   `json:"points_amount"`
	Description        string    `json:"description"`
	PaymentID          string    `json:"payment_id"`
	PaymentAmount      float64   `json:"payment_amount"`
	PaymentTime        int64     `json:"payment_time"`
	Canceled           int64     `json:"canceled"`
	CancellationReason string    `json:"cancellation_reason"`
}

type TransactionListResponse struct {
	Transactions []TransactionListItem `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}
