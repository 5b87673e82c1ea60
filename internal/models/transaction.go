package models

import "time"

// WithdrawRuleLabel marks transactions created by a withdraw instead of an
// accrual rule. It is a label, not a PointsRule reference.
const WithdrawRuleLabel = "withdraw"

// Transaction is a single signed points movement. Deposits are positive,
// withdrawals negative. Canceled holds a unix timestamp when the transaction
// was voided, 0 while it is live; only live rows count towards the balance.
type Transaction struct {
	ID                 uint      `gorm:"primarykey"`
	CreatedAt          time.Time `gorm:"precision:3"`
	AccountID          uint      `gorm:"index;not null"`
	PointsRule         string    `gorm:"type:varchar(100);not null"`
	PointsAmount       float64   `gorm:"type:decimal(20,8);not null"`
	Description        string    `gorm:"type:text"`
	PaymentID          string    `gorm:"type:varchar(100)"`
	PaymentAmount      float64   `gorm:"type:decimal(20,8)"`
	PaymentTime        int64     `gorm:"default:0"`
	Canceled           int64     `gorm:"index;not null;default:0"`
	CancellationReason string    `gorm:"type:text"`
}
