package models

import "time"

type AccrualType string

const (
	// AccrualTypeRelative earns a percentage of the payment amount.
	AccrualTypeRelative AccrualType = "relative"
	// AccrualTypeAbsolute earns a flat number of points per payment.
	AccrualTypeAbsolute AccrualType = "absolute"
)

func (t AccrualType) Valid() bool {
	return t == AccrualTypeRelative || t == AccrualTypeAbsolute
}

type PointsRule struct {
	ID           uint `gorm:"primarykey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	PointsRule   string      `gorm:"type:varchar(100);uniqueIndex;not null"`
	AccrualType  AccrualType `gorm:"type:varchar(20);not null"`
	AccrualValue float64     `gorm:"type:decimal(20,8);not null"`
}

// Accrue converts a payment amount into earned points.
func (r *PointsRule) Accrue(paymentAmount float64) float64 {
	switch r.AccrualType {
	case AccrualTypeRelative:
		return paymentAmount / 100 * r.AccrualValue
	case AccrualTypeAbsolute:
		return r.AccrualValue
	}
	return 0
}
