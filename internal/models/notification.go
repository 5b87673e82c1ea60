package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelPhone NotificationChannel = "phone"
)

type NotificationKind string

const (
	NotificationKindActivated      NotificationKind = "activated"
	NotificationKindDeactivated    NotificationKind = "deactivated"
	NotificationKindPointsReceived NotificationKind = "points_received"
)

// NotificationRecord is an audit row for every notification attempt.
// Sends are fire-and-forget, so this is the only place a failed delivery
// is visible.
type NotificationRecord struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"precision:3"`
	AccountID uint      `gorm:"index;not null"`
	Channel   NotificationChannel `gorm:"type:varchar(20);not null"`
	Kind      NotificationKind    `gorm:"type:varchar(50);not null"`
	Payload   datatypes.JSON      `gorm:"type:json"`
	Sent      bool                `gorm:"not null;default:false"`
}
