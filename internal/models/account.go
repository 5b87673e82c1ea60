package models

import "time"

// AccountType is the identifier column used to resolve an account.
type AccountType string

const (
	AccountTypePhone AccountType = "phone"
	AccountTypeCard  AccountType = "card"
	AccountTypeEmail AccountType = "email"
)

// AccountTypes lists the identifier columns an account can be looked up by.
var AccountTypes = []AccountType{AccountTypePhone, AccountTypeCard, AccountTypeEmail}

func (t AccountType) Valid() bool {
	for _, at := range AccountTypes {
		if t == at {
			return true
		}
	}
	return false
}

type Account struct {
	ID                uint `gorm:"primarykey"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Phone             string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Card              string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email             string `gorm:"type:varchar(255);uniqueIndex;not null"`
	EmailNotification bool   `gorm:"not null;default:false"`
	PhoneNotification bool   `gorm:"not null;default:false"`
	Active            bool   `gorm:"not null;default:false"`
}
