package account

import "time"

type CreateAccountInput struct {
	Phone             string `json:"phone" binding:"required,min=6"`
	Card              string `json:"card" binding:"required,min=12"`
	Email             string `json:"email" binding:"required,email"`
	EmailNotification *bool  `json:"email_notification" binding:"required"`
	PhoneNotification *bool  `json:"phone_notification" binding:"required"`
	Active            *bool  `json:"active" binding:"required"`
}

// AccountResponse defines the response structure for account information.
type AccountResponse struct {
	ID                uint      `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Phone             string    `json:"phone"`
	Card              string    `json:"card"`
	Email             string    `json:"email"`
	EmailNotification bool      `json:"email_notification"`
	PhoneNotification bool      `json:"phone_notification"`
	Active            bool      `json:"active"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

type StatusResponse struct {
	Success bool `json:"success"`
}
