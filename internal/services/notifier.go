package services

import (
	"encoding/json"
	"fmt"

	"github.com/MikhailShapshay/test-task-loyalty-service/config"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/MikhailShapshay/test-task-loyalty-service/internal/models"
	"github.com/MikhailShapshay/test-task-loyalty-service/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/datatypes"
)

// Notify tells the account holder about an activation state change.
// Sends are fire-and-forget: a failed delivery is logged and recorded,
// never returned to the caller.
func Notify(account models.Account) {
	kind := models.NotificationKindDeactivated
	if account.Active {
		kind = models.NotificationKindActivated
	}

	if account.Email != "" && account.EmailNotification {
		var subject, body string
		if account.Active {
			balance, err := AccountBalance(account.ID)
			if err != nil {
				logger.Log.Warn("Failed to compute balance for activation mail",
					zap.Uint("account_id", account.ID), zap.Error(err))
			}
			subject = "Account activated"
			body = fmt.Sprintf("Your account is activated. Your balance %v", balance)
		} else {
			subject = "Account deactivated"
			body = "Your account is deactivated"
		}

		sent := sendEmail(account.Email, subject, body)
		recordNotification(account.ID, models.NotificationChannelEmail, kind,
			map[string]interface{}{"subject": subject, "body": body}, sent)
	}

	if account.Phone != "" && account.PhoneNotification {
		state := "deactivated"
		if account.Active {
			state = "activated"
		}
		// instead of an SMS component
		logger.Log.Info("Account notification",
			zap.String("phone", account.Phone), zap.String("state", state))
		recordNotification(account.ID, models.NotificationChannelPhone, kind,
			map[string]interface{}{"state": state}, true)
	}
}

// NotifyPointsReceived tells the account holder about a deposit.
func NotifyPointsReceived(account models.Account, pointsAmount, balance float64) {
	message := fmt.Sprintf("You received %v. Your balance %v", pointsAmount, balance)

	if account.Email != "" && account.EmailNotification {
		sent := sendEmail(account.Email, "Loyalty points received", message)
		recordNotification(account.ID, models.NotificationChannelEmail, models.NotificationKindPointsReceived,
			map[string]interface{}{"points_amount": pointsAmount, "balance": balance}, sent)
	}

	if account.Phone != "" && account.PhoneNotification {
		// instead of an SMS component
		logger.Log.Info("Points notification",
			zap.String("phone", account.Phone), zap.String("message", message))
		recordNotification(account.ID, models.NotificationChannelPhone, models.NotificationKindPointsReceived,
			map[string]interface{}{"points_amount": pointsAmount, "balance": balance}, true)
	}
}

func sendEmail(to, subject, body string) bool {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config for mail send", zap.Error(err))
		return false
	}

	if cfg.SMTPHost == "" {
		logger.Log.Debug("SMTP is not configured, skipping mail send", zap.String("to", to))
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		logger.Log.Error("Failed to send mail",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return false
	}

	return true
}

func recordNotification(accountID uint, channel models.NotificationChannel, kind models.NotificationKind, payload map[string]interface{}, sent bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("Failed to marshal notification payload", zap.Error(err))
		return
	}

	record := &models.NotificationRecord{
		AccountID: accountID,
		Channel:   channel,
		Kind:      kind,
		Payload:   datatypes.JSON(data),
		Sent:      sent,
	}
	if err := database.DB.Create(record).Error; err != nil {
		logger.Log.Error("Failed to record notification",
			zap.Uint("account_id", accountID), zap.Error(err))
	}
}
