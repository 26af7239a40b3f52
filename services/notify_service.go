// services/notify_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"glambook-backend/config"
	"glambook-backend/logger"
	"glambook-backend/metrics"
	"glambook-backend/models"
	"glambook-backend/repository"
)

// NotifyService sends booking confirmations through Twilio and records every
// outcome in the tenant's notification ledger. Booking completion never
// waits on it and never fails because of it.
type NotifyService struct {
	cfg    config.TwilioConfig
	client *twilio.RestClient
	log    *zap.Logger
}

func NewNotifyService(cfg config.TwilioConfig) *NotifyService {
	var client *twilio.RestClient
	if cfg.AccountSID != "" && cfg.AuthToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
	}
	return &NotifyService{cfg: cfg, client: client, log: logger.Get()}
}

// SendBookingConfirmation messages the client and appends the {success,
// message} outcome to the ledger. Call it from a goroutine; errors are
// recorded, not returned.
func (s *NotifyService) SendBookingConfirmation(
	ledger *repository.NotificationRepository,
	client models.Client,
	appt models.Appointment,
	services []models.Service,
) {
	var names []string
	for _, svc := range services {
		names = append(names, svc.Name)
	}
	message := fmt.Sprintf("Hi %s! Your appointment for %s on %s is booked. See you soon!",
		client.FullName,
		strings.Join(names, ", "),
		appt.Date.Format("Mon Jan 2 at 15:04"))

	// WhatsApp when the phone is in E.164 form, SMS otherwise
	channel := "sms"
	to := client.Phone
	if strings.HasPrefix(client.Phone, "+") && s.cfg.WhatsAppNumber != "" {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	}

	status := "sent"
	errorMsg := ""
	switch {
	case s.client == nil:
		status = "skipped"
		errorMsg = "notification collaborator not configured"
	case client.Phone == "":
		status = "failed"
		errorMsg = "client has no phone number"
	default:
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(message)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + s.cfg.WhatsAppNumber)
		} else {
			params.SetFrom(s.cfg.PhoneNumber)
		}
		if _, err := s.client.Api.CreateMessage(params); err != nil {
			s.log.Warn("confirmation send failed",
				zap.String("client", client.ID), zap.Error(err))
			status = "failed"
			errorMsg = err.Error()
		}
	}

	metrics.NotificationsSent.WithLabelValues(status).Inc()
	if err := ledger.Append(models.NotificationLog{
		ID:            uuid.NewString(),
		ClientID:      client.ID,
		AppointmentID: appt.ID,
		Channel:       channel,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}); err != nil {
		s.log.Error("notification ledger append failed",
			zap.String("client", client.ID), zap.Error(err))
	}
}
