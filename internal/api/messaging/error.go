package messaging

import (
	"errors"

	"talksy/pkg/response"
)

var (
	ErrEmailNotConfigured    = response.NewError(503, "email is not configured")
	ErrWhatsappNotConfigured = response.NewError(503, "WhatsApp is not configured")
	ErrSendEmail             = errors.New("Failed to send email")
	ErrSendWhatsapp          = errors.New("Failed to send WhatsApp message")
)
