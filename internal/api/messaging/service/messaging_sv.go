package messagingService

import (
	"context"
	"errors"
	"fmt"

	"talksy/internal/api/messaging"
	contextPkg "talksy/pkg/context"
	"talksy/pkg/response"
	"talksy/pkg/smtp"
	"talksy/pkg/whatsapp"

	"github.com/sirupsen/logrus"
)

func (s *messagingService) SendEmail(ctx context.Context, req messaging.EmailRequest) (*messaging.SendResponse, error) {
	if s.smtp == nil {
		return nil, messaging.ErrEmailNotConfigured
	}

	if err := s.smtp.Send(req.ReceiverAddress, req.Subject, req.Message); err != nil {
		if errors.Is(err, smtp.ErrNotConfigured) {
			return nil, messaging.ErrEmailNotConfigured
		}

		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"receiver":   req.ReceiverAddress,
			"error":      err.Error(),
		}).Error("Failed to send email")
		return nil, fmt.Errorf("%w: %v", messaging.ErrSendEmail, err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"receiver":   req.ReceiverAddress,
	}).Info("Email sent")

	return &messaging.SendResponse{Success: true, Message: "Email sent successfully"}, nil
}

func (s *messagingService) SendWhatsapp(ctx context.Context, req messaging.WhatsappRequest) (*messaging.SendResponse, error) {
	if s.whatsapp == nil {
		return nil, messaging.ErrWhatsappNotConfigured
	}

	if _, err := whatsapp.NormalizeNumber(req.Number); err != nil {
		return nil, response.Wrap(400, err)
	}

	if err := s.whatsapp.SendMessage(ctx, req.Number, req.Message); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to send WhatsApp message")
		return nil, fmt.Errorf("%w: %v", messaging.ErrSendWhatsapp, err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
	}).Info("WhatsApp message sent")

	return &messaging.SendResponse{Success: true, Message: "WhatsApp message sent successfully"}, nil
}
