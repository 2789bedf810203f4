package messagingService

import (
	"context"

	"talksy/internal/api/messaging"
	"talksy/pkg/smtp"

	"github.com/sirupsen/logrus"
)

type IMessagingService interface {
	SendEmail(ctx context.Context, req messaging.EmailRequest) (*messaging.SendResponse, error)
	SendWhatsapp(ctx context.Context, req messaging.WhatsappRequest) (*messaging.SendResponse, error)
}

// WhatsappSender is the part of the WhatsApp client the service uses.
type WhatsappSender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

type messagingService struct {
	log      *logrus.Logger
	smtp     smtp.ItfSmtp
	whatsapp WhatsappSender
}

func New(log *logrus.Logger, mail smtp.ItfSmtp, wa WhatsappSender) IMessagingService {
	return &messagingService{
		log:      log,
		smtp:     mail,
		whatsapp: wa,
	}
}
