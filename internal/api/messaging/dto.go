package messaging

type EmailRequest struct {
	ReceiverAddress string `json:"receiver_address" validate:"required,email"`
	Subject         string `json:"subject" validate:"required,max=200"`
	Message         string `json:"message" validate:"required,max=10000"`
}

type WhatsappRequest struct {
	Number  string `json:"number" validate:"required,min=8,max=20"`
	Message string `json:"message" validate:"required,max=4096"`
}

type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
