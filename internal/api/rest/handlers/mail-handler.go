package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/internal/interfaces"
	"github.com/gofiber/fiber/v2/log"
)

const mailSendTimeout = 30 * time.Second

// MailHandler consumes account events and sends queued verification mails.
type MailHandler struct {
	mailer interfaces.VerificationMailer
}

func NewMailHandler(mailer interfaces.VerificationMailer) *MailHandler {
	return &MailHandler{mailer: mailer}
}

func (h *MailHandler) HandleMessage(key, message string) error {
	// registered/verified events share the topic
	if key != dto.EventAccountVerifyEmail {
		return nil
	}

	var event dto.VerifyEmailEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Errorf("[MAIL] invalid event payload: %s", message)
		return err
	}

	log.Infof("[MAIL] verify email event received: user_id=%d email=%s", event.UserID, event.Email)

	ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
	defer cancel()
	return h.mailer.SendVerifyEmail(ctx, event.Email, event.Token)
}
