package handlers

import (
	"context"
	"testing"

	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to, token string
	calls     int
}

func (m *recordingMailer) SendVerifyEmail(_ context.Context, to string, token string) error {
	m.calls++
	m.to, m.token = to, token
	return nil
}

func TestMailHandlerSendsQueuedVerification(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandler(mailer)

	err := h.HandleMessage(dto.EventAccountVerifyEmail, `{"user_id":3,"email":"a@b.com","user_type":"player","token":"tok"}`)
	require.NoError(t, err)
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "a@b.com", mailer.to)
	assert.Equal(t, "tok", mailer.token)
}

func TestMailHandlerIgnoresOtherEvents(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandler(mailer)

	assert.NoError(t, h.HandleMessage(dto.EventAccountRegistered, `{"user_id":3}`))
	assert.NoError(t, h.HandleMessage(dto.EventAccountVerified, `not json`))
	assert.Zero(t, mailer.calls)
}

func TestMailHandlerRejectsBadPayload(t *testing.T) {
	h := NewMailHandler(&recordingMailer{})
	assert.Error(t, h.HandleMessage(dto.EventAccountVerifyEmail, `{`))
}
