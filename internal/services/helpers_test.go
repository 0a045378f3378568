package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Aka-Ayaan/courtify/config"
	"github.com/Aka-Ayaan/courtify/infra/database"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.Config{
		DBDriver:    "sqlite",
		DatabaseDSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testAuth() helper.Auth {
	return helper.SetupAuth("test-secret", time.Hour)
}

type sentMail struct {
	To    string
	Token string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendVerifyEmail(_ context.Context, to string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Token: token})
	return nil
}

func (m *fakeMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no verification mail sent")
	return m.sent[len(m.sent)-1].Token
}

type publishedMessage struct {
	Key   string
	Value []byte
}

type fakeProducer struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, publishedMessage{Key: string(key), Value: value})
	return nil
}

func (p *fakeProducer) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Key)
	}
	return out
}
