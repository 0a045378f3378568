package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Aka-Ayaan/courtify/config"
	"github.com/gofiber/fiber/v2/log"
)

//go:embed templates/verify-email.html
var mailTemplates embed.FS

var verifyEmailTemplate = template.Must(template.ParseFS(mailTemplates, "templates/verify-email.html"))

const (
	smtpDialTimeout = 8 * time.Second
	smtpDeadline    = 15 * time.Second
)

type MailService struct {
	user          string
	pass          string
	fromName      string
	subject       string
	host          string
	port          int
	verifyBaseURL string
}

func NewMailService(cfg config.Config) *MailService {
	return &MailService{
		user:          cfg.EmailUser,
		pass:          cfg.EmailPass,
		fromName:      cfg.MailFromName,
		subject:       cfg.MailSubject,
		host:          cfg.SMTPHost,
		port:          cfg.SMTPPort,
		verifyBaseURL: cfg.VerifyURL(),
	}
}

func (s *MailService) VerifyLink(token string) string {
	return fmt.Sprintf("%s?token=%s", s.verifyBaseURL, url.QueryEscape(token))
}

func (s *MailService) SendVerifyEmail(ctx context.Context, to string, token string) error {
	link := s.VerifyLink(token)

	// without credentials (local dev) the link only goes to the log
	if s.user == "" || s.pass == "" {
		log.Warnf("[MAIL] smtp not configured, verify link for %s: %s", to, link)
		return nil
	}

	var body bytes.Buffer
	if err := verifyEmailTemplate.Execute(&body, map[string]string{"Link": link}); err != nil {
		return fmt.Errorf("render verify email: %w", err)
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.fromName, s.user),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", s.subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body.String(),
	}, "\r\n")

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	log.Infof("[MAIL] smtp sending to=%s via=%s", to, addr)

	if err := s.sendSMTP(ctx, addr, to, []byte(msg)); err != nil {
		log.Errorf("[MAIL] send to=%s failed: %v", to, err)
		return err
	}

	log.Infof("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) sendSMTP(ctx context.Context, addr, to string, msg []byte) error {
	dialer := net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	_ = conn.SetDeadline(time.Now().Add(smtpDeadline))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}
	if err := c.Auth(smtp.PlainAuth("", s.user, s.pass, s.host)); err != nil {
		return err
	}

	if err := c.Mail(s.user); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
