package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"github.com/Aka-Ayaan/courtify/internal/helper/utils"
	"github.com/Aka-Ayaan/courtify/internal/interfaces"
	"github.com/Aka-Ayaan/courtify/internal/repository"
	"github.com/gofiber/fiber/v2/log"
)

const verificationTokenBytes = 32

type AuthService interface {
	ValidateCredentials(ctx context.Context, input dto.CredentialsQuery) (*dto.Identity, error)
	RegisterAccount(ctx context.Context, input dto.SignupRequest) error
	VerifyToken(ctx context.Context, token string) (domain.UserType, error)
	ResendVerification(ctx context.Context, input dto.ResendRequest) error
	CurrentAccount(ctx context.Context, userID uint) (*dto.Identity, error)
}

type authService struct {
	repo     repository.AccountRepository
	mailer   interfaces.VerificationMailer
	producer interfaces.ProducerHandler // nil when no broker is configured
	auth     helper.Auth
}

func NewAuthService(
	repo repository.AccountRepository,
	mailer interfaces.VerificationMailer,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
) AuthService {
	return &authService{
		repo:     repo,
		mailer:   mailer,
		producer: producer,
		auth:     auth,
	}
}

func parseUserTypeOrDefault(s string) (domain.UserType, error) {
	if strings.TrimSpace(s) == "" {
		return domain.UserTypePlayer, nil
	}
	return domain.ParseUserType(s)
}

func (s *authService) ValidateCredentials(ctx context.Context, input dto.CredentialsQuery) (*dto.Identity, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.NewError(domain.KindValidation, "Email and password required")
	}
	userType, err := parseUserTypeOrDefault(input.UserType)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.FindAccountByEmail(ctx, userType, email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.WrapError(domain.KindNotFound, "Invalid email or password", err)
		}
		return nil, err
	}

	// pending accounts answer 403 even with the right password
	if !account.IsActive {
		return nil, domain.NewError(domain.KindNotVerified, "Please verify your email first")
	}
	if err := s.auth.VerifyPassword(input.Password, account.PasswordHash); err != nil {
		return nil, domain.WrapError(domain.KindAuth, "Invalid email or password", err)
	}

	token, expiresAt, err := s.auth.GenerateToken(account.ID, account.Email, account.UserType)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "Unable to issue token", err)
	}

	identity := identityOf(account)
	identity.Token = token
	identity.ExpiresAt = &expiresAt
	return identity, nil
}

func (s *authService) RegisterAccount(ctx context.Context, input dto.SignupRequest) error {
	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return domain.NewError(domain.KindValidation, "Email and password required")
	}
	if !utils.IsValidEmail(email) {
		return domain.NewError(domain.KindValidation, "Invalid email format")
	}
	userType, err := parseUserTypeOrDefault(input.UserType)
	if err != nil {
		return err
	}

	// the unique index still decides races; this only avoids hashing for known duplicates
	if _, err := s.repo.FindAccountByEmail(ctx, userType, email); err == nil {
		return domain.NewError(domain.KindConflict, "Email already registered")
	} else if !domain.IsKind(err, domain.KindNotFound) {
		return err
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Server error", err)
	}
	token, err := utils.RandomToken(verificationTokenBytes)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Server error", err)
	}
	tokenHash := utils.Sha256Hex(token)

	account := &domain.Account{
		UserType:          userType,
		Email:             email,
		PasswordHash:      hash,
		Name:              strings.TrimSpace(input.Name),
		Phone:             strings.TrimSpace(input.Phone),
		IsActive:          false,
		VerificationToken: &tokenHash,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return err
	}
	log.Infof("account registered id=%d type=%s", account.ID, account.UserType)

	s.publishAccountEvent(dto.EventAccountRegistered, account)

	if err := s.mailer.SendVerifyEmail(ctx, account.Email, token); err != nil {
		return domain.WrapError(domain.KindMail, "Failed to send verification email", err)
	}
	return nil
}

func (s *authService) VerifyToken(ctx context.Context, token string) (domain.UserType, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.NewError(domain.KindValidation, "Invalid verification link")
	}

	account, err := s.repo.ActivateByTokenHash(ctx, utils.Sha256Hex(token))
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", domain.WrapError(domain.KindValidation, "Invalid or expired token", err)
		}
		return "", err
	}

	log.Infof("account verified id=%d type=%s", account.ID, account.UserType)
	s.publishAccountEvent(dto.EventAccountVerified, account)
	return account.UserType, nil
}

func (s *authService) ResendVerification(ctx context.Context, input dto.ResendRequest) error {
	email := utils.NormalizeEmail(input.Email)
	if email == "" {
		return domain.NewError(domain.KindValidation, "Email required")
	}
	userType, err := parseUserTypeOrDefault(input.UserType)
	if err != nil {
		return err
	}

	account, err := s.repo.FindAccountByEmail(ctx, userType, email)
	if err != nil {
		return err
	}
	if account.IsActive {
		return domain.NewError(domain.KindConflict, "Account already verified")
	}

	token, err := utils.RandomToken(verificationTokenBytes)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "Server error", err)
	}
	if err := s.repo.RotateVerificationToken(ctx, account.ID, utils.Sha256Hex(token)); err != nil {
		return err
	}

	if s.enqueueVerifyEmail(account, token) {
		return nil
	}
	if err := s.mailer.SendVerifyEmail(ctx, account.Email, token); err != nil {
		return domain.WrapError(domain.KindMail, "Failed to send verification email", err)
	}
	return nil
}

func (s *authService) CurrentAccount(ctx context.Context, userID uint) (*dto.Identity, error) {
	account, err := s.repo.FindAccountByID(ctx, userID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.WrapError(domain.KindAuth, "Account no longer exists", err)
		}
		return nil, err
	}
	return identityOf(account), nil
}

// enqueueVerifyEmail hands the mail to the queue consumer. False means the
// caller has to send it directly.
func (s *authService) enqueueVerifyEmail(account *domain.Account, token string) bool {
	if s.producer == nil {
		return false
	}

	payload, err := json.Marshal(dto.VerifyEmailEvent{
		UserID:   account.ID,
		Email:    account.Email,
		UserType: string(account.UserType),
		Token:    token,
	})
	if err != nil {
		log.Errorf("[KAFKA] marshal verify email event: %v", err)
		return false
	}
	if err := s.producer.PublishMessage([]byte(dto.EventAccountVerifyEmail), payload); err != nil {
		log.Warnf("[KAFKA] publish %s failed, sending inline: %v", dto.EventAccountVerifyEmail, err)
		return false
	}
	return true
}

func (s *authService) publishAccountEvent(key string, account *domain.Account) {
	if s.producer == nil {
		return
	}

	payload, err := json.Marshal(dto.AccountEvent{
		UserID:     account.ID,
		Email:      account.Email,
		UserType:   string(account.UserType),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Errorf("[KAFKA] marshal %s: %v", key, err)
		return
	}
	if err := s.producer.PublishMessage([]byte(key), payload); err != nil {
		log.Warnf("[KAFKA] publish %s failed: %v", key, err)
	}
}

func identityOf(account *domain.Account) *dto.Identity {
	return &dto.Identity{
		Authenticated: true,
		UserID:        account.ID,
		Email:         account.Email,
		Name:          account.Name,
		UserType:      string(account.UserType),
	}
}
