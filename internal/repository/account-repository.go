package repository

import (
	"context"
	"errors"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"gorm.io/gorm"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	FindAccountByEmail(ctx context.Context, userType domain.UserType, email string) (*domain.Account, error)
	FindAccountByID(ctx context.Context, id uint) (*domain.Account, error)
	ActivateByTokenHash(ctx context.Context, hash string) (*domain.Account, error)
	RotateVerificationToken(ctx context.Context, id uint, hash string) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account == nil {
		return domain.NewError(domain.KindInternal, "nil account")
	}

	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return domain.WrapError(domain.KindConflict, "Email already registered", err)
		}
		return storageError("create account", err)
	}
	return nil
}

func (r *accountRepository) FindAccountByEmail(ctx context.Context, userType domain.UserType, email string) (*domain.Account, error) {
	account := &domain.Account{}

	err := r.db.WithContext(ctx).
		Where("user_type = ? AND email = ?", userType, email).
		First(account).Error
	if err != nil {
		return nil, notFoundOr("find account by email", "Account not found", err)
	}
	return account, nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, id uint) (*domain.Account, error) {
	account := &domain.Account{}

	if err := r.db.WithContext(ctx).First(account, id).Error; err != nil {
		return nil, notFoundOr("find account by id", "Account not found", err)
	}
	return account, nil
}

// ActivateByTokenHash flips the pending account owning hash to active and clears
// the token in one conditional update. Zero affected rows means the token was
// unknown or already consumed.
func (r *accountRepository) ActivateByTokenHash(ctx context.Context, hash string) (*domain.Account, error) {
	var activated domain.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("verification_token = ?", hash).First(&activated).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Account{}).
			Where("id = ? AND verification_token = ?", activated.ID, hash).
			Updates(map[string]interface{}{
				"is_active":          true,
				"verification_token": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, notFoundOr("activate account", "Invalid or expired token", err)
	}

	activated.IsActive = true
	activated.VerificationToken = nil
	return &activated, nil
}

func (r *accountRepository) RotateVerificationToken(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ? AND is_active = ?", id, false).
		Update("verification_token", hash)
	if res.Error != nil {
		if helper.IsDuplicateKey(res.Error) {
			return domain.WrapError(domain.KindConflict, "Token collision, try again", res.Error)
		}
		return storageError("rotate verification token", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.WrapError(domain.KindConflict, "Account already verified", errors.New("no pending account"))
	}
	return nil
}
