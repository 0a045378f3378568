package repository

import (
	"context"
	"errors"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/Aka-Ayaan/courtify/internal/helper"
	"gorm.io/gorm"
)

type CourtRepository interface {
	FindOrCreateType(ctx context.Context, typeName string) (*domain.CourtType, error)
	CreateCourt(ctx context.Context, court *domain.Court) error
	ListCourtTypes(ctx context.Context) ([]domain.CourtType, error)
}

type courtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) FindOrCreateType(ctx context.Context, typeName string) (*domain.CourtType, error) {
	db := r.db.WithContext(ctx)
	ct := &domain.CourtType{}

	err := db.Where("type_name = ?", typeName).First(ct).Error
	if err == nil {
		return ct, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("find court type", err)
	}

	ct = &domain.CourtType{TypeName: typeName}
	if err := db.Create(ct).Error; err != nil {
		if !helper.IsDuplicateKey(err) {
			return nil, storageError("create court type", err)
		}
		// lost the race to a concurrent insert
		ct = &domain.CourtType{}
		if err := db.Where("type_name = ?", typeName).First(ct).Error; err != nil {
			return nil, storageError("find court type", err)
		}
	}
	return ct, nil
}

func (r *courtRepository) CreateCourt(ctx context.Context, court *domain.Court) error {
	if err := r.db.WithContext(ctx).Create(court).Error; err != nil {
		return storageError("create court", err)
	}
	return nil
}

func (r *courtRepository) ListCourtTypes(ctx context.Context) ([]domain.CourtType, error) {
	types := []domain.CourtType{}

	if err := r.db.WithContext(ctx).Order("type_name ASC").Find(&types).Error; err != nil {
		return nil, storageError("list court types", err)
	}
	return types, nil
}
