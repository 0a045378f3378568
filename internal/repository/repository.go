package repository

import (
	"errors"

	"github.com/Aka-Ayaan/courtify/internal/domain"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

const dbErrorMessage = "Database error"

func storageError(op string, err error) error {
	log.Errorf("[DB] %s: %v", op, err)
	return domain.WrapError(domain.KindStorage, dbErrorMessage, err)
}

// notFoundOr maps gorm.ErrRecordNotFound to NotFound with msg and anything else to Storage.
func notFoundOr(op, msg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.WrapError(domain.KindNotFound, msg, err)
	}
	return storageError(op, err)
}
