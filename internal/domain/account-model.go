package domain

import (
	"strings"
	"time"
)

type UserType string

const (
	UserTypePlayer UserType = "player"
	UserTypeOwner  UserType = "owner"
)

// ParseUserType accepts the names used by the web client and the legacy table names.
func ParseUserType(s string) (UserType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "players":
		return UserTypePlayer, nil
	case "owner", "arena_owner", "arena_owners":
		return UserTypeOwner, nil
	}
	return "", NewError(KindValidation, "Invalid userType")
}

// Account is a player or an arena owner. Email is unique per user type, so one
// address may hold both a player and an owner account.
type Account struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserType          UserType  `gorm:"type:varchar(10);not null;uniqueIndex:uidx_accounts_type_email,priority:1" json:"userType"`
	Email             string    `gorm:"type:varchar(255);not null;uniqueIndex:uidx_accounts_type_email,priority:2" json:"email"`
	PasswordHash      string    `gorm:"type:varchar(255);not null" json:"-"`
	Name              string    `gorm:"type:varchar(100)" json:"name"`
	Phone             string    `gorm:"type:varchar(30)" json:"phone"`
	IsActive          bool      `gorm:"not null;default:false" json:"isActive"`
	VerificationToken *string   `gorm:"type:varchar(64);uniqueIndex:uidx_accounts_verification_token" json:"-"` // sha256 hex
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
