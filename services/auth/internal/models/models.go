package models

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidRow = errors.New("invalid account row")

type Account struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FirstName    string    `gorm:"not null"`
	LastName     string    `gorm:"not null"`
	Phone        string    `gorm:"not null"`
	IsActive     bool      `gorm:"not null"` // no gorm default: false must be writable on create
	IsVerified   bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (Account) TableName() string { return "accounts" }

// Validate rejects rows that cannot back an authentication decision.
func (a *Account) Validate() error {
	switch {
	case a.ID == 0:
		return errors.Join(ErrInvalidRow, errors.New("missing id"))
	case a.Email == "":
		return errors.Join(ErrInvalidRow, errors.New("missing email"))
	case a.PasswordHash == "":
		return errors.Join(ErrInvalidRow, errors.New("missing password hash"))
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
