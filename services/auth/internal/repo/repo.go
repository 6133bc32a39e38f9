package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrAccountExists = errors.New("account already exists")
)

type GormRepo struct {
	DB *gorm.DB
}
