package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/services/auth/internal/models"
)

func (r *GormRepo) findOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where(query, arg).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := account.Validate(); err != nil {
		return nil, fmt.Errorf("account %d: %w", account.ID, err)
	}
	return &account, nil
}

func (r *GormRepo) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, "email = ?", models.NormalizeEmail(email))
}

func (r *GormRepo) FindAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormRepo) CreateAccountIfNotExists(ctx context.Context, a *models.Account) error {
	a.Email = models.NormalizeEmail(a.Email)
	tx := r.DB.WithContext(ctx).Where("email = ?", a.Email).FirstOrCreate(a)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrAccountExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAccountExists
	}
	return nil
}

func (r *GormRepo) SetActive(ctx context.Context, email string, active bool) error {
	res := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
