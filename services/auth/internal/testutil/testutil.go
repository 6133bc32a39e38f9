// Package testutil provides sqlite-backed fixtures for auth service tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/services/auth/internal/migrations"
	"github.com/Skotchmaster/storefront/services/auth/internal/models"
	"github.com/Skotchmaster/storefront/services/auth/internal/repo"
)

var JWTSecret = []byte("test-jwt-secret")

func NewTestDB(t *testing.T) (*gorm.DB, *repo.GormRepo) {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), config.DriverSQLite, filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, migrations.Up(db, config.DriverSQLite))
	t.Cleanup(func() {
		_ = pkgdb.Close(db)
	})

	return db, &repo.GormRepo{DB: db}
}

func NewTestAccount(t *testing.T, r *repo.GormRepo, email, password string, active bool) *models.Account {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	account := &models.Account{
		Email:        email,
		PasswordHash: pwHash,
		FirstName:    "Test",
		LastName:     "User",
		Phone:        "+10000000000",
		IsActive:     active,
	}
	require.NoError(t, r.CreateAccountIfNotExists(context.Background(), account))
	return account
}
