package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/services/auth/internal/models"
	"github.com/Skotchmaster/storefront/services/auth/internal/repo"
	"github.com/Skotchmaster/storefront/services/auth/internal/testutil"
)

func TestGormRepo_FindAccount(t *testing.T) {
	_, r := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestAccount(t, r, " A@X.com ", "secret", true)
	assert.Equal(t, "a@x.com", created.Email)
	require.NotZero(t, created.ID)

	byEmail, err := r.FindAccountByEmail(ctx, "a@X.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.True(t, byEmail.IsActive)
	assert.False(t, byEmail.IsVerified)

	byID, err := r.FindAccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = r.FindAccountByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.FindAccountByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestGormRepo_CreateAccountIfNotExists_Conflict(t *testing.T) {
	_, r := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestAccount(t, r, "a@x.com", "secret", true)

	dup := &models.Account{Email: "A@x.com", PasswordHash: "h"}
	assert.ErrorIs(t, r.CreateAccountIfNotExists(ctx, dup), repo.ErrAccountExists)
}

func TestGormRepo_CreateInactive(t *testing.T) {
	_, r := testutil.NewTestDB(t)

	created := testutil.NewTestAccount(t, r, "off@x.com", "secret", false)

	got, err := r.FindAccountByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestGormRepo_SetActive(t *testing.T) {
	_, r := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestAccount(t, r, "a@x.com", "secret", true)

	require.NoError(t, r.SetActive(ctx, "A@x.com", false))
	got, err := r.FindAccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, r.SetActive(ctx, "missing@x.com", false), repo.ErrNotFound)
}

func TestGormRepo_InvalidRowRejected(t *testing.T) {
	db, r := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestAccount(t, r, "a@x.com", "secret", true)
	require.NoError(t, db.Model(&models.Account{}).Where("id = ?", created.ID).Update("password_hash", "").Error)

	_, err := r.FindAccountByID(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrInvalidRow)
}
