package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/services/auth/internal/repo"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(context.Background(), append([]string{"authctl"}, args...))
	return out.String(), err
}

func TestAuthctl_CreateAndToggle(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "auth.db")
	db := []string{"--database-driver", "sqlite", "--database-url", dsn}

	_, err := run(t, append(db, "migrate")...)
	require.NoError(t, err)

	out, err := run(t, append(db, "create-account", "--email", " Admin@X.com ", "--password", "secret", "--first-name", "Ada", "--verified")...)
	require.NoError(t, err)
	id, err := strconv.ParseUint(strings.TrimSpace(out), 10, 64)
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = run(t, append(db, "create-account", "--email", "admin@x.com", "--password", "other")...)
	require.ErrorIs(t, err, repo.ErrAccountExists)

	_, err = run(t, append(db, "set-active", "--email", "admin@x.com", "--active=false")...)
	require.NoError(t, err)

	_, err = run(t, append(db, "set-active", "--email", "ghost@x.com", "--active=false")...)
	require.ErrorIs(t, err, repo.ErrNotFound)

	gdb, err := pkgdb.Open(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(gdb) })

	account, err := (&repo.GormRepo{DB: gdb}).FindAccountByEmail(context.Background(), "admin@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, id, account.ID)
	assert.Equal(t, "Ada", account.FirstName)
	assert.False(t, account.IsActive)
	assert.True(t, account.IsVerified)
	assert.True(t, hash.CheckPassword(account.PasswordHash, "secret"))
}

func TestAuthctl_HashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "--password", "secret")
	require.NoError(t, err)

	digest := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(digest, "$2"))
	assert.True(t, hash.CheckPassword(digest, "secret"))
}

func TestAuthctl_UnknownDriver(t *testing.T) {
	_, err := run(t, "--database-driver", "mysql", "--database-url", "x", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_DRIVER")
}
