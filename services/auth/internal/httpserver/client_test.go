package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/pkg/authclient"
	"github.com/Skotchmaster/storefront/services/auth/internal/testutil"
)

func TestAuthClient_ResolvesIssuedToken(t *testing.T) {
	env := newTestEnv(t)
	account := testutil.NewTestAccount(t, env.Repo, "a@x.com", "secret", true)

	srv := httptest.NewServer(env.E)
	t.Cleanup(srv.Close)

	rec := do(t, env.E, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode(t, rec)["token"].(string)

	c := authclient.NewClient(srv.URL)
	got, err := c.Me(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)

	require.NoError(t, env.Repo.SetActive(context.Background(), "a@x.com", false))
	_, err = c.Me(context.Background(), token)
	require.ErrorIs(t, err, authclient.ErrUnauthorized)
	assert.Contains(t, err.Error(), MsgAccountDeactivated)
}
