package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.GET("/api/auth/me", func(c echo.Context) error {
		switch c.Request().Header.Get(echo.HeaderAuthorization) {
		case "Bearer good":
			return c.JSONBlob(http.StatusOK, []byte(`{"success":true,"user":{"id":7,"email":"a@x.com","is_active":true,"profile_image":null}}`))
		case "Bearer gone":
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		case "Bearer boom":
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Me(t *testing.T) {
	srv := newStubServer(t)
	c := NewClient(srv.URL + "/")

	account, err := c.Me(context.Background(), "good")
	require.NoError(t, err)
	assert.EqualValues(t, 7, account.ID)
	assert.Equal(t, "a@x.com", account.Email)
	assert.True(t, account.IsActive)
	assert.Nil(t, account.ProfileImage)

	_, err = c.Me(context.Background(), "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid token")

	_, err = c.Me(context.Background(), "gone")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.Me(context.Background(), "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "500")
}
