package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/internal/auth"
)

func TestOperatorIDFromBearerToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	token, err := jwtService.GenerateAccessToken(42, "operator@example.com")
	require.NoError(t, err)

	e := echo.New()
	var got *uint
	capture := func(c echo.Context) error {
		got = operatorID(c)
		return c.NoContent(http.StatusOK)
	}
	// Same middleware config the router registers for secured routes.
	mw := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte("test-secret"),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(capture)(c))
	require.NotNil(t, got, "owner must be claimed from the bearer token")
	assert.Equal(t, uint(42), *got)
}

func TestOperatorIDWithoutToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Nil(t, operatorID(c))
}
