package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramContext(name, value string) echo.Context {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

func TestParseID(t *testing.T) {
	id, err := parseID(paramContext("id", "42"), "id")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, bad := range []string{"", "abc", "-1", "1.5"} {
		_, err := parseID(paramContext("id", bad), "id")
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok, "value %q", bad)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
}

func TestStoreErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{storeerr.ErrInvalidOperation, http.StatusBadRequest},
		{storeerr.ErrConflict, http.StatusConflict},
		{storeerr.ErrUnauthorized, http.StatusForbidden},
		{storeerr.ErrNotFound, http.StatusNotFound},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("context: %w", tc.err)
		httpErr, ok := storeError(wrapped).(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, tc.code, httpErr.Code)
	}
}
