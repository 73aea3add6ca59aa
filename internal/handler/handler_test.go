package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/audience-crm/internal/dashboard"
	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/handler"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{appErrors.NewNotFound("audience", "aud9"), http.StatusNotFound, "audience with ID aud9 not found"},
		{fmt.Errorf("wrapped: %w", appErrors.NewValidation("Name", "Por favor ingresa un nombre")), http.StatusUnprocessableEntity, "Por favor ingresa un nombre"},
		{handler.ErrInvalidBody, http.StatusBadRequest, "invalid body"},
		{errors.New("db down"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		handler.WriteError(w, tc.err)

		assert.Equal(t, tc.status, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, tc.msg, body["error"])
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct{ Name string }

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"x"}`))
	require.NoError(t, handler.DecodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, handler.DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))
	assert.ErrorIs(t, handler.DecodeJSON(r, &dst), handler.ErrInvalidBody)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "/campanas", handler.Suggest("/campana"))
	assert.Equal(t, "/contactos", handler.Suggest("/Contactoss/"))
	assert.Equal(t, "/audiencias/constructor", handler.Suggest("/audiencias/construct"))
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	handler.NotFound(w, httptest.NewRequest(http.MethodGet, "/audiencia", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "/audiencias", body["suggestion"])
}

func TestSessionsIssuesAndReusesCookie(t *testing.T) {
	store := dashboard.NewStore(dashboard.Services{})
	var seen []*dashboard.Session
	h := handler.Sessions(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, handler.SessionFrom(r.Context()))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, handler.SessionCookie, cookies[0].Name)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Result().Cookies())

	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1])
	assert.Nil(t, handler.SessionFrom(r.Context()))
}
