package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptop-gallery/models"
	"laptop-gallery/repository/repotest"
	"laptop-gallery/utils"
)

func newGate(t *testing.T) (*Gate, *utils.TokenService, *repotest.Store) {
	t.Helper()
	tokens := utils.NewTokenService([]byte("test-secret"), time.Hour)
	store := repotest.NewStore()
	return NewGate(tokens, store.Users, time.Second), tokens, store
}

func bearer(t *testing.T, tokens *utils.TokenService, email string) string {
	t.Helper()
	tok, err := tokens.Issue(map[string]interface{}{"email": email})
	require.NoError(t, err)
	return "Bearer " + tok
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	w.Write([]byte(claims.Email))
})

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	gate, tokens, _ := newGate(t)
	h := gate.Authenticate(okHandler)

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid", bearer(t, tokens, "a@x.com"), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.code, rec.Code)
			if tc.code == http.StatusUnauthorized {
				assert.Equal(t, "unauthorized access", decodeMessage(t, rec))
			} else {
				assert.Equal(t, "a@x.com", rec.Body.String())
			}
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	gate, _, _ := newGate(t)
	expired := utils.NewTokenService([]byte("test-secret"), -time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", bearer(t, expired, "a@x.com"))
	rec := httptest.NewRecorder()

	gate.Authenticate(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	gate, tokens, store := newGate(t)
	store.Users.Seed(models.Document{"email": "boss@x.com", "role": string(models.RoleAdmin)})
	store.Users.Seed(models.Document{"email": "user@x.com", "role": string(models.RoleDefault)})
	store.Users.Seed(models.Document{"email": "odd@x.com", "role": 7})
	h := gate.Authenticate(gate.RequireAdmin(okHandler))

	cases := []struct {
		email string
		code  int
	}{
		{"boss@x.com", http.StatusOK},
		{"user@x.com", http.StatusForbidden},
		{"odd@x.com", http.StatusForbidden},
		{"ghost@x.com", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", bearer(t, tokens, tc.email))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestRequireAdminNoStoreAccessWithoutToken(t *testing.T) {
	gate, _, store := newGate(t)
	rec := httptest.NewRecorder()

	gate.Authenticate(gate.RequireAdmin(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, store.Calls())
}

func TestRequireAdminStoreFailure(t *testing.T) {
	gate, tokens, store := newGate(t)
	store.Fail(errors.New("connection reset"))
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "boss@x.com"))
	rec := httptest.NewRecorder()

	gate.Authenticate(gate.RequireAdmin(okHandler)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireSelf(t *testing.T) {
	gate, tokens, _ := newGate(t)
	router := mux.NewRouter()
	router.Handle("/user/admin/{email}", gate.Authenticate(gate.RequireSelf("email")(okHandler)))

	req := httptest.NewRequest(http.MethodGet, "/user/admin/a@x.com", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "a@x.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/user/admin/b@x.com", nil)
	req.Header.Set("Authorization", bearer(t, tokens, "a@x.com"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden access", decodeMessage(t, rec))
}
