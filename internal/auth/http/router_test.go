package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/linkmark/linkmark/internal/auth/audit"
	authhttp "github.com/linkmark/linkmark/internal/auth/http"
	"github.com/linkmark/linkmark/internal/auth/service"
	"github.com/linkmark/linkmark/internal/auth/store/drivers/jsonfile"
	"github.com/linkmark/linkmark/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router *authhttp.Router
	signer *jwtx.Signer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := jsonfile.New(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	signer, err := jwtx.NewSigner([]byte("test-secret"), "linkmark-auth", jwtx.DefaultSessionTTL)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	router := authhttp.NewRouter(signer, "test", st, logger)
	router.RegistrationService = &service.RegistrationService{Store: st, Audit: audit.Nop{}}
	router.AuthService = &service.AuthService{Store: st, Signer: signer, Audit: audit.Nop{}}
	router.ApplyRoutes()

	return &fixture{router: router, signer: signer}
}

func (f *fixture) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) register(t *testing.T, username, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, http.MethodPost, "/v1/auth/register", authhttp.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
}

func (f *fixture) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, http.MethodPost, "/v1/auth/login", authhttp.LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		rec := f.register(t, "alice", "a@x.com", "Secret1!")
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp authhttp.RegisterResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "alice", resp.User.Username)
		require.NotEmpty(t, resp.User.ID)

		// The hash must not appear anywhere in the response.
		require.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate email distinguishable from duplicate username", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.Equal(t, http.StatusCreated, f.register(t, "alice", "a@x.com", "Secret1!").Code)

		rec := f.register(t, "bob", "a@x.com", "Secret1!")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp authhttp.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "email_taken", resp.Error)

		rec = f.register(t, "alice", "b@x.com", "Secret1!")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "username_taken", resp.Error)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		rec := f.register(t, "alice", "", "Secret1!")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp authhttp.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "invalid_request", resp.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success returns token and cookie", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.register(t, "alice", "a@x.com", "Secret1!").Code)

		rec := f.login(t, "a@x.com", "Secret1!")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp authhttp.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Bearer", resp.TokenType)
		require.InDelta(t, (2 * time.Hour).Seconds(), float64(resp.ExpiresIn), 10)

		claims, err := f.signer.Verify(resp.Token)
		require.NoError(t, err)
		require.Equal(t, resp.User.ID, claims.UserID())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "token", cookies[0].Name)
		require.Equal(t, resp.Token, cookies[0].Value)
		require.True(t, cookies[0].HttpOnly)
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.register(t, "alice", "a@x.com", "Secret1!").Code)

		wrong := f.login(t, "a@x.com", "nope")
		unknown := f.login(t, "nobody@x.com", "Secret1!")

		require.Equal(t, http.StatusUnauthorized, wrong.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)
		require.JSONEq(t, wrong.Body.String(), unknown.Body.String())
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "token", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestMeEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns profile for valid token", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.register(t, "alice", "a@x.com", "Secret1!").Code)

		var login authhttp.LoginResponse
		rec := f.login(t, "a@x.com", "Secret1!")
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

		rec = f.do(t, http.MethodGet, "/v1/me", nil, http.Header{
			"Authorization": {"Bearer " + login.Token},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "a@x.com")
	})

	t.Run("expired token distinguishable from forged", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		expired, _, err := f.signer.IssueAt("user-1", "a@x.com", time.Now().UTC().Add(-3*time.Hour))
		require.NoError(t, err)

		rec := f.do(t, http.MethodGet, "/v1/me", nil, http.Header{
			"Authorization": {"Bearer " + expired},
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "token expired")

		rec = f.do(t, http.MethodGet, "/v1/me", nil, http.Header{
			"Authorization": {"Bearer garbage.token.here"},
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "token verification failed")
	})

	t.Run("missing token rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/v1/me", nil, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
