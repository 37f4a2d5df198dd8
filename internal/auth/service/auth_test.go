package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linkmark/linkmark/internal/auth/audit"
	"github.com/linkmark/linkmark/internal/auth/service"
	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/internal/auth/store/drivers/jsonfile"
	"github.com/linkmark/linkmark/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// authFixture wires a registration and auth service over one temp store.
type authFixture struct {
	registration *service.RegistrationService
	auth         *service.AuthService
	signer       *jwtx.Signer
	storePath    string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.json")
	st, err := jsonfile.New(path)
	require.NoError(t, err)

	signer, err := jwtx.NewSigner([]byte("test-secret"), "linkmark-auth", jwtx.DefaultSessionTTL)
	require.NoError(t, err)

	return &authFixture{
		registration: &service.RegistrationService{Store: st, Audit: audit.Nop{}},
		auth:         &service.AuthService{Store: st, Signer: signer, Audit: audit.Nop{}},
		signer:       signer,
		storePath:    path,
	}
}

func (f *authFixture) registerAlice(t *testing.T) {
	t.Helper()
	_, err := f.registration.Register(context.Background(), "alice", "a@x.com", "Secret1!")
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success returns session with two hour expiry", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.registerAlice(t)

		session, err := f.auth.Login(context.Background(), "a@x.com", "Secret1!")
		require.NoError(t, err)
		require.Equal(t, "alice", session.User.Username)
		require.NotEmpty(t, session.Token)
		require.WithinDuration(t, time.Now().Add(2*time.Hour), session.ExpiresAt, 10*time.Second)

		claims, err := f.signer.Verify(session.Token)
		require.NoError(t, err)
		require.Equal(t, session.User.ID, claims.UserID())
		require.Equal(t, "a@x.com", claims.Email)
	})

	t.Run("missing fields rejected before any lookup", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		_, err := f.auth.Login(context.Background(), "", "Secret1!")
		require.ErrorIs(t, err, service.ErrMissingFields)

		_, err = f.auth.Login(context.Background(), "a@x.com", "")
		require.ErrorIs(t, err, service.ErrMissingFields)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.registerAlice(t)

		_, err := f.auth.Login(context.Background(), "a@x.com", "wrong")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.registerAlice(t)

		_, errUnknown := f.auth.Login(context.Background(), "nobody@x.com", "Secret1!")
		_, errWrong := f.auth.Login(context.Background(), "a@x.com", "wrong")

		require.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)
		require.ErrorIs(t, errWrong, service.ErrInvalidCredentials)
		require.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("store failure propagates as unavailable", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.registerAlice(t)

		require.NoError(t, os.WriteFile(f.storePath, []byte("{corrupt"), 0o644))

		_, err := f.auth.Login(context.Background(), "a@x.com", "Secret1!")
		require.ErrorIs(t, err, store.ErrUnavailable)
		require.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
