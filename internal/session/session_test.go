package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/cashflow-zero/client/internal/api"
	"github.com/cashflow-zero/client/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, subject, email string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.Nil(t, err)
	return signed
}

func TestCheckResolvesUser(t *testing.T) {
	token := signedToken(t, "user-1", "jo@example.com", time.Now().Add(time.Hour))
	store := session.NewStore(api.StaticToken(token))

	assert.True(t, store.Loading())

	err := store.Check(context.Background())
	require.Nil(t, err)

	assert.False(t, store.Loading())
	require.NotNil(t, store.User())
	assert.Equal(t, "user-1", store.User().ID)
	assert.Equal(t, "jo@example.com", store.User().Email)
}

func TestCheckExpiredTokenSignsOut(t *testing.T) {
	token := signedToken(t, "user-1", "jo@example.com", time.Now().Add(-time.Minute))
	store := session.NewStore(api.StaticToken(token))

	err := store.Check(context.Background())
	require.Nil(t, err)

	assert.False(t, store.Loading())
	assert.Nil(t, store.User())

	_, err = store.Token(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestCheckWithoutTokenSignsOut(t *testing.T) {
	store := session.NewStore(api.StaticToken(""))

	err := store.Check(context.Background())
	require.Nil(t, err)

	assert.Nil(t, store.User())
}

func TestOnChangeNotifies(t *testing.T) {
	token := signedToken(t, "user-1", "jo@example.com", time.Now().Add(time.Hour))
	store := session.NewStore(api.StaticToken(token))

	var notified []*session.User
	store.OnChange(func(user *session.User) {
		notified = append(notified, user)
	})

	require.Nil(t, store.Check(context.Background()))
	store.SignOut()

	require.Len(t, notified, 2)
	assert.Equal(t, "user-1", notified[0].ID)
	assert.Nil(t, notified[1])
}

func TestTokenPassesThroughWhileSignedIn(t *testing.T) {
	token := signedToken(t, "user-1", "jo@example.com", time.Now().Add(time.Hour))
	store := session.NewStore(api.StaticToken(token))

	require.Nil(t, store.Check(context.Background()))

	got, err := store.Token(context.Background())
	require.Nil(t, err)
	assert.Equal(t, token, got)
}
