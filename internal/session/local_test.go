package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_SignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider()

	created, err := p.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.Equal(t, "Ada", created.DisplayName)

	signedIn, err := p.SignInWithEmail(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.UID, signedIn.UID)

	user, ok := p.GetUser(created.UID)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash, "password is never stored in the clear")
}

func TestLocalProvider_SignUpValidation(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider()

	_, err := p.SignUpWithEmail(ctx, "not-an-email", "hunter22", "Ada")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = p.SignUpWithEmail(ctx, "ada@example.com", "short", "Ada")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = p.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)
	_, err = p.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada Again")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLocalProvider_SignInFailures(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider()

	_, err := p.SignInWithEmail(ctx, "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = p.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)

	_, err = p.SignInWithEmail(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLocalProvider_IdentityCallbacks(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider()

	var events []*Identity
	unsub := p.OnIdentityChanged(func(id *Identity) {
		events = append(events, id)
	})

	_, err := p.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx))

	require.Len(t, events, 2)
	assert.NotNil(t, events[0])
	assert.Nil(t, events[1], "sign-out reports an anonymous identity")

	unsub()
	_, err = p.SignInWithEmail(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Len(t, events, 2, "no events after unsubscribe")
}
