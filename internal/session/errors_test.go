package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapAuthCode(t *testing.T) {
	cases := []struct {
		code string
		want *AuthError
	}{
		{"auth/popup-blocked", ErrPopupBlocked},
		{"auth/cancelled-popup-request", ErrPopupCancelled},
		{"auth/popup-closed-by-user", ErrPopupClosed},
		{"auth/unauthorized-domain", ErrUnauthorizedDomain},
		{"auth/wrong-password", ErrWrongPassword},
		{"INVALID_PASSWORD", ErrWrongPassword},
		{"INVALID_LOGIN_CREDENTIALS", ErrWrongPassword},
		{"auth/email-already-in-use", ErrEmailInUse},
		{"EMAIL_EXISTS", ErrEmailInUse},
		{"auth/weak-password", ErrWeakPassword},
		{"WEAK_PASSWORD : Password should be at least 6 characters", ErrWeakPassword},
		{"auth/user-not-found", ErrUserNotFound},
		{"EMAIL_NOT_FOUND", ErrUserNotFound},
		{"auth/invalid-email", ErrInvalidEmail},
		{"INVALID_EMAIL", ErrInvalidEmail},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", ErrAuthFailed},
		{"", ErrAuthFailed},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Same(t, tc.want, mapAuthCode(tc.code))
		})
	}
}

func TestAuthError_MessageIsUserFacing(t *testing.T) {
	assert.Equal(t, "Incorrect password. Please try again.", ErrWrongPassword.Error())
	assert.Equal(t, "auth/wrong-password", ErrWrongPassword.Code)
}
