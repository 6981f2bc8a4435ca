package session

import "strings"

// AuthError is an authentication failure narrowed to a fixed user-readable
// message. Message is safe to render next to the sign-in form; Code records
// the backend code it was mapped from.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	ErrProviderNotConfigured = &AuthError{
		Code:    "auth/not-configured",
		Message: "Authentication is not configured. Please contact support.",
	}
	ErrPopupBlocked = &AuthError{
		Code:    "auth/popup-blocked",
		Message: "Pop-up was blocked by your browser. Please allow pop-ups for this site and try again.",
	}
	ErrPopupCancelled = &AuthError{
		Code:    "auth/cancelled-popup-request",
		Message: "Sign-in was cancelled. Please try again.",
	}
	ErrPopupClosed = &AuthError{
		Code:    "auth/popup-closed-by-user",
		Message: "Sign-in window was closed. Please try again.",
	}
	ErrUnauthorizedDomain = &AuthError{
		Code:    "auth/unauthorized-domain",
		Message: "This domain is not authorized for authentication. Please contact support.",
	}
	ErrWrongPassword = &AuthError{
		Code:    "auth/wrong-password",
		Message: "Incorrect password. Please try again.",
	}
	ErrEmailInUse = &AuthError{
		Code:    "auth/email-already-in-use",
		Message: "An account with this email already exists.",
	}
	ErrWeakPassword = &AuthError{
		Code:    "auth/weak-password",
		Message: "Password should be at least 6 characters.",
	}
	ErrUserNotFound = &AuthError{
		Code:    "auth/user-not-found",
		Message: "No account found with this email.",
	}
	ErrInvalidEmail = &AuthError{
		Code:    "auth/invalid-email",
		Message: "The email address is badly formatted.",
	}
	ErrAuthFailed = &AuthError{
		Code:    "auth/unknown",
		Message: "Authentication failed. Please try again.",
	}
)

// mapAuthCode narrows a backend error code (client-SDK style "auth/..." codes
// or Identity Toolkit REST codes) to the fixed taxonomy. Unrecognized codes
// fall back to the generic failure.
func mapAuthCode(code string) *AuthError {
	switch {
	case code == "auth/popup-blocked":
		return ErrPopupBlocked
	case code == "auth/cancelled-popup-request":
		return ErrPopupCancelled
	case code == "auth/popup-closed-by-user":
		return ErrPopupClosed
	case code == "auth/unauthorized-domain":
		return ErrUnauthorizedDomain
	case code == "auth/wrong-password",
		code == "INVALID_PASSWORD",
		code == "INVALID_LOGIN_CREDENTIALS":
		return ErrWrongPassword
	case code == "auth/email-already-in-use", code == "EMAIL_EXISTS":
		return ErrEmailInUse
	// The REST API appends advice after a colon, e.g.
	// "WEAK_PASSWORD : Password should be at least 6 characters".
	case code == "auth/weak-password", strings.HasPrefix(code, "WEAK_PASSWORD"):
		return ErrWeakPassword
	case code == "auth/user-not-found", code == "EMAIL_NOT_FOUND":
		return ErrUserNotFound
	case code == "auth/invalid-email", code == "INVALID_EMAIL":
		return ErrInvalidEmail
	default:
		return ErrAuthFailed
	}
}
