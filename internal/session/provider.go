package session

import "context"

// Identity is the provider-neutral view of a signed-in account.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// IdentityProvider abstracts the authentication backend. Implementations
// notify registered callbacks whenever the current identity changes: with the
// new identity after a successful sign-in or sign-up, with nil after sign-out.
type IdentityProvider interface {
	SignInWithEmail(ctx context.Context, email, password string) (*Identity, error)
	SignUpWithEmail(ctx context.Context, email, password, displayName string) (*Identity, error)
	SignOut(ctx context.Context) error

	// OnIdentityChanged registers cb and returns a function that removes it.
	// Implementations invoke cb synchronously from the goroutine performing
	// the sign-in/out.
	OnIdentityChanged(cb func(*Identity)) func()

	// Ready reports whether the provider is configured. An unready provider
	// fails every operation with ErrProviderNotConfigured.
	Ready() bool
}
