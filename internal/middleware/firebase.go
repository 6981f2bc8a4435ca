package middleware

import (
	"context"
	"fmt"
	"net/http"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/earnbuddy/backend/internal/models"
)

type FirebaseAuthConfig struct {
	ProjectID       string
	CredentialsFile string
}

// NewFirebaseAuthClient builds the Admin SDK auth client used for ID-token
// verification. Returns nil with no error when no project is configured, in
// which case FirebaseAuth rejects every request.
func NewFirebaseAuthClient(ctx context.Context, cfg FirebaseAuthConfig) (*fbauth.Client, error) {
	if cfg.ProjectID == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return client, nil
}

// FirebaseAuth verifies the bearer token as a Firebase ID token and injects
// the token's uid into the request context.
func FirebaseAuth(client *fbauth.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("Authentication is not configured"))
				return
			}

			tokenString, ok := bearerToken(r)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authorization header required"))
				return
			}

			token, err := client.VerifyIDToken(r.Context(), tokenString)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, token.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
