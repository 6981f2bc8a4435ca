package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	// WebAPIKey is the browser API key; password sign-in goes through the
	// Identity Toolkit REST API, which the Admin SDK does not cover.
	WebAPIKey string
}

// FirebaseProvider implements IdentityProvider on Firebase Authentication:
// account creation and token revocation through the Admin SDK, password
// sign-in through the Identity Toolkit REST API.
type FirebaseProvider struct {
	client *fbauth.Client
	apiKey string
	http   *http.Client
	logger *zap.Logger

	mu       sync.Mutex
	identity *Identity
	cbs      map[uint64]func(*Identity)
	nextCB   uint64
}

// NewFirebaseProvider builds the provider. With an empty project id or API
// key it returns a not-ready provider and no error, so the caller can come up
// anonymous-forever instead of crashing.
func NewFirebaseProvider(ctx context.Context, cfg FirebaseConfig, logger *zap.Logger) (*FirebaseProvider, error) {
	p := &FirebaseProvider{
		apiKey: cfg.WebAPIKey,
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
		cbs:    make(map[uint64]func(*Identity)),
	}

	if cfg.ProjectID == "" || cfg.WebAPIKey == "" {
		logger.Warn("firebase not configured, identity operations disabled")
		return p, nil
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
	p.client = client
	return p, nil
}

func (p *FirebaseProvider) Ready() bool {
	return p.client != nil && p.apiKey != ""
}

func (p *FirebaseProvider) OnIdentityChanged(cb func(*Identity)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextCB
	p.nextCB++
	p.cbs[id] = cb
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.cbs, id)
	}
}

func (p *FirebaseProvider) SignUpWithEmail(ctx context.Context, email, password, displayName string) (*Identity, error) {
	if !p.Ready() {
		return nil, ErrProviderNotConfigured
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	user, err := p.client.CreateUser(ctx, (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName))
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailInUse
		}
		p.logger.Error("firebase create user failed", zap.Error(err))
		return nil, ErrAuthFailed
	}

	identity := &Identity{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	p.setIdentity(identity)
	return identity, nil
}

func (p *FirebaseProvider) SignInWithEmail(ctx context.Context, email, password string) (*Identity, error) {
	if !p.Ready() {
		return nil, ErrProviderNotConfigured
	}

	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, identityToolkitURL+"?key="+p.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Error("identity toolkit request failed", zap.Error(err))
		return nil, ErrAuthFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
			return nil, ErrAuthFailed
		}
		return nil, mapAuthCode(failure.Error.Message)
	}

	var success struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		ProfilePic  string `json:"profilePicture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&success); err != nil {
		return nil, ErrAuthFailed
	}

	identity := &Identity{
		UID:         success.LocalID,
		Email:       success.Email,
		DisplayName: success.DisplayName,
		PhotoURL:    success.ProfilePic,
	}
	p.setIdentity(identity)
	return identity, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context) error {
	if !p.Ready() {
		return ErrProviderNotConfigured
	}

	p.mu.Lock()
	current := p.identity
	p.mu.Unlock()

	if current != nil {
		if err := p.client.RevokeRefreshTokens(ctx, current.UID); err != nil {
			p.logger.Warn("revoking refresh tokens failed", zap.String("uid", current.UID), zap.Error(err))
		}
	}
	p.setIdentity(nil)
	return nil
}

// setIdentity swaps the current identity and notifies callbacks outside the
// lock.
func (p *FirebaseProvider) setIdentity(identity *Identity) {
	p.mu.Lock()
	p.identity = identity
	cbs := make([]func(*Identity), 0, len(p.cbs))
	for _, cb := range p.cbs {
		cbs = append(cbs, cb)
	}
	p.mu.Unlock()

	for _, cb := range cbs {
		cb(identity)
	}
}
