package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/earnbuddy/backend/internal/models"
)

// LocalProvider is an in-process IdentityProvider with bcrypt-hashed
// email+password accounts. It backs local deployments without Firebase and
// the test suite.
type LocalProvider struct {
	mu      sync.Mutex
	users   map[string]*models.User
	byEmail map[string]string

	identity *Identity
	cbs      map[uint64]func(*Identity)
	nextCB   uint64
}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
		cbs:     make(map[uint64]func(*Identity)),
	}
}

func (p *LocalProvider) Ready() bool { return true }

func (p *LocalProvider) OnIdentityChanged(cb func(*Identity)) func() {
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

func (p *LocalProvider) SignUpWithEmail(ctx context.Context, email, password, displayName string) (*Identity, error) {
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if _, exists := p.byEmail[email]; exists {
		p.mu.Unlock()
		return nil, ErrEmailInUse
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    time.Now().UTC(),
	}
	p.users[user.ID] = user
	p.byEmail[user.Email] = user.ID
	p.mu.Unlock()

	identity := &Identity{UID: user.ID, Email: user.Email, DisplayName: user.DisplayName}
	p.setIdentity(identity)
	return identity, nil
}

func (p *LocalProvider) SignInWithEmail(ctx context.Context, email, password string) (*Identity, error) {
	p.mu.Lock()
	userID, exists := p.byEmail[email]
	if !exists {
		p.mu.Unlock()
		return nil, ErrUserNotFound
	}
	user := p.users[userID]
	p.mu.Unlock()

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	identity := &Identity{UID: user.ID, Email: user.Email, DisplayName: user.DisplayName}
	p.setIdentity(identity)
	return identity, nil
}

func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.setIdentity(nil)
	return nil
}

// GetUser looks up a local account by id. Used by the auth handlers when
// re-validating JWT subjects.
func (p *LocalProvider) GetUser(id string) (*models.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	user, ok := p.users[id]
	if !ok {
		return nil, false
	}
	out := *user
	return &out, true
}

func (p *LocalProvider) setIdentity(identity *Identity) {
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
