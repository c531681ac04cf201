package identity

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"bankdemo/pkg/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryProvider is an in-process Provider for the demo. Users and
// sessions live in memory; confirmation codes are logged instead of
// emailed.
type MemoryProvider struct {
	mu       sync.Mutex
	users    map[string]*userRecord
	sessions map[string]*Session
	rand     *rand.Rand
	logger   *logging.Logger
}

type userRecord struct {
	id        string
	password  string
	confirmed bool
	code      string
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		users:    make(map[string]*userRecord),
		sessions: make(map[string]*Session),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logging.Global().Named("identity"),
	}
}

// SignUp registers a user pending confirmation.
func (p *MemoryProvider) SignUp(ctx context.Context, username, password string) (*SignUpResult, error) {
	if username == "" || password == "" {
		return nil, ErrBadCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[username]; exists {
		return nil, ErrUserExists
	}

	rec := &userRecord{
		id:       uuid.New().String(),
		password: password,
		code:     fmt.Sprintf("%06d", p.rand.Intn(1000000)),
	}
	p.users[username] = rec

	// A real provider emails the code; the demo logs it.
	p.logger.Info("sign-up confirmation code issued",
		zap.String("username", username),
		zap.String("code", rec.code),
	)

	return &SignUpResult{UserID: rec.id, NextStep: StepConfirmSignUp}, nil
}

// ConfirmSignUp completes registration with the issued code.
func (p *MemoryProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if rec.confirmed {
		return nil
	}
	if code != rec.code {
		return ErrBadCode
	}
	rec.confirmed = true
	return nil
}

// SignIn authenticates a confirmed user and opens a session.
func (p *MemoryProvider) SignIn(ctx context.Context, username, password string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.users[username]
	if !ok || rec.password != password {
		return nil, ErrBadCredentials
	}
	if !rec.confirmed {
		return nil, ErrUserNotConfirmed
	}

	session := &Session{
		Token:     uuid.New().String(),
		UserID:    rec.id,
		Username:  username,
		CreatedAt: time.Now(),
	}
	p.sessions[session.Token] = session

	return session, nil
}

// SignOut invalidates the session token. Unknown tokens are ignored so
// sign-out is idempotent.
func (p *MemoryProvider) SignOut(ctx context.Context, token string) error {
	p.mu.Lock()
	delete(p.sessions, token)
	p.mu.Unlock()
	return nil
}

// CurrentSession returns the session for token, or ErrNoSession.
func (p *MemoryProvider) CurrentSession(ctx context.Context, token string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	cp := *session
	return &cp, nil
}

// ConfirmationCode exposes the pending code for a user. Demo-only hook so
// the login flow can be exercised end to end without email delivery.
func (p *MemoryProvider) ConfirmationCode(username string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.users[username]
	if !ok {
		return "", false
	}
	return rec.code, true
}
