// Package identity defines the client contract for the hosted identity
// provider the app delegates authentication to. The contract is the five
// operations the login flow uses; protocol details (token exchange,
// challenge flows) belong to the provider and are out of scope.
package identity

import (
	"context"
	"errors"
	"time"
)

// Next steps a sign-up can report.
const (
	StepDone          = "DONE"
	StepConfirmSignUp = "CONFIRM_SIGN_UP"
)

// SignUpResult reports the outcome of a sign-up attempt.
type SignUpResult struct {
	UserID string `json:"user_id"`
	// NextStep is StepDone or StepConfirmSignUp.
	NextStep string `json:"next_step"`
}

// Session is an authenticated session.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider is the identity provider client contract.
type Provider interface {
	// SignUp registers a new user. The result's NextStep says whether a
	// confirmation code must be submitted before sign-in.
	SignUp(ctx context.Context, username, password string) (*SignUpResult, error)

	// ConfirmSignUp completes registration with the emailed code.
	ConfirmSignUp(ctx context.Context, username, code string) error

	// SignIn authenticates and returns a new session.
	SignIn(ctx context.Context, username, password string) (*Session, error)

	// SignOut invalidates the session token. Unknown tokens are ignored.
	SignOut(ctx context.Context, token string) error

	// CurrentSession returns the session for token, or ErrNoSession.
	CurrentSession(ctx context.Context, token string) (*Session, error)
}

// Provider errors.
var (
	ErrUserExists       = errors.New("identity: user already exists")
	ErrUserNotFound     = errors.New("identity: user not found")
	ErrUserNotConfirmed = errors.New("identity: user not confirmed")
	ErrBadCredentials   = errors.New("identity: incorrect username or password")
	ErrBadCode          = errors.New("identity: invalid confirmation code")
	ErrNoSession        = errors.New("identity: no active session")
)
