package identity

import (
	"context"
	"errors"
	"testing"
)

func signUpConfirmed(t *testing.T, p *MemoryProvider, username, password string) {
	t.Helper()
	ctx := context.Background()

	result, err := p.SignUp(ctx, username, password)
	if err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}
	if result.NextStep != StepConfirmSignUp {
		t.Fatalf("expected confirmation step, got %v", result.NextStep)
	}

	code, ok := p.ConfirmationCode(username)
	if !ok {
		t.Fatalf("no pending code for %s", username)
	}
	if err := p.ConfirmSignUp(ctx, username, code); err != nil {
		t.Fatalf("confirmation failed: %v", err)
	}
}

func TestSignUpSignInFlow(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()
	signUpConfirmed(t, p, "alice", "hunter2")

	session, err := p.SignIn(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if session.Token == "" || session.Username != "alice" {
		t.Fatalf("malformed session: %+v", session)
	}

	current, err := p.CurrentSession(ctx, session.Token)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if current.UserID != session.UserID {
		t.Errorf("session user mismatch: %s vs %s", current.UserID, session.UserID)
	}

	if err := p.SignOut(ctx, session.Token); err != nil {
		t.Fatalf("sign-out failed: %v", err)
	}
	if _, err := p.CurrentSession(ctx, session.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after sign-out, got %v", err)
	}

	// Sign-out is idempotent.
	if err := p.SignOut(ctx, session.Token); err != nil {
		t.Errorf("repeated sign-out returned %v", err)
	}
}

func TestSignUpDuplicate(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "bob", "pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.SignUp(ctx, "bob", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestSignInUnconfirmed(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "carol", "pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.SignIn(ctx, "carol", "pw"); !errors.Is(err, ErrUserNotConfirmed) {
		t.Fatalf("expected ErrUserNotConfirmed, got %v", err)
	}
}

func TestConfirmBadCode(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "dave", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := p.ConfirmSignUp(ctx, "dave", "000000x"); !errors.Is(err, ErrBadCode) {
		t.Fatalf("expected ErrBadCode, got %v", err)
	}
	if err := p.ConfirmSignUp(ctx, "nobody", "123456"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// Re-confirming an already-confirmed user succeeds.
	signUpConfirmed(t, p, "erin", "pw")
	if err := p.ConfirmSignUp(ctx, "erin", "wrong"); err != nil {
		t.Errorf("re-confirmation should be a no-op, got %v", err)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()
	signUpConfirmed(t, p, "frank", "correct")

	if _, err := p.SignIn(ctx, "frank", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for wrong password, got %v", err)
	}
	if _, err := p.SignIn(ctx, "ghost", "pw"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for unknown user, got %v", err)
	}
	if _, err := p.SignUp(ctx, "", "pw"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for empty username, got %v", err)
	}
}
