package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sheriffbukari/xtx-training/internal/db"
)

type captureMailer struct {
	email string
	token string
}

func (m *captureMailer) SendPasswordReset(email, resetToken string) error {
	m.email = email
	m.token = resetToken
	return nil
}

var testDBSeq int

func newTestService(t *testing.T) (*Service, *captureMailer, *sql.DB) {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:authtest%d?mode=memory&cache=shared", testDBSeq)
	conn, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	issuer := NewTokenIssuer("test-secret")
	mailer := &captureMailer{}
	svc := NewService(conn, issuer, mailer, 12*time.Hour, 30*24*time.Hour, time.Hour)
	return svc, mailer, conn
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	u, tok, err := svc.SignUp(ctx, "Ada@Example.com", "hunter2secret", "Ada")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if tok == "" {
		t.Fatal("expected a session token from signup")
	}

	got, tok2, err := svc.SignIn(ctx, "ada@example.com", "hunter2secret", false)
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if got.ID != u.ID || got.DisplayName != "Ada" {
		t.Fatalf("signin returned wrong user: %+v", got)
	}
	if tok2 == "" {
		t.Fatal("expected a session token from signin")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "dup@example.com", "hunter2secret", "A"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, _, err := svc.SignUp(ctx, "DUP@example.com", "hunter2secret", "B")
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestSignUpWeakPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, _, err := svc.SignUp(context.Background(), "weak@example.com", "short", "W")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "user@example.com", "hunter2secret", "U"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := svc.SignIn(ctx, "user@example.com", "wrong-password", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "hunter2secret", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mailer, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "reset@example.com", "hunter2secret", "R"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.SendPasswordReset(ctx, "reset@example.com"); err != nil {
		t.Fatalf("send reset: %v", err)
	}
	if mailer.token == "" || mailer.email != "reset@example.com" {
		t.Fatalf("mailer not invoked: %+v", mailer)
	}

	if err := svc.ConfirmPasswordReset(ctx, mailer.token, "newsecret99"); err != nil {
		t.Fatalf("confirm reset: %v", err)
	}

	// Old password dead, new password works.
	if _, _, err := svc.SignIn(ctx, "reset@example.com", "hunter2secret", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still valid: %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "reset@example.com", "newsecret99", false); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// Token is single use.
	if err := svc.ConfirmPasswordReset(ctx, mailer.token, "anothersecret"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("reused token: expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestSendPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.SendPasswordReset(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	tok, err := issuer.Issue("user-1", "Ada", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := issuer.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != "user-1" || claims.Name != "Ada" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	other := NewTokenIssuer("different-secret")
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("token verified under wrong secret")
	}
}

func TestUserByID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	u, _, err := svc.SignUp(ctx, "me@example.com", "hunter2secret", "Me")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	got, err := svc.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("user by id: %v", err)
	}
	if got.Email != "me@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if _, err := svc.UserByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
