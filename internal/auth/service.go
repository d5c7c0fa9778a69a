package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike;
	// callers must not be able to probe which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// User is the stored account identity.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Service implements email/password accounts and password reset over the
// users table. Google sign-in lives in google_oauth.go and shares the same
// table and token issuer.
type Service struct {
	db       *sql.DB
	issuer   *TokenIssuer
	mailer   Mailer
	resetTTL time.Duration

	sessionTTL  time.Duration
	rememberTTL time.Duration
}

func NewService(db *sql.DB, issuer *TokenIssuer, mailer Mailer, sessionTTL, rememberTTL, resetTTL time.Duration) *Service {
	return &Service{
		db:          db,
		issuer:      issuer,
		mailer:      mailer,
		resetTTL:    resetTTL,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}
}

// SignUp creates an account and returns the user with a fresh session token.
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (User, string, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, "", ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return User{}, "", ErrWeakPassword
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email=$1`, email).Scan(&exists)
	if err == nil {
		return User{}, "", ErrEmailInUse
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, "", err
	}
	u := User{ID: uuid.NewString(), Email: email, DisplayName: displayName}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, password_hash, created_at) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Email, u.DisplayName, string(hash), time.Now().Unix())
	if err != nil {
		return User{}, "", err
	}

	tok, err := s.issuer.Issue(u.ID, u.DisplayName, s.sessionTTL)
	if err != nil {
		return User{}, "", err
	}
	return u, tok, nil
}

// SignIn verifies credentials and mints a token. remember=true scopes the
// session across restarts (long TTL); false keeps it session-length.
func (s *Service) SignIn(ctx context.Context, email, password string, remember bool) (User, string, error) {
	email = normalizeEmail(email)

	var u User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, display_name, password_hash FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Email, &u.DisplayName, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	tok, err := s.issuer.Issue(u.ID, u.DisplayName, ttl)
	if err != nil {
		return User{}, "", err
	}
	return u, tok, nil
}

// SendPasswordReset issues a single-use reset token and hands it to the
// mailer. Unknown emails are reported as not found so the HTTP layer can
// decide how much to reveal.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	var userID string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email=$1`, email).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	token := uuid.NewString()
	expires := time.Now().Add(s.resetTTL).Unix()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO password_resets (token, user_id, expires_at) VALUES ($1,$2,$3)`,
		token, userID, expires); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(email, token)
}

// ConfirmPasswordReset consumes a reset token and stores the new password.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	var userID string
	var expiresAt int64
	var used int
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at, used FROM password_resets WHERE token=$1`, token).
		Scan(&userID, &expiresAt, &used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenInvalid
		}
		return err
	}
	if used != 0 || time.Now().Unix() > expiresAt {
		return ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`, string(hash), userID); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE password_resets SET used=1 WHERE token=$1`, token)
	return err
}

// UserByID loads the stored identity for /auth/me and the profile view.
func (s *Service) UserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, display_name FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.DisplayName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
