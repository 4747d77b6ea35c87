// Package auth implements email/password and Google sign-in over the
// shared session manager. New accounts start as unapproved staff and stay
// locked out of every capability until an admin approves them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartcafe/cafehub/modules/users"
	"github.com/smartcafe/cafehub/pkg/access"
	"github.com/smartcafe/cafehub/pkg/logger"
	"github.com/smartcafe/cafehub/pkg/session"
)

const minPasswordLen = 6

var (
	// ErrInvalidEmail is returned when the supplied email does not parse.
	ErrInvalidEmail = errors.New("auth: invalid email address")
	// ErrWrongPassword is returned when the password does not match.
	ErrWrongPassword = errors.New("auth: wrong password")
	// ErrEmailInUse is returned when a sign-up reuses a registered email.
	ErrEmailInUse = errors.New("auth: email already in use")
	// ErrWeakPassword is returned for passwords under the minimum length.
	ErrWeakPassword = errors.New("auth: password too weak")
	// ErrUserNotFound is returned when no account matches the email.
	ErrUserNotFound = errors.New("auth: user not found")
)

// AccountStore is the slice of the profile store auth needs.
type AccountStore interface {
	Create(ctx context.Context, p users.Profile) error
	Credentials(ctx context.Context, email string) (string, []byte, error)
	FindByGoogleID(ctx context.Context, googleID string) (access.Identity, error)
}

// Service handles registration and credential verification. Session
// lifecycle is delegated to the manager so sign-in produces the same
// loading-then-resolved flow as a returning visit.
type Service struct {
	store    AccountStore
	sessions *session.Manager
	log      *slog.Logger
}

// NewService creates the auth service.
func NewService(store AccountStore, sessions *session.Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, sessions: sessions, log: log}
}

// SignUp registers a new email/password account. The account is created as
// unapproved staff; the returned session is pending approval until an admin
// acts on it.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (*session.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := users.Profile{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          name,
		Role:          string(access.RoleStaff),
		ApprovalState: string(access.ApprovalPending),
		PasswordHash:  hash,
	}
	if err := s.store.Create(ctx, profile); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	s.log.Info("account registered", logger.UserID(profile.ID))
	return s.establish(ctx, profile.ID)
}

// SignIn verifies an email/password pair and establishes a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	id, hash, err := s.store.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if len(hash) == 0 {
		// Google-linked account without a password.
		return nil, ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.establish(ctx, id)
}

// SignOut tears down the caller's session.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.SignOut(ctx, token)
}

// establish runs the full session lifecycle for a principal: a loading
// session first, then profile resolution into active or pending state.
func (s *Service) establish(ctx context.Context, principalID string) (*session.Session, error) {
	sess, err := s.sessions.Begin(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.sessions.Resolve(ctx, sess.Token)
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}
