// Package services contains the account workflows of stockkeeper: signup,
// the login state machine, security-question recovery, and the activity
// log of authenticated actions.
//
// Services depend only on the repository interfaces, a password.Hasher and a
// logging.Logger. They never print or prompt; the console drives them.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/password"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/credentials"
	"github.com/google/uuid"
)

// DefaultMaxAttempts is the number of wrong passwords that locks a session.
const DefaultMaxAttempts = 5

// AuthService owns signup and hands out login sessions and recovery flows.
type AuthService struct {
	creds       credentials.Repository
	hasher      password.Hasher
	log         logging.Logger
	maxAttempts int
	newID       func() string
}

// NewAuthService builds an AuthService. A non-positive maxAttempts selects
// DefaultMaxAttempts.
func NewAuthService(creds credentials.Repository, hasher password.Hasher, log logging.Logger, maxAttempts int) *AuthService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &AuthService{
		creds:       creds,
		hasher:      hasher,
		log:         log,
		maxAttempts: maxAttempts,
		newID:       uuid.NewString,
	}
}

func (s *AuthService) MaxAttempts() int {
	return s.maxAttempts
}

// Signup validates and stores a new account.
//
// A malformed identifier or a weak password is rejected with
// common.ErrInvalidFormat before the store is touched; a weak password also
// matches common.ErrWeakPassword. An existing identifier yields
// common.ErrDuplicateIdentifier.
func (s *AuthService) Signup(ctx context.Context, identifier, pw, question, answer string) error {
	if !password.IsValidEmailShape(identifier) {
		return fmt.Errorf("%w: identifier is not an email address", common.ErrInvalidFormat)
	}
	if !password.IsValidPassword(pw) {
		return fmt.Errorf("%w: %w", common.ErrInvalidFormat, common.ErrWeakPassword)
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &models.CredentialRecord{
		Identifier:       identifier,
		PasswordHash:     hash,
		SecurityQuestion: question,
		SecurityAnswer:   answer,
	}
	if err := s.creds.Create(ctx, rec); err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			s.log.Error(ctx, "signup failed", "identifier", identifier, "error", err)
		}
		return err
	}

	s.log.Info(ctx, "account created", "identifier", identifier)
	return nil
}

// StartLogin opens a login session for a known identifier.
func (s *AuthService) StartLogin(ctx context.Context, identifier string) (*Session, error) {
	if _, err := s.lookup(ctx, identifier); err != nil {
		return nil, err
	}

	sess := &Session{
		id:          s.newID(),
		identifier:  identifier,
		state:       StateAwaitingPassword,
		maxAttempts: s.maxAttempts,
		auth:        s,
	}
	sess.log = s.log.With("identifier", identifier, "session_id", sess.id)
	sess.log.Debug(ctx, "login started")
	return sess, nil
}

// BeginRecovery starts a password reset outside of any login session.
func (s *AuthService) BeginRecovery(ctx context.Context, identifier string) (*Recovery, error) {
	rec, err := s.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.newRecovery(ctx, rec, s.log.With("identifier", identifier)), nil
}

// lookup validates the identifier shape and fetches its record.
func (s *AuthService) lookup(ctx context.Context, identifier string) (*models.CredentialRecord, error) {
	if !password.IsValidEmailShape(identifier) {
		return nil, fmt.Errorf("%w: identifier is not an email address", common.ErrInvalidFormat)
	}
	rec, err := s.creds.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			s.log.Error(ctx, "credential lookup failed", "identifier", identifier, "error", err)
		}
		return nil, err
	}
	return rec, nil
}
