package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
)

// State is the position of a login session.
type State int

const (
	StateAwaitingPassword State = iota
	StateAuthenticated
	StateLockedOut
	// StateClosed is reached when a locked-out user declines or has
	// already used the recovery offer.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingPassword:
		return "awaiting_password"
	case StateAuthenticated:
		return "authenticated"
	case StateLockedOut:
		return "locked_out"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is one login attempt sequence for a single identifier.
//
// It starts in StateAwaitingPassword. Each wrong password increments the
// attempt counter; reaching the limit moves it to StateLockedOut, from which
// the caller may take the one recovery offer or decline it. A Session is not
// safe for concurrent use.
type Session struct {
	id          string
	identifier  string
	state       State
	attempts    int
	maxAttempts int
	recovered   bool

	auth *AuthService
	log  logging.Logger
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Identifier() string { return s.identifier }
func (s *Session) State() State       { return s.state }
func (s *Session) Attempts() int      { return s.attempts }

// Remaining is the number of password submissions left before lockout.
func (s *Session) Remaining() int {
	return s.maxAttempts - s.attempts
}

// Submit checks one password.
//
// It returns StateAuthenticated and nil on a match. A mismatch returns
// common.ErrAuthFailed while attempts remain and common.ErrLockedOut on the
// attempt that exhausts them. A storage failure leaves the counter unchanged.
func (s *Session) Submit(ctx context.Context, pw string) (State, error) {
	if s.state != StateAwaitingPassword {
		return s.state, fmt.Errorf("submit in state %s: %w", s.state, common.ErrSessionClosed)
	}

	// The record is re-read so a password replaced meanwhile takes effect.
	rec, err := s.auth.creds.Find(ctx, s.identifier)
	if err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			s.log.Error(ctx, "credential lookup failed", "error", err)
		}
		return s.state, err
	}

	ok, err := s.auth.hasher.Verify(pw, rec.PasswordHash)
	if err != nil {
		s.log.Warn(ctx, "stored password hash cannot be verified", "error", err)
		ok = false
	}
	if ok {
		s.state = StateAuthenticated
		s.log.Info(ctx, "login succeeded", "attempts", s.attempts+1)
		return s.state, nil
	}

	s.attempts++
	if s.attempts >= s.maxAttempts {
		s.state = StateLockedOut
		s.log.Warn(ctx, "account locked out", "attempts", s.attempts)
		return s.state, fmt.Errorf("%d failed attempts: %w", s.attempts, common.ErrLockedOut)
	}
	s.log.Debug(ctx, "wrong password", "attempts", s.attempts)
	return s.state, fmt.Errorf("attempt %d of %d: %w", s.attempts, s.maxAttempts, common.ErrAuthFailed)
}

// Recover hands a locked-out session over to the recovery flow. It is
// offered once per session.
func (s *Session) Recover(ctx context.Context) (*Recovery, error) {
	if s.state != StateLockedOut || s.recovered {
		return nil, fmt.Errorf("recover in state %s: %w", s.state, common.ErrRecoveryUnavailable)
	}

	rec, err := s.auth.creds.Find(ctx, s.identifier)
	if err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			s.log.Error(ctx, "credential lookup failed", "error", err)
		}
		return nil, err
	}

	s.recovered = true
	s.state = StateClosed
	return s.auth.newRecovery(ctx, rec, s.log), nil
}

// Decline closes a locked-out session without recovery.
func (s *Session) Decline() {
	if s.state == StateLockedOut {
		s.state = StateClosed
	}
}
