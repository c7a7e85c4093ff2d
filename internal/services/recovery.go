package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/password"
)

// RecoveryState is the position of a recovery flow.
type RecoveryState int

const (
	RecoveryAwaitingAnswer RecoveryState = iota
	RecoveryAwaitingPassword
	RecoveryCompleted
	RecoveryFailed
)

func (s RecoveryState) String() string {
	switch s {
	case RecoveryAwaitingAnswer:
		return "awaiting_answer"
	case RecoveryAwaitingPassword:
		return "awaiting_password"
	case RecoveryCompleted:
		return "completed"
	case RecoveryFailed:
		return "failed"
	}
	return fmt.Sprintf("RecoveryState(%d)", int(s))
}

// Recovery replaces a forgotten password after the security question is
// answered. One answer and one new password are accepted; any failure ends
// the flow and the caller has to start a new one.
type Recovery struct {
	identifier string
	question   string
	answer     string
	state      RecoveryState

	auth *AuthService
	log  logging.Logger
}

func (s *AuthService) newRecovery(ctx context.Context, rec *models.CredentialRecord, log logging.Logger) *Recovery {
	log.Info(ctx, "recovery started")
	return &Recovery{
		identifier: rec.Identifier,
		question:   rec.SecurityQuestion,
		answer:     rec.SecurityAnswer,
		state:      RecoveryAwaitingAnswer,
		auth:       s,
		log:        log,
	}
}

func (r *Recovery) Identifier() string   { return r.identifier }
func (r *Recovery) Question() string     { return r.question }
func (r *Recovery) State() RecoveryState { return r.state }

// Answer compares answer verbatim with the stored one.
func (r *Recovery) Answer(ctx context.Context, answer string) error {
	if r.state != RecoveryAwaitingAnswer {
		return fmt.Errorf("answer in state %s: %w", r.state, common.ErrRecoveryClosed)
	}
	if subtle.ConstantTimeCompare([]byte(answer), []byte(r.answer)) != 1 {
		r.state = RecoveryFailed
		r.log.Warn(ctx, "recovery failed: wrong answer")
		return common.ErrWrongAnswer
	}
	r.state = RecoveryAwaitingPassword
	return nil
}

// SetPassword validates, hashes and stores the new password.
func (r *Recovery) SetPassword(ctx context.Context, pw string) error {
	if r.state != RecoveryAwaitingPassword {
		return fmt.Errorf("set password in state %s: %w", r.state, common.ErrRecoveryClosed)
	}
	if !password.IsValidPassword(pw) {
		r.state = RecoveryFailed
		return common.ErrWeakPassword
	}

	hash, err := r.auth.hasher.Hash(pw)
	if err != nil {
		r.state = RecoveryFailed
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := r.auth.creds.ReplacePasswordHash(ctx, r.identifier, hash); err != nil {
		r.state = RecoveryFailed
		r.log.Error(ctx, "password replace failed", "error", err)
		return err
	}

	r.state = RecoveryCompleted
	r.log.Info(ctx, "password replaced")
	return nil
}
