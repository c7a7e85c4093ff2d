package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/password"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/credentials"
	"github.com/stretchr/testify/require"
)

// flakyCreds wraps a working repository and fails every call while fail is set.
type flakyCreds struct {
	credentials.Repository
	fail bool
}

func (f *flakyCreds) err() error {
	return fmt.Errorf("%w: disk unplugged", common.ErrStoreUnavailable)
}

func (f *flakyCreds) Create(ctx context.Context, rec *models.CredentialRecord) error {
	if f.fail {
		return f.err()
	}
	return f.Repository.Create(ctx, rec)
}

func (f *flakyCreds) Find(ctx context.Context, identifier string) (*models.CredentialRecord, error) {
	if f.fail {
		return nil, f.err()
	}
	return f.Repository.Find(ctx, identifier)
}

func (f *flakyCreds) ReplacePasswordHash(ctx context.Context, identifier, newHash string) error {
	if f.fail {
		return f.err()
	}
	return f.Repository.ReplacePasswordHash(ctx, identifier, newHash)
}

func newTestAuth(t *testing.T) (*AuthService, *flakyCreds) {
	t.Helper()
	repo := &flakyCreds{Repository: credentials.NewMemoryRepository()}
	return NewAuthService(repo, password.SHA256Hasher{}, logging.NewNopLogger(), 0), repo
}

func newBufferLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	l, err := logging.NewTextLogger(buf, "debug")
	require.NoError(t, err)
	return l, buf
}

func signupDefault(t *testing.T, a *AuthService) {
	t.Helper()
	require.NoError(t, a.Signup(context.Background(), "a@b.com", "Secret1!", "Color?", "Blue"))
}

// lockOut drives a fresh session for a@b.com into StateLockedOut.
func lockOut(t *testing.T, a *AuthService) *Session {
	t.Helper()
	sess, err := a.StartLogin(context.Background(), "a@b.com")
	require.NoError(t, err)
	for i := 0; i < a.MaxAttempts(); i++ {
		_, _ = sess.Submit(context.Background(), "wrong-password!")
	}
	require.Equal(t, StateLockedOut, sess.State())
	return sess
}

func newNop() logging.Logger {
	return logging.NewNopLogger()
}
