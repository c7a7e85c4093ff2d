package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginWith(t *testing.T, a *AuthService, pw string) error {
	t.Helper()
	sess, err := a.StartLogin(context.Background(), "a@b.com")
	require.NoError(t, err)
	_, err = sess.Submit(context.Background(), pw)
	return err
}

func TestRecovery_AfterLockout_ReplacesPassword(t *testing.T) {
	a, _ := newTestAuth(t)
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := lockOut(t, a).Recover(ctx)
	require.NoError(t, err)
	require.NoError(t, rec.Answer(ctx, "Blue"))
	assert.Equal(t, RecoveryAwaitingPassword, rec.State())
	require.NoError(t, rec.SetPassword(ctx, "NewSecret9!"))
	assert.Equal(t, RecoveryCompleted, rec.State())

	require.NoError(t, loginWith(t, a, "NewSecret9!"))
	require.ErrorIs(t, loginWith(t, a, "Secret1!"), common.ErrAuthFailed)
}

func TestRecovery_Direct(t *testing.T) {
	a, repo := newTestAuth(t)
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := a.BeginRecovery(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", rec.Identifier())
	assert.Equal(t, "Color?", rec.Question())
	require.NoError(t, rec.Answer(ctx, "Blue"))
	require.NoError(t, rec.SetPassword(ctx, "NewSecret9!"))

	stored, err := repo.Find(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, password.Hash("NewSecret9!"), stored.PasswordHash)
	assert.Equal(t, "Blue", stored.SecurityAnswer)
}

func TestBeginRecovery_Errors(t *testing.T) {
	a, repo := newTestAuth(t)
	ctx := context.Background()

	_, err := a.BeginRecovery(ctx, "bad")
	require.ErrorIs(t, err, common.ErrInvalidFormat)
	_, err = a.BeginRecovery(ctx, "ghost@b.com")
	require.ErrorIs(t, err, common.ErrNotFound)

	signupDefault(t, a)
	repo.fail = true
	_, err = a.BeginRecovery(ctx, "a@b.com")
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestRecovery_WrongAnswerEndsFlow(t *testing.T) {
	a, _ := newTestAuth(t)
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := a.BeginRecovery(ctx, "a@b.com")
	require.NoError(t, err)

	require.ErrorIs(t, rec.Answer(ctx, "blue"), common.ErrWrongAnswer, "answers are case-sensitive")
	assert.Equal(t, RecoveryFailed, rec.State())

	require.ErrorIs(t, rec.Answer(ctx, "Blue"), common.ErrRecoveryClosed)
	require.ErrorIs(t, rec.SetPassword(ctx, "NewSecret9!"), common.ErrRecoveryClosed)
	require.NoError(t, loginWith(t, a, "Secret1!"))
}

func TestRecovery_WeakPasswordEndsFlow(t *testing.T) {
	a, _ := newTestAuth(t)
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := a.BeginRecovery(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, rec.Answer(ctx, "Blue"))

	require.ErrorIs(t, rec.SetPassword(ctx, "short1!"), common.ErrWeakPassword)
	assert.Equal(t, RecoveryFailed, rec.State())
	require.ErrorIs(t, rec.SetPassword(ctx, "NewSecret9!"), common.ErrRecoveryClosed)
	require.NoError(t, loginWith(t, a, "Secret1!"))
}

func TestRecovery_SetPasswordBeforeAnswer(t *testing.T) {
	a, _ := newTestAuth(t)
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := a.BeginRecovery(ctx, "a@b.com")
	require.NoError(t, err)
	require.ErrorIs(t, rec.SetPassword(ctx, "NewSecret9!"), common.ErrRecoveryClosed)
	assert.Equal(t, RecoveryAwaitingAnswer, rec.State())
}

func TestRecovery_CompletedFlowIsClosed(t *testing.T) {
	a, _ := newTestAuth(t)
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := a.BeginRecovery(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, rec.Answer(ctx, "Blue"))
	require.NoError(t, rec.SetPassword(ctx, "NewSecret9!"))

	require.ErrorIs(t, rec.Answer(ctx, "Blue"), common.ErrRecoveryClosed)
	require.ErrorIs(t, rec.SetPassword(ctx, "Another9!"), common.ErrRecoveryClosed)
}

func TestRecovery_StoreFailureOnReplace(t *testing.T) {
	a, repo := newTestAuth(t)
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := a.BeginRecovery(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, rec.Answer(ctx, "Blue"))

	repo.fail = true
	require.ErrorIs(t, rec.SetPassword(ctx, "NewSecret9!"), common.ErrStoreUnavailable)
	assert.Equal(t, RecoveryFailed, rec.State())

	repo.fail = false
	require.NoError(t, loginWith(t, a, "Secret1!"))
}

func TestRecovery_AnswerNotLogged(t *testing.T) {
	log, buf := newBufferLogger(t)
	a, _ := newTestAuth(t)
	a.log = log
	ctx := context.Background()
	signupDefault(t, a)

	rec, err := a.BeginRecovery(ctx, "a@b.com")
	require.NoError(t, err)
	require.ErrorIs(t, rec.Answer(ctx, "Green"), common.ErrWrongAnswer)

	assert.Contains(t, buf.String(), "recovery failed")
	assert.NotContains(t, buf.String(), "Green")
	assert.NotContains(t, buf.String(), "Blue")
}

func TestRecoveryState_String(t *testing.T) {
	assert.Equal(t, "awaiting_answer", RecoveryAwaitingAnswer.String())
	assert.Equal(t, "awaiting_password", RecoveryAwaitingPassword.String())
	assert.Equal(t, "completed", RecoveryCompleted.String())
	assert.Equal(t, "failed", RecoveryFailed.String())
	assert.Equal(t, "RecoveryState(9)", RecoveryState(9).String())
}
