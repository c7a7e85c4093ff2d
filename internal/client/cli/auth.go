package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/password"
	"github.com/dmitrijs2005/stockkeeper/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the account fields and creates the account. The email
// and the password are checked as soon as they are entered.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	if !password.IsValidEmailShape(email) {
		a.println(msgInvalidEmail)
		return common.ErrInvalidFormat
	}

	pw, err := getPassword(a.reader, "Enter your password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if !password.IsValidPassword(string(pw)) {
		a.println(msgInvalidPassword)
		return common.ErrInvalidFormat
	}

	question, err := getSimpleText(a.reader, "Enter a security question", a.out)
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Enter the answer to the security question", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Signup(ctx, email, string(pw), question, answer); err != nil {
		a.println(describe(err))
		return err
	}
	a.println("Signup successful!")
	return nil
}

// Login runs one login session: up to the attempt limit of password prompts,
// then, on lockout, a single offer to reset the password. After a reset the
// user is sent back to the prompt to log in again.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printf("Already logged in as %s. Log out first.\n", a.userName)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}

	sess, err := a.authService.StartLogin(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			a.println(msgUnknownUser)
		} else {
			a.println(describe(err))
		}
		return err
	}

	for sess.State() == services.StateAwaitingPassword {
		pw, err := getPassword(a.reader, "Enter your password", a.out)
		if err != nil {
			return err
		}
		_, err = sess.Submit(ctx, string(pw))
		common.WipeByteArray(pw)

		switch {
		case err == nil:
			a.userName = sess.Identifier()
			a.println("Login successful!")
			return nil
		case errors.Is(err, common.ErrAuthFailed), errors.Is(err, common.ErrLockedOut):
			a.printf("Invalid email or password. Attempt %d of %d.\n", sess.Attempts(), a.authService.MaxAttempts())
		default:
			a.println(describe(err))
			return err
		}
	}

	choice, err := getSimpleText(a.reader, "Too many failed attempts. Would you like to reset your password? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(choice), "yes") {
		sess.Decline()
		a.println("Login cancelled.")
		return common.ErrLockedOut
	}

	rec, err := sess.Recover(ctx)
	if err != nil {
		a.println(describe(err))
		return err
	}
	if err := a.runRecovery(ctx, rec); err != nil {
		a.println("Password reset failed.")
		return err
	}
	a.println("Password reset successful. Please log in again.")
	return nil
}

// Reset runs the recovery flow without a prior login attempt.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email for password reset", a.out)
	if err != nil {
		return err
	}
	rec, err := a.authService.BeginRecovery(ctx, email)
	if err != nil {
		a.println(describe(err))
		return err
	}
	return a.runRecovery(ctx, rec)
}

// runRecovery asks the security question and, if answered, the new password.
func (a *App) runRecovery(ctx context.Context, rec *services.Recovery) error {
	answer, err := getSimpleText(a.reader, "Security Question: "+rec.Question()+"\nYour Answer", a.out)
	if err != nil {
		return err
	}
	if err := rec.Answer(ctx, answer); err != nil {
		a.println(describe(err))
		return err
	}

	pw, err := getPassword(a.reader, "Enter your new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if err := rec.SetPassword(ctx, string(pw)); err != nil {
		a.println(describe(err))
		return err
	}
	a.println("Password updated successfully.")
	return nil
}

// Logout forgets the logged-in user.
func (a *App) Logout(_ context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in.")
		return nil
	}
	a.userName = ""
	a.println("Logged out.")
	return nil
}
