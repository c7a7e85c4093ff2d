package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Reset(context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}
func (f *fakeExec) Quote(_ context.Context, args []string) error {
	f.calls = append(f.calls, "quote")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) History(context.Context) error {
	f.calls = append(f.calls, "history")
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"signup",
		"login",
		"help",
		"",
		"quote Apple Inc",
		"QUOTE",
		"history",
		"logout",
		"reset",
		"foobar",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Equal(t, []string{"signup", "login", "quote", "quote", "history", "logout", "reset"}, exec.calls)
	assert.Equal(t, [][]string{{"Apple", "Inc"}, {}}, exec.args)
	assert.Contains(t, *lines, "Available commands: signup, login, reset, exit")
	assert.Contains(t, *lines, "Available commands: quote [company], history, logout, exit")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_MenuNumbers(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("1\n2\n3\n"))

	assert.Equal(t, []string{"signup", "login", "reset"}, exec.calls)
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("signup"))

	assert.Equal(t, []string{"signup"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("signup\n"))

	assert.Empty(t, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(a@b.com) " }, rdr("exit\n"))

	assert.Equal(t, "stocks (a@b.com) > ", (*lines)[0])
}
