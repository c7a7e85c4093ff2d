package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Reset(ctx context.Context) error
	Quote(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Command handlers read their own prompts from the same reader.
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - login          — authenticate
//	  - reset          — reset a forgotten password
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - quote [name]   — show a stock quote for a company
//	  - history        — list the quotes you viewed
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Handlers report their own failures to the user, so returned errors are
// dropped here. The loop ends on exit, on end of input, or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("stocks %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: quote [company], history, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, reset, exit")
			}

		case "signup", "1":
			_ = a.Signup(ctx)

		case "login", "2":
			_ = a.Login(ctx)

		case "reset", "3":
			_ = a.Reset(ctx)

		case "quote":
			_ = a.Quote(ctx, args)

		case "history":
			_ = a.History(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
