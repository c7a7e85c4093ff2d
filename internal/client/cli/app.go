package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/password"
	"github.com/dmitrijs2005/stockkeeper/internal/quotes"
	"github.com/dmitrijs2005/stockkeeper/internal/services"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

type App struct {
	authService     *services.AuthService
	activityService *services.ActivityService
	fetcher         quotes.Fetcher
	directory       quotes.Directory
	log             logging.Logger

	userName string
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp builds the console on top of already opened repositories.
func NewApp(c *config.Config, repos *storage.Repositories, fetcher quotes.Fetcher, log logging.Logger) (*App, error) {
	hasher, err := password.NewHasher(c.PasswordHash)
	if err != nil {
		return nil, err
	}

	return &App{
		authService:     services.NewAuthService(repos.Credentials, hasher, log, c.MaxLoginAttempts),
		activityService: services.NewActivityService(repos.Activity, log),
		fetcher:         fetcher,
		directory:       quotes.DefaultDirectory,
		log:             log,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user leaves.
func (a *App) Run(ctx context.Context) {
	printlnFn("--------------------------Get your stocks detail right away---------------------------")
	printlnFn("Type 'help' for commands.")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
