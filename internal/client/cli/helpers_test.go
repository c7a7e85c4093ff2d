package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/password"
	"github.com/dmitrijs2005/stockkeeper/internal/quotes"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/activity"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/credentials"
	"github.com/dmitrijs2005/stockkeeper/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	quote   *models.Quote
	err     error
	tickers []string
}

func (f *stubFetcher) FetchQuote(_ context.Context, ticker string) (*models.Quote, error) {
	f.tickers = append(f.tickers, ticker)
	if f.err != nil {
		return nil, f.err
	}
	q := *f.quote
	q.Symbol = ticker
	return &q, nil
}

func sampleQuote() *models.Quote {
	return &models.Quote{
		CurrentPrice:  decimal.RequireFromString("189.84"),
		OpenPrice:     decimal.RequireFromString("188.5"),
		HighPrice:     decimal.RequireFromString("190.12"),
		LowPrice:      decimal.RequireFromString("187.01"),
		PreviousClose: decimal.RequireFromString("189.7"),
		Volume:        51234,
	}
}

// testApp is an App over memory stores whose stdin is the given script.
type testApp struct {
	*App
	out     *bytes.Buffer
	fetcher *stubFetcher
}

func newTestApp(t *testing.T, script ...string) *testApp {
	t.Helper()
	return newTestAppWithActivity(t, activity.NewMemoryRepository(), script...)
}

func newTestAppWithActivity(t *testing.T, repo activity.Repository, script ...string) *testApp {
	t.Helper()
	noTerminal(t)

	nop := logging.NewNopLogger()
	out := &bytes.Buffer{}
	fetcher := &stubFetcher{quote: sampleQuote()}
	input := strings.Join(script, "\n")
	if input != "" {
		input += "\n"
	}

	app := &App{
		authService:     services.NewAuthService(credentials.NewMemoryRepository(), password.SHA256Hasher{}, nop, 0),
		activityService: services.NewActivityService(repo, nop),
		fetcher:         fetcher,
		directory:       quotes.DefaultDirectory,
		log:             nop,
		reader:          bufio.NewReader(strings.NewReader(input)),
		out:             out,
	}
	return &testApp{App: app, out: out, fetcher: fetcher}
}

// noTerminal makes GetPassword read plain lines.
func noTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func (a *testApp) seedAccount(t *testing.T) {
	t.Helper()
	require.NoError(t, a.authService.Signup(context.Background(), "a@b.com", "Secret1!", "Color?", "Blue"))
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
