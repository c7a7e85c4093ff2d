package cli

import (
	"context"
	"strings"
)

// Quote resolves a company name, prints its quote and records the view.
// The name comes from args or, when absent, from a prompt.
func (a *App) Quote(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		a.println("Please log in first.")
		return nil
	}

	name := strings.Join(args, " ")
	if name == "" {
		var err error
		name, err = getSimpleText(a.reader, "Enter the company name for which you want to retrieve stock data", a.out)
		if err != nil {
			return err
		}
	}

	company, ticker, ok := a.directory.Lookup(name)
	if !ok {
		a.println("Company not found.")
		a.printf("Known companies: %s\n", strings.Join(a.directory.Names(), ", "))
		return nil
	}

	q, err := a.fetcher.FetchQuote(ctx, ticker)
	if err != nil {
		a.log.Warn(ctx, "quote fetch failed", "ticker", ticker, "error", err)
		a.println(describe(err))
		return err
	}

	a.printf("%s (%s)\n", company, q.Symbol)
	a.printf("Current Price: %s\n", q.CurrentPrice)
	a.printf("Open Price: %s\n", q.OpenPrice)
	a.printf("High Price: %s\n", q.HighPrice)
	a.printf("Low Price: %s\n", q.LowPrice)
	a.printf("Previous Close: %s\n", q.PreviousClose)
	a.printf("Volume: %d\n", q.Volume)

	// The quote was shown; a logging failure is reported and not undone.
	if _, err := a.activityService.Append(ctx, a.userName, company, q); err != nil {
		a.println("Warning: this lookup could not be recorded in your activity log.")
		return err
	}
	return nil
}

// History prints the logged-in user's activity log.
func (a *App) History(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Please log in first.")
		return nil
	}

	records, err := a.activityService.History(ctx, a.userName)
	if err != nil {
		a.println(describe(err))
		return err
	}
	if len(records) == 0 {
		a.println("No activity recorded yet.")
		return nil
	}
	for _, r := range records {
		a.printf("%s %s  %-10s %-6s current %s  open %s  high %s  low %s  prev %s  vol %d\n",
			r.Date(), r.Time(), r.SubjectName, r.Quote.Symbol,
			r.Quote.CurrentPrice, r.Quote.OpenPrice, r.Quote.HighPrice, r.Quote.LowPrice,
			r.Quote.PreviousClose, r.Quote.Volume)
	}
	return nil
}
