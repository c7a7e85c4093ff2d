// Package quotes fetches stock quotes for the console and maps the company
// names users type to ticker symbols.
package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

// Fetcher returns the latest quote for a ticker.
type Fetcher interface {
	FetchQuote(ctx context.Context, ticker string) (*models.Quote, error)
}

// Both wrap common.ErrQuoteUnavailable.
var (
	ErrTickerNotFound    = fmt.Errorf("%w: ticker not found", common.ErrQuoteUnavailable)
	ErrSourceUnavailable = fmt.Errorf("%w: source unavailable", common.ErrQuoteUnavailable)
)

// IsTickerNotFound reports whether err means the source does not know the ticker.
func IsTickerNotFound(err error) bool {
	return errors.Is(err, ErrTickerNotFound)
}
