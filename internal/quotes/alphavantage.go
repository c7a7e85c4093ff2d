package quotes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Alpha Vantage endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

const intradayInterval = "1min"

// AlphaVantageClient reads quotes from the TIME_SERIES_INTRADAY API.
type AlphaVantageClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAlphaVantageClient(baseURL, apiKey string, timeout time.Duration) *AlphaVantageClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &AlphaVantageClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// bar is one OHLCV entry. Alpha Vantage sends every number as a string.
type bar struct {
	Open   decimal.Decimal `json:"1. open"`
	High   decimal.Decimal `json:"2. high"`
	Low    decimal.Decimal `json:"3. low"`
	Close  decimal.Decimal `json:"4. close"`
	Volume string          `json:"5. volume"`
}

type intradayResponse struct {
	ErrorMessage string         `json:"Error Message"`
	Note         string         `json:"Note"`
	Information  string         `json:"Information"`
	Series       map[string]bar `json:"Time Series (1min)"`
}

// FetchQuote returns the most recent intraday bar as a quote. The previous
// close is the close of the bar before it, or the latest open when the
// series has a single bar.
func (c *AlphaVantageClient) FetchQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", ticker)
	q.Set("interval", intradayInterval)
	q.Set("apikey", c.apiKey)
	addr := c.baseURL + "/query?" + q.Encode()

	var resp intradayResponse
	if err := jwget(ctx, c.client, addr, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	switch {
	case resp.ErrorMessage != "":
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	case resp.Note != "":
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, resp.Note)
	case resp.Information != "":
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, resp.Information)
	case len(resp.Series) == 0:
		return nil, fmt.Errorf("%w: no data for %s", ErrTickerNotFound, ticker)
	}

	// Timestamps are "YYYY-MM-DD HH:MM:SS", so lexical order is chronological.
	keys := make([]string, 0, len(resp.Series))
	for k := range resp.Series {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	latest := resp.Series[keys[len(keys)-1]]
	prevClose := latest.Open
	if len(keys) > 1 {
		prevClose = resp.Series[keys[len(keys)-2]].Close
	}

	volume, err := strconv.ParseInt(latest.Volume, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad volume %q", ErrSourceUnavailable, latest.Volume)
	}

	return &models.Quote{
		Symbol:        ticker,
		CurrentPrice:  latest.Close,
		OpenPrice:     latest.Open,
		HighPrice:     latest.High,
		LowPrice:      latest.Low,
		PreviousClose: prevClose,
		Volume:        volume,
	}, nil
}

// jwget performs an HTTP GET and unmarshals the JSON body into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("cannot create http request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return fmt.Errorf("cannot read http body: %w", err)
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return fmt.Errorf("cannot decode response: %w", err)
	}
	return nil
}
