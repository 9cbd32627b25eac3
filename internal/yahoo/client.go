package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/specula/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the Yahoo Finance API.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// DefaultUserAgent mimics a browser; the endpoints reject obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Client is a Yahoo Finance API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new Yahoo Finance API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: time.Second}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("Yahoo API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: 30 * time.Second}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetChart retrieves daily history for a symbol as a PriceSeries. Rows with
// a missing close or zero timestamp are rejected at this boundary so the
// analytics core never sees them.
func (c *Client) GetChart(ctx context.Context, symbol string, from, to time.Time) (*models.PriceSeries, error) {
	params := url.Values{}
	params.Set("period1", fmt.Sprintf("%d", from.Unix()))
	params.Set("period2", fmt.Sprintf("%d", to.Unix()))
	params.Set("interval", "1d")
	params.Set("events", "div,splits")

	path := "/v8/finance/chart/" + url.PathEscape(symbol)
	var resp chartResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    resp.Chart.Error.Description,
			Endpoint:   path,
		}
	}
	if len(resp.Chart.Result) == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "no chart data for " + symbol, Endpoint: path}
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "no quote indicators for " + symbol, Endpoint: path}
	}
	quote := result.Indicators.Quote[0]

	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	series := &models.PriceSeries{Symbol: symbol}
	for i, ts := range result.Timestamps {
		if ts <= 0 || i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		candle := models.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}
		candle.AdjClose = candle.Close
		if i < len(adjClose) && adjClose[i] != nil {
			candle.AdjClose = *adjClose[i]
		}
		series.Candles = append(series.Candles, candle)
	}

	if series.Len() == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "no usable candles for " + symbol, Endpoint: path}
	}

	sort.SliceStable(series.Candles, func(i, j int) bool {
		return series.Candles[i].Date.Before(series.Candles[j].Date)
	})

	return series, nil
}

// GetOptions retrieves the options chain for a symbol. With a zero
// expiration the nearest listed expiration is returned; otherwise the exact
// expiration is requested.
func (c *Client) GetOptions(ctx context.Context, symbol string, expiration time.Time) (*models.OptionsChainSnapshot, error) {
	params := url.Values{}
	if !expiration.IsZero() {
		params.Set("date", fmt.Sprintf("%d", expiration.Unix()))
	}

	path := "/v7/finance/options/" + url.PathEscape(symbol)
	var resp optionsResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.OptionChain.Error != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    resp.OptionChain.Error.Description,
			Endpoint:   path,
		}
	}
	if len(resp.OptionChain.Result) == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "no options data for " + symbol, Endpoint: path}
	}

	result := resp.OptionChain.Result[0]
	if len(result.Options) == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "no listed expirations for " + symbol, Endpoint: path}
	}

	period := result.Options[0]
	snapshot := &models.OptionsChainSnapshot{
		Symbol:     symbol,
		Expiration: time.Unix(period.ExpirationDate, 0).UTC(),
		Calls:      convertContracts(period.Calls),
		Puts:       convertContracts(period.Puts),
	}
	if result.Quote.RegularMarketPrice != nil {
		snapshot.Spot = *result.Quote.RegularMarketPrice
	}
	for _, ts := range result.ExpirationDates {
		if ts > 0 {
			snapshot.Expirations = append(snapshot.Expirations, time.Unix(ts, 0).UTC())
		}
	}

	return snapshot, nil
}

// ListExpirations retrieves the listed expiration dates for a symbol.
func (c *Client) ListExpirations(ctx context.Context, symbol string) ([]time.Time, error) {
	snapshot, err := c.GetOptions(ctx, symbol, time.Time{})
	if err != nil {
		return nil, err
	}
	return snapshot.Expirations, nil
}

// GetQuote retrieves quotes for one or more symbols. Symbols the feed does
// not recognize are simply absent from the result map.
func (c *Client) GetQuote(ctx context.Context, symbols ...string) (map[string]models.Quote, error) {
	if len(symbols) == 0 {
		return map[string]models.Quote{}, nil
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))

	path := "/v7/finance/quote"
	var resp quoteResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteResponse.Error != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    resp.QuoteResponse.Error.Description,
			Endpoint:   path,
		}
	}

	quotes := make(map[string]models.Quote, len(resp.QuoteResponse.Result))
	for _, q := range resp.QuoteResponse.Result {
		// A quote without a price is useless downstream
		if q.RegularMarketPrice == nil {
			continue
		}
		quotes[q.Symbol] = models.Quote{
			Symbol:           q.Symbol,
			ShortName:        q.ShortName,
			Currency:         q.Currency,
			Price:            *q.RegularMarketPrice,
			Change:           q.RegularMarketChange,
			ChangePercent:    q.RegularMarketChangePercent,
			PreviousClose:    q.RegularMarketPreviousClose,
			Volume:           q.RegularMarketVolume,
			MarketCap:        q.MarketCap,
			TrailingPE:       q.TrailingPE,
			ForwardPE:        q.ForwardPE,
			FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
			FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
		}
	}

	return quotes, nil
}

// convertContracts maps wire contracts to the domain type, dropping rows
// with no strike and clamping negative volume/OI to zero.
func convertContracts(wire []wireContract) []models.OptionContract {
	out := make([]models.OptionContract, 0, len(wire))
	seen := make(map[float64]bool, len(wire))
	for _, w := range wire {
		if w.Strike == nil || *w.Strike <= 0 || seen[*w.Strike] {
			continue
		}
		seen[*w.Strike] = true
		c := models.OptionContract{
			ContractSymbol:    w.ContractSymbol,
			Strike:            *w.Strike,
			LastPrice:         w.LastPrice,
			Bid:               w.Bid,
			Ask:               w.Ask,
			ImpliedVolatility: w.ImpliedVolatility,
			InTheMoney:        w.InTheMoney,
		}
		if w.Volume != nil && *w.Volume > 0 {
			c.Volume = *w.Volume
		}
		if w.OpenInterest != nil && *w.OpenInterest > 0 {
			c.OpenInterest = *w.OpenInterest
		}
		out = append(out, c)
	}
	return out
}
