// internal/price/dia.go

package price

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultDIAEndpoint is the DIA quotation of native SOL in USD.
const DefaultDIAEndpoint = "https://api.diadata.org/v1/assetQuotation/Solana/0x0000000000000000000000000000000000000000"

var (
	// ErrMissingPrice возникает, если в ответе нет поля Price
	ErrMissingPrice = errors.New("quote response has no Price field")

	// ErrInvalidPrice возникает, если Price не является положительным числом
	ErrInvalidPrice = errors.New("quote response has invalid Price")
)

// HTTPError is a non-200 answer from the quote service.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("dia http %d", e.StatusCode)
	}
	return fmt.Sprintf("dia http %d: %s", e.StatusCode, b)
}

// assetQuotation is the part of the DIA response we read.
type assetQuotation struct {
	Symbol string          `json:"Symbol"`
	Price  json.RawMessage `json:"Price"`
	Time   string          `json:"Time"`
}

// DIAOptions содержит опции клиента DIA.
type DIAOptions struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultDIAOptions возвращает настройки по умолчанию.
func DefaultDIAOptions() DIAOptions {
	return DIAOptions{
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
	}
}

// DIAClient fetches the SOL/USD quote from DIA. Concurrent callers share a
// single in-flight request; nothing is cached between calls.
type DIAClient struct {
	endpoint string
	client   *http.Client
	opts     DIAOptions
	logger   *zap.Logger
	inflight singleflight.Group
}

// NewDIAClient создает новый клиент котировок
func NewDIAClient(endpoint string, logger *zap.Logger, opts ...DIAOptions) *DIAClient {
	options := DefaultDIAOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.MaxRetries < 0 {
		options.MaxRetries = 0
	}
	if options.RetryDelay <= 0 {
		options.RetryDelay = DefaultDIAOptions().RetryDelay
	}

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultDIAEndpoint
	}

	return &DIAClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: options.Timeout,
		},
		opts:   options,
		logger: logger.Named("dia"),
	}
}

// FetchFiatPrice returns the current USD price of one SOL. The shared request
// is detached from the caller that started it; each caller stops waiting
// only when its own ctx is done.
func (c *DIAClient) FetchFiatPrice(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ch := c.inflight.DoChan(c.endpoint, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout())
		defer cancel()
		return c.fetchWithRetry(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		if res.Shared {
			c.logger.Debug("Shared in-flight quote request")
		}
		return res.Val.(float64), nil
	}
}

// sharedTimeout bounds a detached fetch: every attempt plus the longest waits between them.
func (c *DIAClient) sharedTimeout() time.Duration {
	attempt := c.opts.Timeout
	if attempt <= 0 {
		attempt = DefaultDIAOptions().Timeout
	}
	tries := time.Duration(c.opts.MaxRetries + 1)
	return attempt*tries + c.opts.RetryDelay*10*(tries-1)
}

func (c *DIAClient) fetchWithRetry(ctx context.Context) (float64, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.opts.RetryDelay
	policy.MaxInterval = c.opts.RetryDelay * 10

	notify := func(err error, d time.Duration) {
		c.logger.Info("Retrying quote request after error", zap.Error(err), zap.Duration("backoff", d))
	}

	price, err := backoff.Retry(ctx, func() (float64, error) {
		return c.doRequest(ctx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.opts.MaxRetries+1)),
		backoff.WithNotify(notify))
	if err != nil {
		return 0, fmt.Errorf("fetch SOL quote: %w", err)
	}

	c.logger.Debug("Fetched SOL quote", zap.Float64("sol_usd", price))
	return price, nil
}

// doRequest выполняет один HTTP запрос. Ответы 4xx и некорректные тела
// помечаются как постоянные ошибки.
func (c *DIAClient) doRequest(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, backoff.Permanent(err)
		}
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: body}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return 0, httpErr
		}
		return 0, backoff.Permanent(httpErr)
	}

	var quote assetQuotation
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}

	price, err := parsePrice(quote.Price)
	if err != nil {
		return 0, backoff.Permanent(err)
	}
	return price, nil
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrMissingPrice
	}

	var price float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
		}
		price = v
	} else if err := json.Unmarshal(raw, &price); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPrice, string(raw))
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	return price, nil
}
