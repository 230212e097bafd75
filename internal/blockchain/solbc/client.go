// internal/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// accountInfoGetter is the subset of *rpc.Client the adapter needs.
type accountInfoGetter interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
}

// ClientOptions содержит опции для создания нового Client.
type ClientOptions struct {
	Commitment rpc.CommitmentType
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration // таймаут одного запроса, 0 = без таймаута
}

// DefaultClientOptions возвращает настройки по умолчанию.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Commitment: rpc.CommitmentConfirmed,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
		Timeout:    10 * time.Second,
	}
}

// Client – тонкий адаптер для чтения аккаунтов Solana через solana-go.
// Retries live here, not in the callers: an absent account is permanent,
// transport errors are retried with exponential backoff.
type Client struct {
	rpc      accountInfoGetter
	endpoint string
	opts     ClientOptions
	logger   *zap.Logger
}

// NewClient создаёт новый клиент, принимая RPC URL и логгер через dependency injection.
func NewClient(rpcURL string, logger *zap.Logger, opts ...ClientOptions) *Client {
	return newClient(rpc.New(rpcURL), rpcURL, logger, opts...)
}

func newClient(getter accountInfoGetter, endpoint string, logger *zap.Logger, opts ...ClientOptions) *Client {
	options := DefaultClientOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Commitment == "" {
		options.Commitment = rpc.CommitmentConfirmed
	}
	if options.MaxRetries < 0 {
		options.MaxRetries = 0
	}
	if options.RetryDelay <= 0 {
		options.RetryDelay = DefaultClientOptions().RetryDelay
	}

	return &Client{
		rpc:      getter,
		endpoint: endpoint,
		opts:     options,
		logger:   logger.Named("solbc-client"),
	}
}

// GetAccountInfo получает информацию об аккаунте одной попыткой.
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	result, err := c.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.opts.Commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, pubkey)
		}
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, &RPCError{Err: err, Endpoint: c.endpoint, Method: "getAccountInfo"}
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, pubkey)
	}
	return result, nil
}

// FetchAccountData returns the raw data of an account, retrying transport
// failures. A missing or empty account fails immediately.
func (c *Client) FetchAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.opts.RetryDelay
	policy.MaxInterval = c.opts.RetryDelay * 10

	notify := func(err error, d time.Duration) {
		c.logger.Info("Retrying account fetch after error",
			zap.String("pubkey", pubkey.String()),
			zap.Duration("backoff", d),
			zap.Error(err))
	}

	operation := func() ([]byte, error) {
		result, err := c.GetAccountInfo(ctx, pubkey)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) || ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}

		data := result.Value.Data.GetBinary()
		if len(data) == 0 {
			return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrEmptyAccountData, pubkey))
		}
		return data, nil
	}

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.opts.MaxRetries+1)),
		backoff.WithNotify(notify))
	if err != nil {
		c.logger.Debug("FetchAccountData failed",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, err
	}

	return data, nil
}
