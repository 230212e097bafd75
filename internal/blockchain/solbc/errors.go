// internal/blockchain/solbc/errors.go
package solbc

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
)

var (
	// ErrAccountNotFound возникает, когда аккаунт отсутствует в блокчейне
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmptyAccountData возникает, когда аккаунт существует, но не содержит данных
	ErrEmptyAccountData = errors.New("account has no data")
)

// RPCError представляет ошибку RPC с дополнительным контекстом
type RPCError struct {
	Err      error
	Endpoint string
	Method   string
}

// Error реализует интерфейс error
func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error [%s] at %s: %v", e.Method, e.Endpoint, e.Err)
}

// Unwrap возвращает оригинальную ошибку
func (e *RPCError) Unwrap() error {
	return e.Err
}

// IsAccountNotFoundError проверяет, означает ли ошибка отсутствие аккаунта
func IsAccountNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, rpc.ErrNotFound)
}
