package repository

import (
	"context"
	"errors"
)

// ErrTxClosed is returned by Rollback after the transaction was committed or rolled back
var ErrTxClosed = errors.New("transaction already closed")

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
