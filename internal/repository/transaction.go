package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner runs a function inside one database transaction, handing it
// transaction-scoped repositories. Archiving, restoring and field binding
// must not leave partial state visible, so every multi-row mutation in the
// service layer goes through this.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(sets OptionSetRepository, archives ArchiveRepository) error) error
}

// txRunnerImpl is the GORM implementation of TxRunner
type txRunnerImpl struct {
	db *gorm.DB
}

// NewTxRunner creates a new instance of TxRunner
func NewTxRunner(db *gorm.DB) TxRunner {
	return &txRunnerImpl{db: db}
}

// RunInTransaction executes fn within a single transaction; any error rolls
// the whole transaction back
func (t *txRunnerImpl) RunInTransaction(ctx context.Context, fn func(sets OptionSetRepository, archives ArchiveRepository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewOptionSetRepository(tx), NewArchiveRepository(tx))
	})
}
