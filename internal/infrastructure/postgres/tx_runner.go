package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Las fallas de serialización y deadlocks se mapean a
// ConcurrencyConflictError para que la capa HTTP responda 409.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.TxRepos{
		Movements:   NewMovementRepository(tx),
		Stock:       NewStockRepository(tx),
		Items:       NewItemRepository(tx),
		Purchases:   NewPurchaseRepository(tx),
		Orders:      NewOrderRepository(tx),
		Productions: NewProductionRepository(tx),
		Recipes:     NewRecipeRepository(tx),
	}

	if err := fn(repos); err != nil {
		if isRetryableTxError(err) {
			return &domain.ConcurrencyConflictError{Cause: err}
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isRetryableTxError(err) {
			return &domain.ConcurrencyConflictError{Cause: err}
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
