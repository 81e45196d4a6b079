package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un ítem en una bodega.
// Si la fila no existe devuelve cantidad cero (la fila nace con el primer movimiento).
func (r *StockRepo) Get(itemID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, stock_minimum, stock_maximum, updated_at
		FROM stock WHERE item_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.StockMinimum, &s.StockMaximum, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// EnsureRow materializa la fila de stock en cero si aún no existe
// (INSERT ... ON CONFLICT DO NOTHING). Sin fila, el SELECT FOR UPDATE
// posterior no bloquea nada y dos primeros ingresos concurrentes sobre la
// misma clave se pisan; con la fila creada el lock siempre serializa.
func (r *StockRepo) EnsureRow(itemID, warehouseID string) error {
	query := `
		INSERT INTO stock (item_id, warehouse_id, quantity, stock_minimum, stock_maximum, updated_at)
		VALUES ($1, $2, 0, 0, 0, now())
		ON CONFLICT (item_id, warehouse_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, itemID, warehouseID)
	if err != nil {
		if de := referentialError(err, itemID, warehouseID); de != nil {
			return de
		}
		return fmt.Errorf("ensure stock row: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(itemID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, stock_minimum, stock_maximum, updated_at
		FROM stock WHERE item_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.StockMinimum, &s.StockMaximum, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por ítem y bodega).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (item_id, warehouse_id, quantity, stock_minimum, stock_maximum, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (item_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ItemID, stock.WarehouseID, stock.Quantity, stock.StockMinimum, stock.StockMaximum,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista las existencias de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, stock_minimum, stock_maximum, updated_at
		FROM stock WHERE warehouse_id = $1
		ORDER BY item_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ItemID, &s.WarehouseID, &s.Quantity, &s.StockMinimum, &s.StockMaximum, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListBelowMinimum lista filas con cantidad por debajo del mínimo. Si la fila
// define su propio mínimo se usa ese; si no, el mínimo del ítem.
func (r *StockRepo) ListBelowMinimum(warehouseID string) ([]*entity.Stock, error) {
	query := `
		SELECT s.item_id, s.warehouse_id, s.quantity, s.stock_minimum, s.stock_maximum, s.updated_at
		FROM stock s
		JOIN items i ON i.id = s.item_id
		WHERE s.warehouse_id = $1
		  AND (CASE WHEN s.stock_minimum > 0 THEN s.stock_minimum ELSE i.stock_minimum END) > 0
		  AND s.quantity < (CASE WHEN s.stock_minimum > 0 THEN s.stock_minimum ELSE i.stock_minimum END)
		ORDER BY s.item_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ItemID, &s.WarehouseID, &s.Quantity, &s.StockMinimum, &s.StockMaximum, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
