package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación del puerto ProductionRepository sobre PostgreSQL.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador de producción. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionColumns = `id, number, recipe_id, warehouse_id, batch_size, planned_quantity, produced_quantity, status, started_at, completed_at, created_by, created_at, updated_at`

// Create persiste una orden de producción.
func (r *ProductionRepo) Create(production *entity.Production) error {
	query := `
		INSERT INTO productions (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		production.ID, production.Number, production.RecipeID, production.WarehouseID,
		production.BatchSize, production.PlannedQuantity, production.ProducedQuantity,
		production.Status, production.StartedAt, production.CompletedAt,
		production.CreatedBy, production.CreatedAt, production.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return &domain.ReferentialIntegrityError{Entity: "receta", ID: production.RecipeID}
		}
		return fmt.Errorf("insert production: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de producción por ID.
func (r *ProductionRepo) GetByID(id string) (*entity.Production, error) {
	return r.get(id, false)
}

// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE).
func (r *ProductionRepo) GetForUpdate(id string) (*entity.Production, error) {
	return r.get(id, true)
}

func (r *ProductionRepo) get(id string, forUpdate bool) (*entity.Production, error) {
	query := `SELECT ` + productionColumns + ` FROM productions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Production
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Number, &p.RecipeID, &p.WarehouseID,
		&p.BatchSize, &p.PlannedQuantity, &p.ProducedQuantity,
		&p.Status, &p.StartedAt, &p.CompletedAt,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production: %w", err)
	}
	return &p, nil
}

// List lista órdenes de producción, opcionalmente filtradas por estado.
func (r *ProductionRepo) List(status entity.ProductionStatus, limit, offset int) ([]*entity.Production, error) {
	query := `SELECT ` + productionColumns + ` FROM productions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Production
	for rows.Next() {
		var p entity.Production
		if err := rows.Scan(&p.ID, &p.Number, &p.RecipeID, &p.WarehouseID,
			&p.BatchSize, &p.PlannedQuantity, &p.ProducedQuantity,
			&p.Status, &p.StartedAt, &p.CompletedAt,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus persiste estado, fechas y cantidad producida.
func (r *ProductionRepo) UpdateStatus(production *entity.Production) error {
	query := `
		UPDATE productions SET status = $2, produced_quantity = $3, started_at = $4, completed_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		production.ID, production.Status, production.ProducedQuantity,
		production.StartedAt, production.CompletedAt, production.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production status: %w", err)
	}
	return nil
}
