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

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL.
// Cabecera en recipes, insumos en recipe_items.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la receta con sus insumos.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	ctx := context.Background()
	query := `
		INSERT INTO recipes (id, name, item_id, yield_per_lot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		recipe.ID, recipe.Name, recipe.ItemID, recipe.YieldPerLot, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return &domain.ReferentialIntegrityError{Entity: "ítem", ID: recipe.ItemID}
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	for _, line := range recipe.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_items (id, recipe_id, item_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			line.ID, recipe.ID, line.ItemID, line.Quantity,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return &domain.ReferentialIntegrityError{Entity: "ítem", ID: line.ItemID}
			}
			return fmt.Errorf("insert recipe item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la receta con sus insumos.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	ctx := context.Background()
	query := `SELECT id, name, item_id, yield_per_lot, created_at, updated_at FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Name, &rec.ItemID, &rec.YieldPerLot, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, recipe_id, item_id, quantity
		FROM recipe_items WHERE recipe_id = $1 ORDER BY id`, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("list recipe items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.RecipeItem
		if err := rows.Scan(&it.ID, &it.RecipeID, &it.ItemID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		rec.Items = append(rec.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List lista recetas (solo cabeceras).
func (r *RecipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	query := `SELECT id, name, item_id, yield_per_lot, created_at, updated_at FROM recipes ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.ItemID, &rec.YieldPerLot, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
