package repository

import "github.com/elhornero/panaderia-api/internal/domain/entity"

// RecipeRepository puerto de persistencia para recetas.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	// GetByID devuelve la receta con sus insumos.
	GetByID(id string) (*entity.Recipe, error)
	List(limit, offset int) ([]*entity.Recipe, error)
}
