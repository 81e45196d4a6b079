package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

// RecipeUseCase casos de uso de recetas.
type RecipeUseCase struct {
	repo     repository.RecipeRepository
	itemRepo repository.ItemRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(repo repository.RecipeRepository, itemRepo repository.ItemRepository) *RecipeUseCase {
	return &RecipeUseCase{repo: repo, itemRepo: itemRepo}
}

// Create crea una receta. El ítem producido debe ser un producto terminado y
// cada insumo debe existir.
func (uc *RecipeUseCase) Create(in dto.CreateRecipeRequest) (*entity.Recipe, error) {
	if in.Name == "" || in.ItemID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.YieldPerLot.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.ReferentialIntegrityError{Entity: "ítem", ID: in.ItemID}
	}
	if item.Kind != entity.ItemKindProducto {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	recipe := &entity.Recipe{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ItemID:      in.ItemID,
		YieldPerLot: in.YieldPerLot,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range in.Items {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		ingredient, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if ingredient == nil {
			return nil, &domain.ReferentialIntegrityError{Entity: "ítem", ID: line.ItemID}
		}
		recipe.Items = append(recipe.Items, entity.RecipeItem{
			ID:       uuid.New().String(),
			RecipeID: recipe.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	if err := uc.repo.Create(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetByID obtiene una receta con sus insumos.
func (uc *RecipeUseCase) GetByID(id string) (*entity.Recipe, error) {
	recipe, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return recipe, nil
}

// List lista recetas.
func (uc *RecipeUseCase) List(page dto.PageRequest) ([]*entity.Recipe, error) {
	page.DefaultPage()
	return uc.repo.List(page.Limit, page.Offset)
}
