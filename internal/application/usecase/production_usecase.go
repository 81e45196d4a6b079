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

// ProductionUseCase ciclo de vida de órdenes de producción fuera del motor:
// alta (pre-valida suficiencia de insumos, que el motor revalida al iniciar)
// y cancelación. Iniciar y completar viven en el motor.
type ProductionUseCase struct {
	repo       repository.ProductionRepository
	recipeRepo repository.RecipeRepository
	stockRepo  repository.StockRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	repo repository.ProductionRepository,
	recipeRepo repository.RecipeRepository,
	stockRepo repository.StockRepository,
) *ProductionUseCase {
	return &ProductionUseCase{repo: repo, recipeRepo: recipeRepo, stockRepo: stockRepo}
}

// Create crea una orden de producción pendiente. Pre-valida que hoy alcancen
// los insumos; es informativo: la validación vinculante ocurre al iniciar.
func (uc *ProductionUseCase) Create(in dto.CreateProductionRequest, actorID string) (*dto.ProductionResponse, error) {
	if in.RecipeID == "" || in.WarehouseID == "" || !in.BatchSize.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := uc.recipeRepo.GetByID(in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, &domain.ReferentialIntegrityError{Entity: "receta", ID: in.RecipeID}
	}
	for _, ingredient := range recipe.Items {
		required := ingredient.Quantity.Mul(in.BatchSize)
		stock, err := uc.stockRepo.Get(ingredient.ItemID, in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if stock.Quantity.LessThan(required) {
			return nil, &domain.InsufficientStockError{
				ItemID:      ingredient.ItemID,
				WarehouseID: in.WarehouseID,
				Requested:   required,
				Available:   stock.Quantity,
			}
		}
	}
	now := time.Now()
	production := &entity.Production{
		ID:              uuid.New().String(),
		Number:          documentNumber("PR"),
		RecipeID:        in.RecipeID,
		WarehouseID:     in.WarehouseID,
		BatchSize:       in.BatchSize,
		PlannedQuantity: recipe.YieldPerLot.Mul(in.BatchSize),
		Status:          entity.ProductionPendiente,
		CreatedBy:       actorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(production); err != nil {
		return nil, err
	}
	resp := dto.NewProductionResponse(production)
	return &resp, nil
}

// Cancel cancela una orden que aún no se completó.
func (uc *ProductionUseCase) Cancel(id string) (*dto.ProductionResponse, error) {
	production, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if production == nil {
		return nil, &domain.ReferentialIntegrityError{Entity: "producción", ID: id}
	}
	if !production.Status.CanTransitionTo(entity.ProductionCancelado) {
		return nil, &domain.InvalidStateTransitionError{
			DocumentID: production.ID,
			Current:    production.Status.String(),
			Requested:  entity.ProductionCancelado.String(),
		}
	}
	production.Status = entity.ProductionCancelado
	production.UpdatedAt = time.Now()
	if err := uc.repo.UpdateStatus(production); err != nil {
		return nil, err
	}
	resp := dto.NewProductionResponse(production)
	return &resp, nil
}

// GetByID obtiene una orden de producción.
func (uc *ProductionUseCase) GetByID(id string) (*dto.ProductionResponse, error) {
	production, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if production == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewProductionResponse(production)
	return &resp, nil
}

// List lista órdenes de producción, opcionalmente filtradas por estado.
func (uc *ProductionUseCase) List(status string, page dto.PageRequest) ([]dto.ProductionResponse, error) {
	page.DefaultPage()
	st := entity.ProductionStatus(status)
	if status != "" && !st.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductionResponse(p))
	}
	return out, nil
}
