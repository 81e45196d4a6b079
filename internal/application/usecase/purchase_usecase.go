package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/application/dto"
	"github.com/elhornero/panaderia-api/internal/domain"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/internal/domain/repository"
)

// PurchaseUseCase ciclo de vida de compras fuera del motor de inventario:
// alta en borrador y transiciones que no mutan stock (confirmar, facturar,
// pagar, cancelar). La recepción vive en el motor (inventory.ReceivePurchase).
type PurchaseUseCase struct {
	repo          repository.PurchaseRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	repo repository.PurchaseRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{repo: repo, itemRepo: itemRepo, warehouseRepo: warehouseRepo}
}

// Create crea una compra en borrador validando líneas y referencias.
func (uc *PurchaseUseCase) Create(in dto.CreatePurchaseRequest, actorID string) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		Number:     documentNumber("OC"),
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseBorrador,
		Notes:      in.Notes,
		CreatedBy:  actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, line := range in.Items {
		if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.checkRefs(line.ItemID, line.WarehouseID); err != nil {
			return nil, err
		}
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ID:          uuid.New().String(),
			PurchaseID:  purchase.ID,
			ItemID:      line.ItemID,
			WarehouseID: line.WarehouseID,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
		})
	}
	if err := uc.repo.Create(purchase); err != nil {
		return nil, err
	}
	resp := dto.NewPurchaseResponse(purchase)
	return &resp, nil
}

// Confirm pasa la compra de borrador a pendiente.
func (uc *PurchaseUseCase) Confirm(id string) (*dto.PurchaseResponse, error) {
	return uc.transition(id, entity.PurchasePendiente)
}

// MarkInvoiced pasa la compra de recibida a facturada.
func (uc *PurchaseUseCase) MarkInvoiced(id string) (*dto.PurchaseResponse, error) {
	return uc.transition(id, entity.PurchaseFacturada)
}

// MarkPaid pasa la compra de facturada a pagada (estado terminal).
func (uc *PurchaseUseCase) MarkPaid(id string) (*dto.PurchaseResponse, error) {
	return uc.transition(id, entity.PurchasePagada)
}

// Cancel cancela la compra; solo legal desde borrador o pendiente.
func (uc *PurchaseUseCase) Cancel(id string) (*dto.PurchaseResponse, error) {
	return uc.transition(id, entity.PurchaseCancelada)
}

func (uc *PurchaseUseCase) transition(id string, target entity.PurchaseStatus) (*dto.PurchaseResponse, error) {
	purchase, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, &domain.ReferentialIntegrityError{Entity: "compra", ID: id}
	}
	if !purchase.Status.CanTransitionTo(target) {
		return nil, &domain.InvalidStateTransitionError{
			DocumentID: purchase.ID,
			Current:    purchase.Status.String(),
			Requested:  target.String(),
		}
	}
	purchase.Status = target
	purchase.UpdatedAt = time.Now()
	if err := uc.repo.UpdateStatus(purchase); err != nil {
		return nil, err
	}
	resp := dto.NewPurchaseResponse(purchase)
	return &resp, nil
}

// GetByID obtiene una compra con sus líneas.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewPurchaseResponse(purchase)
	return &resp, nil
}

// List lista compras, opcionalmente filtradas por estado.
func (uc *PurchaseUseCase) List(status string, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	page.DefaultPage()
	st := entity.PurchaseStatus(status)
	if status != "" && !st.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPurchaseResponse(p))
	}
	return out, nil
}

func (uc *PurchaseUseCase) checkRefs(itemID, warehouseID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return &domain.ReferentialIntegrityError{Entity: "ítem", ID: itemID}
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return &domain.ReferentialIntegrityError{Entity: "bodega", ID: warehouseID}
	}
	return nil
}

// documentNumber genera un número de documento legible: prefijo + fragmento
// de UUID en mayúsculas.
func documentNumber(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.New().String()[:8]))
}
