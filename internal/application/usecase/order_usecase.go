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

// OrderUseCase ciclo de vida de pedidos fuera del motor de inventario: alta
// (valida disponibilidad sin reservar), entrega y cancelación. El cobro vive
// en el motor (inventory.PayOrder).
type OrderUseCase struct {
	repo      repository.OrderRepository
	itemRepo  repository.ItemRepository
	stockRepo repository.StockRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	repo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	stockRepo repository.StockRepository,
) *OrderUseCase {
	return &OrderUseCase{repo: repo, itemRepo: itemRepo, stockRepo: stockRepo}
}

// Create crea un pedido pendiente. La disponibilidad se verifica como
// cortesía al cliente pero NO se reserva: la decisión definitiva la toma el
// pago sobre filas bloqueadas.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest, actorID string) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		Number:       documentNumber("PED"),
		CustomerName: in.CustomerName,
		Status:       entity.OrderPendiente,
		Notes:        in.Notes,
		PaidAmount:   decimal.Zero,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, line := range in.Items {
		if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, &domain.ReferentialIntegrityError{Entity: "ítem", ID: line.ItemID}
		}
		stock, err := uc.stockRepo.Get(line.ItemID, line.WarehouseID)
		if err != nil {
			return nil, err
		}
		if stock.Quantity.LessThan(line.Quantity) {
			return nil, &domain.InsufficientStockError{
				ItemID:      line.ItemID,
				WarehouseID: line.WarehouseID,
				Requested:   line.Quantity,
				Available:   stock.Quantity,
			}
		}
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = item.Price
		}
		order.Items = append(order.Items, entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ItemID:      line.ItemID,
			WarehouseID: line.WarehouseID,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
		})
	}
	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// Deliver marca como entregado un pedido pagado.
func (uc *OrderUseCase) Deliver(id string) (*dto.OrderResponse, error) {
	return uc.transition(id, entity.OrderEntregado)
}

// Cancel cancela un pedido; solo legal desde pendiente.
func (uc *OrderUseCase) Cancel(id string) (*dto.OrderResponse, error) {
	return uc.transition(id, entity.OrderCancelado)
}

func (uc *OrderUseCase) transition(id string, target entity.OrderStatus) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, &domain.ReferentialIntegrityError{Entity: "pedido", ID: id}
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, &domain.InvalidStateTransitionError{
			DocumentID: order.ID,
			Current:    order.Status.String(),
			Requested:  target.String(),
		}
	}
	order.Status = target
	order.UpdatedAt = time.Now()
	if err := uc.repo.UpdateStatus(order); err != nil {
		return nil, err
	}
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// GetByID obtiene un pedido.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// List lista pedidos, opcionalmente filtrados por estado.
func (uc *OrderUseCase) List(status string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	st := entity.OrderStatus(status)
	if status != "" && !st.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewOrderResponse(o))
	}
	return out, nil
}
