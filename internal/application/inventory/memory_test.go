package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	domaininv "github.com/elhornero/panaderia-api/internal/domain/inventory"
)

// memoryStore es el estado compartido de los repositorios falsos. El runner
// de transacciones serializa el acceso con un mutex (equivalente en memoria
// del bloqueo de fila) y restaura un snapshot si la función falla
// (equivalente del Rollback).
type memoryStore struct {
	mu          sync.Mutex
	stocks      map[inventory.StockKey]entity.Stock
	movements   []entity.Movement
	items       map[string]entity.Item
	warehouses  map[string]entity.Warehouse
	purchases   map[string]entity.Purchase
	orders      map[string]entity.Order
	productions map[string]entity.Production
	recipes     map[string]entity.Recipe

	// Claves bloqueadas sin fila materializada: en Postgres un
	// SELECT FOR UPDATE sobre una fila inexistente no bloquea nada, así que
	// cada entrada aquí es una carrera latente en el primer movimiento de
	// la clave. Se registra y no se limpia en el rollback.
	lockedWithoutRow []inventory.StockKey
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		stocks:      make(map[inventory.StockKey]entity.Stock),
		items:       make(map[string]entity.Item),
		warehouses:  make(map[string]entity.Warehouse),
		purchases:   make(map[string]entity.Purchase),
		orders:      make(map[string]entity.Order),
		productions: make(map[string]entity.Production),
		recipes:     make(map[string]entity.Recipe),
	}
}

type snapshot struct {
	stocks      map[inventory.StockKey]entity.Stock
	movements   []entity.Movement
	items       map[string]entity.Item
	purchases   map[string]entity.Purchase
	orders      map[string]entity.Order
	productions map[string]entity.Production
}

func (s *memoryStore) snapshot() snapshot {
	snap := snapshot{
		stocks:      make(map[inventory.StockKey]entity.Stock, len(s.stocks)),
		movements:   append([]entity.Movement(nil), s.movements...),
		items:       make(map[string]entity.Item, len(s.items)),
		purchases:   make(map[string]entity.Purchase, len(s.purchases)),
		orders:      make(map[string]entity.Order, len(s.orders)),
		productions: make(map[string]entity.Production, len(s.productions)),
	}
	for k, v := range s.stocks {
		snap.stocks[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.purchases {
		v.Items = append([]entity.PurchaseItem(nil), v.Items...)
		snap.purchases[k] = v
	}
	for k, v := range s.orders {
		v.Items = append([]entity.OrderItem(nil), v.Items...)
		snap.orders[k] = v
	}
	for k, v := range s.productions {
		snap.productions[k] = v
	}
	return snap
}

func (s *memoryStore) restore(snap snapshot) {
	s.stocks = snap.stocks
	s.movements = snap.movements
	s.items = snap.items
	s.purchases = snap.purchases
	s.orders = snap.orders
	s.productions = snap.productions
}

// memoryTxRunner serializa transacciones y simula Commit/Rollback.
type memoryTxRunner struct {
	store *memoryStore
}

func (r *memoryTxRunner) Run(_ context.Context, fn func(inventory.TxRepos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	repos := inventory.TxRepos{
		Movements:   &memMovementRepo{store: r.store},
		Stock:       &memStockRepo{store: r.store},
		Items:       &memItemRepo{store: r.store},
		Purchases:   &memPurchaseRepo{store: r.store},
		Orders:      &memOrderRepo{store: r.store},
		Productions: &memProductionRepo{store: r.store},
		Recipes:     &memRecipeRepo{store: r.store},
	}
	if err := fn(repos); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ── Stock ────────────────────────────────────────────────────────────────────

type memStockRepo struct{ store *memoryStore }

func (r *memStockRepo) Get(itemID, warehouseID string) (*entity.Stock, error) {
	key := inventory.StockKey{ItemID: itemID, WarehouseID: warehouseID}
	if s, ok := r.store.stocks[key]; ok {
		c := s
		return &c, nil
	}
	return &entity.Stock{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r *memStockRepo) EnsureRow(itemID, warehouseID string) error {
	key := inventory.StockKey{ItemID: itemID, WarehouseID: warehouseID}
	if _, ok := r.store.stocks[key]; !ok {
		r.store.stocks[key] = entity.Stock{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}
	}
	return nil
}

func (r *memStockRepo) GetForUpdate(itemID, warehouseID string) (*entity.Stock, error) {
	key := inventory.StockKey{ItemID: itemID, WarehouseID: warehouseID}
	if _, ok := r.store.stocks[key]; !ok {
		r.store.lockedWithoutRow = append(r.store.lockedWithoutRow, key)
	}
	return r.Get(itemID, warehouseID)
}

func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	key := inventory.StockKey{ItemID: stock.ItemID, WarehouseID: stock.WarehouseID}
	r.store.stocks[key] = *stock
	return nil
}

func (r *memStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for key, s := range r.store.stocks {
		if key.WarehouseID == warehouseID {
			c := s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListBelowMinimum(warehouseID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for key, s := range r.store.stocks {
		if key.WarehouseID != warehouseID {
			continue
		}
		item, ok := r.store.items[key.ItemID]
		if ok && s.Quantity.LessThan(item.StockMinimum) {
			c := s
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type memMovementRepo struct{ store *memoryStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.store.movements = append(r.store.movements, *m)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			c := m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByItem(itemID string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.ItemID == itemID {
			c := m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByWarehouse(warehouseID string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.WarehouseID == warehouseID {
			c := m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByReference(reference string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if m.Reference == reference {
			c := m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memMovementRepo) AverageReceiptCost(itemID string) (decimal.Decimal, error) {
	var costs []decimal.Decimal
	for _, m := range r.store.movements {
		if m.ItemID == itemID && m.Type == entity.MovementIngreso && m.Reason == entity.ReasonCompra {
			costs = append(costs, m.UnitCost)
		}
	}
	return domaininv.AverageReceiptCost(costs), nil
}

// ── Ítems ────────────────────────────────────────────────────────────────────

type memItemRepo struct{ store *memoryStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	r.store.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.store.items[id]; ok {
		c := it
		return &c, nil
	}
	return nil, nil
}

func (r *memItemRepo) GetByCode(code string) (*entity.Item, error) {
	for _, it := range r.store.items {
		if it.Code == code {
			c := it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) List(_, _ int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.store.items {
		c := it
		out = append(out, &c)
	}
	return out, nil
}

func (r *memItemRepo) Update(item *entity.Item) error {
	r.store.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) UpdateAverageCost(itemID string, cost decimal.Decimal) error {
	it := r.store.items[itemID]
	it.AverageCost = cost
	r.store.items[itemID] = it
	return nil
}

// ── Bodegas ──────────────────────────────────────────────────────────────────

type memWarehouseRepo struct{ store *memoryStore }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.store.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.store.warehouses[id]; ok {
		c := w
		return &c, nil
	}
	return nil, nil
}

func (r *memWarehouseRepo) List(_, _ int) ([]*entity.Warehouse, error) { return nil, nil }
func (r *memWarehouseRepo) Update(w *entity.Warehouse) error           { return r.Create(w) }

// ── Documentos ───────────────────────────────────────────────────────────────

type memPurchaseRepo struct{ store *memoryStore }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	r.store.purchases[p.ID] = *p
	return nil
}

func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	if p, ok := r.store.purchases[id]; ok {
		c := p
		c.Items = append([]entity.PurchaseItem(nil), p.Items...)
		return &c, nil
	}
	return nil, nil
}

func (r *memPurchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	return r.GetByID(id)
}

func (r *memPurchaseRepo) List(_ entity.PurchaseStatus, _, _ int) ([]*entity.Purchase, error) {
	return nil, nil
}

func (r *memPurchaseRepo) UpdateStatus(p *entity.Purchase) error { return r.Create(p) }

type memOrderRepo struct{ store *memoryStore }

func (r *memOrderRepo) Create(o *entity.Order) error {
	r.store.orders[o.ID] = *o
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := r.store.orders[id]; ok {
		c := o
		c.Items = append([]entity.OrderItem(nil), o.Items...)
		return &c, nil
	}
	return nil, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.GetByID(id) }

func (r *memOrderRepo) List(_ entity.OrderStatus, _, _ int) ([]*entity.Order, error) {
	return nil, nil
}

func (r *memOrderRepo) UpdateStatus(o *entity.Order) error { return r.Create(o) }

type memProductionRepo struct{ store *memoryStore }

func (r *memProductionRepo) Create(p *entity.Production) error {
	r.store.productions[p.ID] = *p
	return nil
}

func (r *memProductionRepo) GetByID(id string) (*entity.Production, error) {
	if p, ok := r.store.productions[id]; ok {
		c := p
		return &c, nil
	}
	return nil, nil
}

func (r *memProductionRepo) GetForUpdate(id string) (*entity.Production, error) {
	return r.GetByID(id)
}

func (r *memProductionRepo) List(_ entity.ProductionStatus, _, _ int) ([]*entity.Production, error) {
	return nil, nil
}

func (r *memProductionRepo) UpdateStatus(p *entity.Production) error { return r.Create(p) }

type memRecipeRepo struct{ store *memoryStore }

func (r *memRecipeRepo) Create(rec *entity.Recipe) error {
	r.store.recipes[rec.ID] = *rec
	return nil
}

func (r *memRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	if rec, ok := r.store.recipes[id]; ok {
		c := rec
		c.Items = append([]entity.RecipeItem(nil), rec.Items...)
		return &c, nil
	}
	return nil, nil
}

func (r *memRecipeRepo) List(_, _ int) ([]*entity.Recipe, error) { return nil, nil }

// ── Helpers comunes de los tests ─────────────────────────────────────────────

// cacheSpy registra las invalidaciones recibidas.
type cacheSpy struct {
	mu   sync.Mutex
	keys []inventory.StockKey
}

func (c *cacheSpy) Invalidate(_ context.Context, keys ...inventory.StockKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, keys...)
}

func (s *memoryStore) setStock(itemID, warehouseID, qty string) {
	s.stocks[inventory.StockKey{ItemID: itemID, WarehouseID: warehouseID}] = entity.Stock{
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Quantity:    d(qty),
		UpdatedAt:   time.Now(),
	}
}

func (s *memoryStore) quantity(itemID, warehouseID string) decimal.Decimal {
	if st, ok := s.stocks[inventory.StockKey{ItemID: itemID, WarehouseID: warehouseID}]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}
