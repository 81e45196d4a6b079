package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/application/usecase"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
	"github.com/elhornero/panaderia-api/pkg/config"
	"github.com/elhornero/panaderia-api/pkg/logger"
)

var (
	_ inventory.StockCache    = (*StockCache)(nil)
	_ usecase.StockLevelCache = (*StockCache)(nil)
)

// StockCache caché de existencias sobre Redis. Las escrituras de stock lo
// invalidan después del Commit; las lecturas lo llenan (read-through).
// Cualquier falla de Redis se registra y se degrada a la BD, nunca se propaga.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New conecta con Redis y construye el caché. Addr vacío devuelve nil
// (caché desactivado; los llamadores toleran nil).
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*StockCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StockCache{client: client, ttl: ttl, log: log}, nil
}

func key(itemID, warehouseID string) string {
	return "stock:" + warehouseID + ":" + itemID
}

// Get busca la fila en el caché. (nil, false) en miss o error.
func (c *StockCache) Get(ctx context.Context, itemID, warehouseID string) (*entity.Stock, bool) {
	raw, err := c.client.Get(ctx, key(itemID, warehouseID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("caché de stock: fallo en GET")
		}
		return nil, false
	}
	var s entity.Stock
	if err := json.Unmarshal(raw, &s); err != nil {
		c.log.Warn().Err(err).Msg("caché de stock: entrada corrupta")
		return nil, false
	}
	return &s, true
}

// Set guarda la fila con TTL.
func (c *StockCache) Set(ctx context.Context, stock *entity.Stock) {
	raw, err := json.Marshal(stock)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(stock.ItemID, stock.WarehouseID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("caché de stock: fallo en SET")
	}
}

// Invalidate borra las claves tocadas por una transacción confirmada.
func (c *StockCache) Invalidate(ctx context.Context, keys ...inventory.StockKey) {
	if len(keys) == 0 {
		return
	}
	redisKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		redisKeys = append(redisKeys, key(k.ItemID, k.WarehouseID))
	}
	if err := c.client.Del(ctx, redisKeys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", redisKeys).Msg("caché de stock: fallo al invalidar")
	}
}

// Close cierra la conexión con Redis.
func (c *StockCache) Close() error {
	return c.client.Close()
}
