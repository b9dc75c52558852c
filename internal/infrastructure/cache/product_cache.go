package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductCache)(nil)

const (
	productListKey = "products:all"
	productKeyFmt  = "product:%d"
	productGenKey  = "products:gen"
	notFoundMarker = "notfound"
	notFoundTTL    = time.Minute
)

// errStaleRead la generación cambió entre la lectura de la DB y la escritura en Redis.
var errStaleRead = errors.New("lectura obsoleta")

// ProductCache decora un ProductRepository con lectura a través de Redis.
// Cualquier fallo de Redis se registra y se continúa contra la base de datos.
//
// Cada escritura incrementa products:gen junto con la invalidación. Una lectura solo se
// cachea si la generación no cambió desde antes de consultar la DB, de modo que una lectura
// que se cruza con un Update/Delete nunca repone la fila vieja.
type ProductCache struct {
	next  repository.ProductRepository
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewProductCache construye el decorador.
func NewProductCache(next repository.ProductRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ProductCache {
	return &ProductCache{next: next, redis: rdb, ttl: ttl, log: log}
}

// cachedProduct forma serializada en Redis; entity.Product no lleva tags JSON.
type cachedProduct struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetByID intenta Redis primero; un miss consulta la DB y guarda el resultado (o una marca de inexistente).
func (c *ProductCache) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	key := fmt.Sprintf(productKeyFmt, id)
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, nil
		}
		var cp cachedProduct
		if err := json.Unmarshal(data, &cp); err == nil {
			if p, err := cp.toEntity(); err == nil {
				return p, nil
			}
		}
		c.log.Warn().Str("key", key).Msg("caché de producto ilegible; se consulta la DB")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("redis no disponible; se consulta la DB")
	}

	gen, genOK := c.generation(ctx)
	product, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !genOK {
		return product, nil
	}
	if product == nil {
		c.storeIfCurrent(ctx, gen, key, notFoundMarker, notFoundTTL)
		return nil, nil
	}
	c.store(ctx, gen, key, fromEntity(product))
	return product, nil
}

// List lee el catálogo completo desde Redis o lo carga y lo cachea.
func (c *ProductCache) List(ctx context.Context) ([]*entity.Product, error) {
	data, err := c.redis.Get(ctx, productListKey).Bytes()
	switch {
	case err == nil:
		var cached []cachedProduct
		if err := json.Unmarshal(data, &cached); err == nil {
			list := make([]*entity.Product, 0, len(cached))
			ok := true
			for _, cp := range cached {
				p, err := cp.toEntity()
				if err != nil {
					ok = false
					break
				}
				list = append(list, p)
			}
			if ok {
				return list, nil
			}
		}
		c.log.Warn().Str("key", productListKey).Msg("caché de catálogo ilegible; se consulta la DB")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", productListKey).Msg("redis no disponible; se consulta la DB")
	}

	gen, genOK := c.generation(ctx)
	list, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if !genOK {
		return list, nil
	}
	cached := make([]cachedProduct, 0, len(list))
	for _, p := range list {
		cached = append(cached, fromEntity(p))
	}
	c.store(ctx, gen, productListKey, cached)
	return list, nil
}

// Create escribe en la DB e invalida el listado.
func (c *ProductCache) Create(ctx context.Context, product *entity.Product) error {
	if err := c.next.Create(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, product.ID)
	return nil
}

// Update escribe en la DB e invalida el producto y el listado.
func (c *ProductCache) Update(ctx context.Context, product *entity.Product) error {
	err := c.next.Update(ctx, product)
	c.invalidate(ctx, product.ID)
	return err
}

// Delete borra en la DB e invalida el producto y el listado.
func (c *ProductCache) Delete(ctx context.Context, id int64) error {
	err := c.next.Delete(ctx, id)
	c.invalidate(ctx, id)
	return err
}

// generation lee products:gen; ok=false si Redis falla (entonces no se cachea nada).
func (c *ProductCache) generation(ctx context.Context) (string, bool) {
	gen, err := c.redis.Get(ctx, productGenKey).Result()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil):
		return "0", true
	}
	c.log.Warn().Err(err).Msg("redis no disponible; no se cachea la lectura")
	return "", false
}

func (c *ProductCache) store(ctx context.Context, gen, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar para caché")
		return
	}
	c.storeIfCurrent(ctx, gen, key, data, c.ttl)
}

// storeIfCurrent escribe key solo si products:gen sigue valiendo gen (WATCH + MULTI).
func (c *ProductCache) storeIfCurrent(ctx context.Context, gen, key string, value any, ttl time.Duration) {
	err := c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, productGenKey).Result()
		if errors.Is(err, redis.Nil) {
			current = "0"
		} else if err != nil {
			return err
		}
		if current != gen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}, productGenKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		c.log.Debug().Str("key", key).Msg("escritura concurrente; no se cachea la lectura")
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en caché")
	}
}

func (c *ProductCache) invalidate(ctx context.Context, id int64) {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, productGenKey)
		pipe.Del(ctx, fmt.Sprintf(productKeyFmt, id), productListKey)
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Int64("product_id", id).Msg("no se pudo invalidar caché de producto")
	}
}

func fromEntity(p *entity.Product) cachedProduct {
	return cachedProduct{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.String(),
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (cp cachedProduct) toEntity() (*entity.Product, error) {
	price, err := decimal.NewFromString(cp.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          cp.ID,
		Title:       cp.Title,
		Description: cp.Description,
		Price:       price,
		Image:       cp.Image,
		CreatedAt:   cp.CreatedAt,
		UpdatedAt:   cp.UpdatedAt,
	}, nil
}
