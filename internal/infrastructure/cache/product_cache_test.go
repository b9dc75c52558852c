package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

// fakeProductRepo repositorio en memoria que cuenta lecturas contra la "DB".
type fakeProductRepo struct {
	items     map[int64]*entity.Product
	nextID    int64
	getCalls  int
	listCalls int
	// afterRead corre después de leer la fila y antes de devolverla; simula una escritura concurrente.
	afterRead func()
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: map[int64]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	f.getCalls++
	p, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	if hook := f.afterRead; hook != nil {
		f.afterRead = nil
		hook()
	}
	return &cp, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	f.listCalls++
	var out []*entity.Product
	for id := f.nextID; id > 0; id-- {
		if p, ok := f.items[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := f.items[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.items, id)
	return nil
}

func setupCache(t *testing.T) (*ProductCache, *fakeProductRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	repo := newFakeProductRepo()
	return NewProductCache(repo, rdb, 5*time.Minute, zerolog.Nop()), repo, mr
}

func latte() *entity.Product {
	img := "latte.jpg"
	return &entity.Product{Title: "Latte", Description: "rich", Price: decimal.NewFromInt(120), Image: &img}
}

func TestProductCache_GetByID_SegundaLecturaDesdeRedis(t *testing.T) {
	ctx := context.Background()
	c, repo, _ := setupCache(t)
	require.NoError(t, c.Create(ctx, latte()))

	first, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	second, err := c.GetByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls, "la segunda lectura debe salir de Redis")
	assert.Equal(t, first.Title, second.Title)
	assert.True(t, first.Price.Equal(second.Price))
	require.NotNil(t, second.Image)
	assert.Equal(t, "latte.jpg", *second.Image)
}

func TestProductCache_GetByID_InexistenteSeCachea(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setupCache(t)

	p, err := c.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, p)
	p, err = c.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.Equal(t, 1, repo.getCalls)
	val, err := mr.Get("product:99")
	require.NoError(t, err)
	assert.Equal(t, notFoundMarker, val)
}

func TestProductCache_UpdateInvalida(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setupCache(t)
	require.NoError(t, c.Create(ctx, latte()))

	_, err := c.List(ctx)
	require.NoError(t, err)
	_, err = c.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, mr.Exists(productListKey))

	upd := latte()
	upd.ID = 1
	upd.Price = decimal.NewFromInt(150)
	require.NoError(t, c.Update(ctx, upd))
	assert.False(t, mr.Exists(productListKey))
	assert.False(t, mr.Exists("product:1"))

	got, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 2, repo.getCalls)
}

func TestProductCache_List_DesdeRedis(t *testing.T) {
	ctx := context.Background()
	c, repo, _ := setupCache(t)
	require.NoError(t, c.Create(ctx, latte()))

	_, err := c.List(ctx)
	require.NoError(t, err)
	list, err := c.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
	require.Len(t, list, 1)
	assert.Equal(t, "Latte", list[0].Title)
}

func TestProductCache_DeleteInexistentePropagaError(t *testing.T) {
	c, _, _ := setupCache(t)
	err := c.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductCache_RedisCaidoUsaDB(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setupCache(t)
	require.NoError(t, c.Create(ctx, latte()))
	mr.Close()

	p, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Latte", p.Title)
	assert.Equal(t, 1, repo.getCalls)
}

func TestProductCache_LecturaCruzadaConUpdateNoRestauraFilaVieja(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setupCache(t)
	require.NoError(t, c.Create(ctx, latte()))

	repo.afterRead = func() {
		upd := latte()
		upd.ID = 1
		upd.Title = "Latte XL"
		require.NoError(t, c.Update(ctx, upd))
	}
	stale, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Latte", stale.Title)
	assert.False(t, mr.Exists("product:1"), "la lectura vieja no debe quedar en caché")

	got, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Latte XL", got.Title)
	assert.True(t, mr.Exists("product:1"))
}

func TestProductCache_InvalidarIncrementaGeneracion(t *testing.T) {
	ctx := context.Background()
	c, _, mr := setupCache(t)
	require.NoError(t, c.Create(ctx, latte()))
	require.NoError(t, c.Delete(ctx, 1))

	gen, err := mr.Get(productGenKey)
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
}
