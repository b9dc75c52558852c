package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
	"github.com/jhoicas/ucoffee-api/pkg/config"
)

// testDSNEnv apunta a una base desechable; sin ella estas pruebas se omiten.
const testDSNEnv = "UCOFFEE_TEST_DATABASE_URL"

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s no definido; se omiten las pruebas contra PostgreSQL", testDSNEnv)
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool, zerolog.Nop()))
	_, err = pool.Exec(ctx, `TRUNCATE users, user_roles, products, orders RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestUserRepo_CreateYRolesAgregados(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	users := NewUserRepository(pool)
	roles := NewRoleRepository(pool)

	u := &entity.User{FullName: "Ada", Email: "ada@x.com", PasswordHash: "hash", Status: entity.UserStatusActive}
	require.NoError(t, users.Create(ctx, u))
	assert.Positive(t, u.ID)
	assert.False(t, u.RegisteredAt.IsZero())

	dup := *u
	assert.ErrorIs(t, users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	got, err := users.FindByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Roles)

	customer, err := roles.FindByName(ctx, entity.RoleCustomer)
	require.NoError(t, err)
	require.NotNil(t, customer)
	admin, err := roles.FindByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, admin)
	require.NoError(t, roles.Assign(ctx, u.ID, customer.ID))
	require.NoError(t, roles.Assign(ctx, u.ID, admin.ID))
	require.NoError(t, roles.Assign(ctx, u.ID, admin.ID))

	got, err = users.FindByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleCustomer, entity.RoleAdmin}, got.Roles)

	missing, err := users.FindByEmail(ctx, "nadie@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTxRunner_ErrorRevierteUsuario(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	err := NewTxRunner(pool).RunAccount(ctx, func(users repository.UserRepository, _ repository.RoleRepository) error {
		u := &entity.User{FullName: "Ada", Email: "ada@x.com", PasswordHash: "hash", Status: entity.UserStatusActive}
		require.NoError(t, users.Create(ctx, u))
		return domain.ErrForbidden
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := NewUserRepository(pool).FindByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_CRUDYPrecioNumeric(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewProductRepository(pool)
	now := time.Now()
	img := "latte.png"

	p := &entity.Product{
		Title: "Латте", Description: "rich", Price: decimal.RequireFromString("99999999.99"),
		Image: &img, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.Positive(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Латте", got.Title)
	assert.True(t, got.Price.Equal(p.Price), got.Price.String())
	require.NotNil(t, got.Image)
	assert.Equal(t, img, *got.Image)

	p.Title = "Latte XL"
	p.Price = decimal.RequireFromString("150.5")
	p.Image = nil
	p.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, p))
	assert.Equal(t, "150.50", p.Price.StringFixed(2))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Latte XL", list[0].Title)
	assert.Nil(t, list[0].Image)
	assert.True(t, list[0].Price.Equal(p.Price))

	missing := &entity.Product{ID: p.ID + 100, Title: "x", Description: "x", Price: decimal.NewFromInt(1)}
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID+100), domain.ErrProductNotFound)

	require.NoError(t, repo.Delete(ctx, p.ID))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepo_ItemsJSONBYTotal(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewOrderRepository(pool)

	items := []byte(`[{"id":3,"title":"Latte","price":120,"priceText":"120 грн","quantity":2}]`)
	rec := &repository.OrderRecord{
		Order: entity.Order{
			CustomerName: "Ada", Phone: "+380501112233", Email: "ada@x.com", Address: "Kyiv",
			TotalAmount: decimal.RequireFromString("9999999999.99"), Status: entity.OrderStatusNew,
		},
		ItemsJSON: items,
	}
	require.NoError(t, repo.Create(ctx, rec))
	assert.Positive(t, rec.Order.ID)
	assert.False(t, rec.Order.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, rec.Order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, string(items), string(got.ItemsJSON))
	assert.True(t, got.Order.TotalAmount.Equal(rec.Order.TotalAmount), got.Order.TotalAmount.String())
	assert.Nil(t, got.Order.UserID)
	assert.Equal(t, entity.OrderStatusNew, got.Order.Status)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	ghost := int64(424242)
	bad := &repository.OrderRecord{Order: rec.Order, ItemsJSON: items}
	bad.Order.UserID = &ghost
	assert.ErrorIs(t, repo.Create(ctx, bad), domain.ErrInvalidInput)
}

// Los límites de validación de la aplicación deben caber en las columnas.
func TestColumnasAdmitenLimitesDeValidacion(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewOrderRepository(pool)
	long := func(n int) string {
		r := make([]rune, n)
		for i := range r {
			r[i] = 'я'
		}
		return string(r)
	}
	rec := &repository.OrderRecord{
		Order: entity.Order{
			CustomerName: long(entity.MaxNameLen), Phone: long(entity.MaxPhoneLen), Email: long(entity.MaxEmailLen),
			Address: "Kyiv", TotalAmount: decimal.NewFromInt(1), Status: entity.OrderStatusNew,
		},
		ItemsJSON: []byte(`[]`),
	}
	require.NoError(t, repo.Create(ctx, rec))

	p := &entity.Product{Title: long(entity.MaxTitleLen), Description: "x", Price: decimal.NewFromInt(1)}
	require.NoError(t, NewProductRepository(pool).Create(ctx, p))
}
