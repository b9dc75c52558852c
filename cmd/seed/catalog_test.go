package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

func TestReadCatalog_UTF8ConCabecera(t *testing.T) {
	in := "title;description;price;image\n" +
		"Latte;rich;120;latte.png\n" +
		"Espresso;strong;60,50;\n"
	products, err := readCatalog(strings.NewReader(in), "utf-8")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Latte", products[0].Title)
	require.NotNil(t, products[0].Image)
	assert.Equal(t, "latte.png", *products[0].Image)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("60.5")))
	assert.Nil(t, products[1].Image)
}

func TestReadCatalog_Windows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("Капучино;Ніжний смак;95\n")
	require.NoError(t, err)
	products, err := readCatalog(bytes.NewBufferString(encoded), "windows-1251")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Капучино", products[0].Title)
	assert.Equal(t, "Ніжний смак", products[0].Description)
}

func TestReadCatalog_Errores(t *testing.T) {
	cases := map[string]string{
		"precio cero":    "Latte;rich;0\n",
		"precio texto":   "Latte;rich;caro\n",
		"pocas columnas": "Latte;rich\n",
		"titulo vacio":   ";rich;10\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := readCatalog(strings.NewReader(in), "")
			assert.Error(t, err)
		})
	}
	_, err := readCatalog(strings.NewReader(""), "koi8-r")
	assert.Error(t, err)
}

// catalogStore catálogo en memoria con el orden de inserción.
type catalogStore struct {
	items     []*entity.Product
	createErr error
}

func (s *catalogStore) Create(_ context.Context, p *entity.Product) error {
	if s.createErr != nil {
		return s.createErr
	}
	p.ID = int64(len(s.items) + 1)
	cp := *p
	s.items = append(s.items, &cp)
	return nil
}

func (s *catalogStore) GetByID(context.Context, int64) (*entity.Product, error) { return nil, nil }
func (s *catalogStore) List(context.Context) ([]*entity.Product, error) { return s.items, nil }
func (s *catalogStore) Update(context.Context, *entity.Product) error { return nil }
func (s *catalogStore) Delete(context.Context, int64) error { return nil }

func TestImportCatalog_RepetirNoDuplica(t *testing.T) {
	const csv = "Latte;rich;120\nEspresso;strong;60\nlatte;otra vez;130\n"
	store := &catalogStore{}
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	products, err := readCatalog(strings.NewReader(csv), "utf-8")
	require.NoError(t, err)
	inserted, skipped, err := importCatalog(ctx, store, products, now)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 1, skipped, "el título repetido dentro del archivo se omite")
	require.Len(t, store.items, 2)
	assert.Equal(t, now, store.items[0].CreatedAt)

	products, err = readCatalog(strings.NewReader(csv), "utf-8")
	require.NoError(t, err)
	inserted, skipped, err = importCatalog(ctx, store, products, now)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, 3, skipped)
	assert.Len(t, store.items, 2)
}

func TestImportCatalog_ErrorDeInsercion(t *testing.T) {
	store := &catalogStore{createErr: errors.New("conexión rechazada")}
	products := []entity.Product{{Title: "Latte", Description: "rich", Price: decimal.NewFromInt(1)}}
	inserted, _, err := importCatalog(context.Background(), store, products, time.Now())
	assert.Error(t, err)
	assert.Zero(t, inserted)
}

func TestReadCatalog_PrecioFueraDeRango(t *testing.T) {
	for _, price := range []string{"12,345", "100000000"} {
		_, err := readCatalog(strings.NewReader("Latte;rich;"+price+"\n"), "utf-8")
		assert.Error(t, err, price)
	}
}
