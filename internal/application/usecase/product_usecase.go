package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ucoffee-api/internal/application/dto"
	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto y devuelve la fila con el id asignado por la DB.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. ErrProductNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List devuelve todo el catálogo, id más reciente primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update reemplaza título, descripción, precio e imagen. Misma validación que Create.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) error {
	product, err := productFromRequest(in)
	if err != nil {
		return err
	}
	product.ID = id
	product.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, product)
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, domain.Invalid("título y descripción son requeridos")
	}
	if entity.TooLong(title, entity.MaxTitleLen) {
		return nil, domain.Invalid(fmt.Sprintf("el título no puede superar %d caracteres", entity.MaxTitleLen))
	}
	if !in.Price.IsPositive() {
		return nil, domain.Invalid("el precio debe ser un número positivo")
	}
	if !entity.FitsMoney(in.Price, entity.MaxPrice) {
		return nil, domain.Invalid(fmt.Sprintf("el precio admite %d decimales y debe ser menor que %s", entity.MoneyScale, entity.MaxPrice))
	}
	var image *string
	if in.Image != nil && strings.TrimSpace(*in.Image) != "" {
		img := strings.TrimSpace(*in.Image)
		image = &img
	}
	return &entity.Product{
		Title:       title,
		Description: description,
		Price:       in.Price,
		Image:       image,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
	}
}
