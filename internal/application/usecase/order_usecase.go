package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ucoffee-api/internal/application/dto"
	"github.com/jhoicas/ucoffee-api/internal/application/ports"
	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

// OrderUseCase creación de pedidos desde el carrito y consulta para administración.
type OrderUseCase struct {
	repo repository.OrderRepository
	pdf  ports.ReceiptPDFGenerator
	log  zerolog.Logger
}

// NewOrderUseCase construye el caso de uso. pdf puede ser nil si no se exponen comprobantes.
func NewOrderUseCase(repo repository.OrderRepository, pdf ports.ReceiptPDFGenerator, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, pdf: pdf, log: log}
}

// Create valida los datos de contacto y el carrito, calcula el total (Σ precio × cantidad)
// y persiste el pedido con estado "new". El total queda fijo desde este momento.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)
	address := strings.TrimSpace(in.Address)
	if name == "" || phone == "" || email == "" || address == "" {
		return nil, domain.Invalid("nombre, teléfono, email y dirección son requeridos")
	}
	switch {
	case entity.TooLong(name, entity.MaxNameLen):
		return nil, domain.Invalid(fmt.Sprintf("el nombre no puede superar %d caracteres", entity.MaxNameLen))
	case entity.TooLong(phone, entity.MaxPhoneLen):
		return nil, domain.Invalid(fmt.Sprintf("el teléfono no puede superar %d caracteres", entity.MaxPhoneLen))
	case entity.TooLong(email, entity.MaxEmailLen):
		return nil, domain.Invalid(fmt.Sprintf("el email no puede superar %d caracteres", entity.MaxEmailLen))
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("el pedido debe tener al menos un producto")
	}

	items := make([]entity.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		item, err := orderItemFromDTO(it)
		if err != nil {
			return nil, domain.Invalid(fmt.Sprintf("item %d: %s", i+1, err.Error()))
		}
		items = append(items, item)
	}

	total := entity.SumItems(items)
	if !total.LessThan(entity.MaxOrderTotal) {
		return nil, domain.Invalid(fmt.Sprintf("el total del pedido debe ser menor que %s", entity.MaxOrderTotal))
	}

	doc, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("serializar items: %w", err)
	}
	rec := &repository.OrderRecord{
		Order: entity.Order{
			UserID:       in.UserID,
			CustomerName: name,
			Phone:        phone,
			Email:        email,
			Address:      address,
			Items:        items,
			TotalAmount:  total,
			Status:       entity.OrderStatusNew,
		},
		ItemsJSON: doc,
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return &dto.CreateOrderResponse{
		ID:         rec.Order.ID,
		Success:    true,
		TotalPrice: rec.Order.TotalAmount,
	}, nil
}

// List devuelve todos los pedidos, más reciente primero. Un documento de items corrupto
// no falla la consulta: el pedido sale con items vacíos y se registra un warning.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	recs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(recs))
	for _, rec := range recs {
		order := uc.decode(rec)
		out = append(out, toOrderResponse(&order))
	}
	return out, nil
}

// GetByID devuelve un pedido. ErrOrderNotFound si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// Receipt genera el comprobante PDF del pedido.
func (uc *OrderUseCase) Receipt(ctx context.Context, id int64) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador de comprobantes no configurado")
	}
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateOrderReceipt(ctx, order)
}

func (uc *OrderUseCase) load(ctx context.Context, id int64) (*entity.Order, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrOrderNotFound
	}
	order := uc.decode(rec)
	return &order, nil
}

func (uc *OrderUseCase) decode(rec *repository.OrderRecord) entity.Order {
	order := rec.Order
	order.Items = []entity.OrderItem{}
	if len(rec.ItemsJSON) == 0 {
		return order
	}
	var items []entity.OrderItem
	if err := json.Unmarshal(rec.ItemsJSON, &items); err != nil {
		uc.log.Warn().Err(err).Int64("order_id", order.ID).Msg("items_json inválido; se devuelve el pedido sin items")
		return order
	}
	if items != nil {
		order.Items = items
	}
	return order
}

func orderItemFromDTO(it dto.OrderItem) (entity.OrderItem, error) {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		return entity.OrderItem{}, fmt.Errorf("título requerido")
	}
	if it.Price.IsNegative() {
		return entity.OrderItem{}, fmt.Errorf("precio no puede ser negativo")
	}
	if !entity.FitsMoney(it.Price, entity.MaxPrice) {
		return entity.OrderItem{}, fmt.Errorf("precio admite %d decimales y debe ser menor que %s", entity.MoneyScale, entity.MaxPrice)
	}
	qty := 1
	if it.Quantity != nil {
		qty = *it.Quantity
	}
	if qty < 1 {
		return entity.OrderItem{}, fmt.Errorf("cantidad debe ser al menos 1")
	}
	return entity.OrderItem{
		ID:        it.ID,
		ProductID: it.ProductID,
		Title:     title,
		Price:     it.Price,
		PriceText: it.PriceText,
		Quantity:  qty,
	}, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		qty := it.Quantity
		items = append(items, dto.OrderItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			PriceText: it.PriceText,
			Quantity:  &qty,
		})
	}
	return dto.OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		Name:       o.CustomerName,
		Phone:      o.Phone,
		Email:      o.Email,
		Address:    o.Address,
		Items:      items,
		TotalPrice: o.TotalAmount,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}
