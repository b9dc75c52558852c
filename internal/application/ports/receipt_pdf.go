package ports

import (
	"context"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

// ReceiptPDFGenerator genera el comprobante PDF de un pedido.
type ReceiptPDFGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}
