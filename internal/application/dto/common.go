package dto

import "github.com/shopspring/decimal"

func init() {
	// El cliente web opera con precios numéricos, no con strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP. Error es el mensaje legible; Code es estable para clientes.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SuccessResponse respuesta mínima para operaciones sin cuerpo propio.
type SuccessResponse struct {
	Success bool `json:"success"`
}
