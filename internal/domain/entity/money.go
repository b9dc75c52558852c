package entity

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MoneyScale decimales que guardan las columnas NUMERIC de precios y totales.
const MoneyScale = 2

// Cotas exclusivas de NUMERIC(10,2) (products.price) y NUMERIC(12,2) (orders.total_amount).
var (
	MaxPrice      = decimal.New(1, 8)
	MaxOrderTotal = decimal.New(1, 10)
)

// FitsMoney indica si d se guarda sin redondeo: a lo sumo MoneyScale decimales y |d| < limit.
func FitsMoney(d, limit decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale)) && d.Abs().LessThan(limit)
}

// Límites de longitud (en caracteres) de las columnas VARCHAR.
const (
	MaxNameLen  = 200
	MaxEmailLen = 255
	MaxPhoneLen = 50
	MaxTitleLen = 255
)

// TooLong indica si s supera max caracteres, como cuenta VARCHAR(n).
func TooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
