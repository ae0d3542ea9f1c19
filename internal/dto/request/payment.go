package request

import "github.com/shopspring/decimal"

type ProcessPaymentRequest struct {
	Method   string           `json:"method" validate:"required,oneof=card simple_pay"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
}
