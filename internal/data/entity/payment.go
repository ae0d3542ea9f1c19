package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodSimplePay PaymentMethod = "simple_pay"
)

type Payment struct {
	Base
	BookingID      uuid.UUID       `db:"booking_id"`
	Amount         decimal.Decimal `db:"amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	Method         PaymentMethod   `db:"method"`
	Status         PaymentStatus   `db:"status"`
	TransactionID  string          `db:"transaction_id"`
	PaidAt         time.Time       `db:"paid_at"`
}

// PaymentAmount returns total minus discount. The discount must lie in [0, total].
func PaymentAmount(total, discount decimal.Decimal) (decimal.Decimal, bool) {
	if discount.IsNegative() || discount.GreaterThan(total) {
		return decimal.Zero, false
	}
	return total.Sub(discount), true
}
