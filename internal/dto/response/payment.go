package response

import (
	"time"

	"hotel-reservation/internal/data/entity"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID             string          `json:"id"`
	BookingID      string          `json:"booking_id"`
	Amount         decimal.Decimal `json:"amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Method         string          `json:"method"`
	Status         string          `json:"status"`
	TransactionID  string          `json:"transaction_id"`
	PaidAt         time.Time       `json:"paid_at"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             payment.ID.String(),
		BookingID:      payment.BookingID.String(),
		Amount:         payment.Amount,
		DiscountAmount: payment.DiscountAmount,
		Method:         string(payment.Method),
		Status:         string(payment.Status),
		TransactionID:  payment.TransactionID,
		PaidAt:         payment.PaidAt,
	}
}

// RefundResponse reports both records changed by a refund.
type RefundResponse struct {
	Payment PaymentResponse `json:"payment"`
	Booking BookingResponse `json:"booking"`
}
