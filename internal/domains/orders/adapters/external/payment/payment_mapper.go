package payment

import (
	paymentclient "github.com/Apurer/go-gin-order-saga/internal/clients/http/payment"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-saga/internal/domains/orders/ports"
)

// ToRequest converts a payment instruction into the payment service request body.
func ToRequest(instruction ports.PaymentInstruction) paymentclient.Request {
	return paymentclient.Request{
		OrderID:     instruction.OrderID,
		Amount:      instruction.Amount,
		PaymentMode: string(instruction.PaymentMode),
	}
}

// FromDetails projects the payment service read model onto the order view summary.
func FromDetails(details *paymentclient.Details) ports.PaymentSummary {
	if details == nil {
		return ports.PaymentSummary{}
	}
	return ports.PaymentSummary{
		PaymentID:   details.PaymentID,
		Status:      details.Status,
		PaymentMode: domain.PaymentMode(details.PaymentMode),
		PaymentDate: details.PaymentDate,
	}
}
