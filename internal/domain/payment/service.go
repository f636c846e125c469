package payment

import "context"

type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (PaymentResponse, error)
	ListPayments(ctx context.Context, filter PaymentFilter) (ListPaymentResponse, error)

	// MarkPaid transitions pending to paid and debits the employee balance in one transaction
	MarkPaid(ctx context.Context, id string) (PaymentResponse, error)

	// DeletePayment removes a payment, crediting the employee balance back if it was paid
	DeletePayment(ctx context.Context, id string) error
}
