package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type PaymentServiceImpl struct {
	tx           database.Transactor
	paymentRepo  payment.PaymentRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewPaymentService(
	tx database.Transactor,
	paymentRepo payment.PaymentRepository,
	employeeRepo employee.EmployeeRepository,
) payment.PaymentService {
	return &PaymentServiceImpl{
		tx:           tx,
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payment.PaymentResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payment.PaymentResponse{}, fmt.Errorf("failed to generate payment id: %w", err)
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.paymentRepo.Create(ctx, payment.Payment{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
		Date:       date,
		Status:     payment.StatusPending,
		Note:       req.Note,
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	return payment.NewPaymentResponse(created), nil
}

func (s *PaymentServiceImpl) GetPayment(ctx context.Context, id string) (payment.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	return payment.NewPaymentResponse(p), nil
}

func (s *PaymentServiceImpl) ListPayments(ctx context.Context, filter payment.PaymentFilter) (payment.ListPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payment.ListPaymentResponse{}, err
	}

	payments, total, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return payment.ListPaymentResponse{}, err
	}

	data := make([]payment.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		data = append(data, payment.NewPaymentResponse(p))
	}

	return payment.ListPaymentResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PaymentServiceImpl) MarkPaid(ctx context.Context, id string) (payment.PaymentResponse, error) {
	var paid payment.Payment
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		paid, err = s.paymentRepo.MarkPaid(ctx, id, s.now())
		if err != nil {
			return err
		}
		if _, err := s.employeeRepo.AdjustBalance(ctx, paid.EmployeeID, paid.Amount.Neg()); err != nil {
			return fmt.Errorf("failed to debit employee balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	return payment.NewPaymentResponse(paid), nil
}

func (s *PaymentServiceImpl) DeletePayment(ctx context.Context, id string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.paymentRepo.Delete(ctx, id); err != nil {
			return err
		}
		if p.Status != payment.StatusPaid {
			return nil
		}
		if _, err := s.employeeRepo.AdjustBalance(ctx, p.EmployeeID, p.Amount); err != nil {
			return fmt.Errorf("failed to restore employee balance: %w", err)
		}
		return nil
	})
}
