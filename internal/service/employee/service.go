package employee

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	paymentRepo  payment.PaymentRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	paymentRepo payment.PaymentRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		ID:               id.String(),
		Name:             req.Name,
		Role:             employee.Role(req.Role),
		CountryID:        req.CountryID,
		PercentRate:      req.PercentRate,
		FixedRate:        req.FixedRate,
		FdTier1Rate:      req.FdTier1Rate,
		FdTier2Rate:      req.FdTier2Rate,
		FdTier3Rate:      req.FdTier3Rate,
		FdBonusThreshold: req.FdBonusThreshold,
		FdBonus:          req.FdBonus,
		BuyerTiers:       req.BuyerTiers,
		RdTiers:          req.RdTiers,
		CurrentBalance:   decimal.Zero,
		IsActive:         true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService. An empty country_id detaches the
// employee from its country.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Role != nil {
		emp.Role = employee.Role(*req.Role)
	}
	if req.CountryID != nil {
		if *req.CountryID == "" {
			emp.CountryID = nil
		} else {
			emp.CountryID = req.CountryID
		}
	}
	if req.PercentRate != nil {
		emp.PercentRate = req.PercentRate
	}
	if req.FixedRate != nil {
		emp.FixedRate = req.FixedRate
	}
	if req.FdTier1Rate != nil {
		emp.FdTier1Rate = req.FdTier1Rate
	}
	if req.FdTier2Rate != nil {
		emp.FdTier2Rate = req.FdTier2Rate
	}
	if req.FdTier3Rate != nil {
		emp.FdTier3Rate = req.FdTier3Rate
	}
	if req.FdBonusThreshold != nil {
		emp.FdBonusThreshold = req.FdBonusThreshold
	}
	if req.FdBonus != nil {
		emp.FdBonus = req.FdBonus
	}
	if req.BuyerTiers != nil {
		emp.BuyerTiers = *req.BuyerTiers
	}
	if req.RdTiers != nil {
		emp.RdTiers = *req.RdTiers
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService. Employees with payments can only be
// deactivated.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.paymentRepo.CountByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return employee.ErrEmployeeHasPayment
	}

	return s.employeeRepo.Delete(ctx, id)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		data = append(data, employee.NewEmployeeResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
