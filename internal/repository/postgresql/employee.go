package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/country"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.name, e.role, e.country_id, e.percent_rate, e.fixed_rate,
		e.fd_tier1_rate, e.fd_tier2_rate, e.fd_tier3_rate, e.fd_bonus_threshold, e.fd_bonus,
		e.buyer_tiers, e.rd_tiers, e.current_balance, e.is_active, e.created_at, e.updated_at,
		c.name
	FROM employees e
	LEFT JOIN countries c ON c.id = e.country_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp                 employee.Employee
		buyerTiers, rdTiers []byte
	)
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Role, &emp.CountryID, &emp.PercentRate, &emp.FixedRate,
		&emp.FdTier1Rate, &emp.FdTier2Rate, &emp.FdTier3Rate, &emp.FdBonusThreshold, &emp.FdBonus,
		&buyerTiers, &rdTiers, &emp.CurrentBalance, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.CountryName,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if err := unmarshalTiers(buyerTiers, &emp.BuyerTiers); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid buyer_tiers of employee %s: %w", emp.ID, err)
	}
	if err := unmarshalTiers(rdTiers, &emp.RdTiers); err != nil {
		return employee.Employee{}, fmt.Errorf("invalid rd_tiers of employee %s: %w", emp.ID, err)
	}
	return emp, nil
}

func unmarshalTiers(raw []byte, dst *[]employee.RateTier) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func marshalTiers(tiers []employee.RateTier) ([]byte, error) {
	if tiers == nil {
		tiers = []employee.RateTier{}
	}
	return json.Marshal(tiers)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	buyerTiers, err := marshalTiers(newEmployee.BuyerTiers)
	if err != nil {
		return employee.Employee{}, err
	}
	rdTiers, err := marshalTiers(newEmployee.RdTiers)
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, name, role, country_id, percent_rate, fixed_rate,
			fd_tier1_rate, fd_tier2_rate, fd_tier3_rate, fd_bonus_threshold, fd_bonus,
			buyer_tiers, rd_tiers, current_balance, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = q.Exec(ctx, query,
		newEmployee.ID, newEmployee.Name, newEmployee.Role, newEmployee.CountryID,
		newEmployee.PercentRate, newEmployee.FixedRate,
		newEmployee.FdTier1Rate, newEmployee.FdTier2Rate, newEmployee.FdTier3Rate,
		newEmployee.FdBonusThreshold, newEmployee.FdBonus,
		buyerTiers, rdTiers, newEmployee.CurrentBalance, newEmployee.IsActive,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.Employee{}, country.ErrCountryNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return r.GetByID(ctx, newEmployee.ID)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE conditions
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("e.name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.CountryID != nil && *filter.CountryID != "" {
		conditions = append(conditions, fmt.Sprintf("e.country_id = $%d", argIdx))
		args = append(args, *filter.CountryID)
		argIdx++
	}
	if filter.Role != nil && *filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("e.role = $%d", argIdx))
		args = append(args, *filter.Role)
		argIdx++
	}
	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("e.is_active = $%d", argIdx))
		args = append(args, *filter.IsActive)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf("%s WHERE %s ORDER BY e.name ASC LIMIT $%d OFFSET $%d",
		employeeSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context, countryID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + ` WHERE e.is_active = TRUE`
	args := []interface{}{}
	if countryID != nil && *countryID != "" {
		query += ` AND e.country_id = $1`
		args = append(args, *countryID)
	}
	query += ` ORDER BY e.name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}
	return employees, nil
}

// Update implements employee.EmployeeRepository. current_balance is only changed through AdjustBalance.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	buyerTiers, err := marshalTiers(e.BuyerTiers)
	if err != nil {
		return employee.Employee{}, err
	}
	rdTiers, err := marshalTiers(e.RdTiers)
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		UPDATE employees
		SET name = $2, role = $3, country_id = $4, percent_rate = $5, fixed_rate = $6,
			fd_tier1_rate = $7, fd_tier2_rate = $8, fd_tier3_rate = $9, fd_bonus_threshold = $10, fd_bonus = $11,
			buyer_tiers = $12, rd_tiers = $13, is_active = $14, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		e.ID, e.Name, e.Role, e.CountryID, e.PercentRate, e.FixedRate,
		e.FdTier1Rate, e.FdTier2Rate, e.FdTier3Rate, e.FdBonusThreshold, e.FdBonus,
		buyerTiers, rdTiers, e.IsActive,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.Employee{}, country.ErrCountryNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	return r.GetByID(ctx, e.ID)
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.ErrEmployeeHasPayment
		}
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// AdjustBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET current_balance = current_balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING current_balance
	`
	var balance decimal.Decimal
	if err := q.QueryRow(ctx, query, id, delta).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, employee.ErrEmployeeNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to adjust balance of employee %s: %w", id, err)
	}
	return balance, nil
}
