package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/domain/expense"
	"github.com/google/uuid"
)

type ExpenseServiceImpl struct {
	ledger       balance.Ledger
	balanceRepo  balance.BalanceRepository
	expenseRepo  expense.ExpenseRepository
	exchangeCode string
}

func NewExpenseService(
	ledger balance.Ledger,
	balanceRepo balance.BalanceRepository,
	expenseRepo expense.ExpenseRepository,
	exchangeCode string,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		ledger:       ledger,
		balanceRepo:  balanceRepo,
		expenseRepo:  expenseRepo,
		exchangeCode: exchangeCode,
	}
}

func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to generate expense id: %w", err)
	}
	e := fromRequest(id.String(), req)

	var (
		saved   expense.Expense
		entries []string
	)
	err = s.ledger.Atomically(ctx, func(ctx context.Context) error {
		if err := s.checkTarget(ctx, e); err != nil {
			return err
		}
		saved, err = s.expenseRepo.Create(ctx, e)
		if err != nil {
			return err
		}
		entries, err = s.post(ctx, saved)
		return err
	})
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	resp := expense.NewExpenseResponse(saved)
	resp.TransactionIDs = entries
	return resp, nil
}

func (s *ExpenseServiceImpl) GetExpense(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	e, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	entries, err := s.balanceRepo.ListTransactionsByLink(ctx, balance.ExpenseLink(id))
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	resp := expense.NewExpenseResponse(e)
	for _, t := range entries {
		resp.TransactionIDs = append(resp.TransactionIDs, t.ID)
	}
	return resp, nil
}

func (s *ExpenseServiceImpl) ListExpenses(ctx context.Context, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	if err := filter.Validate(); err != nil {
		return expense.ListExpenseResponse{}, err
	}

	expenses, total, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return expense.ListExpenseResponse{}, err
	}

	data := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		data = append(data, expense.NewExpenseResponse(e))
	}

	return expense.ListExpenseResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateExpense re-derives the ledger entries: the old ones are reverted and removed,
// then the entries of the updated expense are posted.
func (s *ExpenseServiceImpl) UpdateExpense(ctx context.Context, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}
	e := fromRequest(req.ID, req.CreateExpenseRequest)

	var (
		saved   expense.Expense
		entries []string
	)
	err := s.ledger.Atomically(ctx, func(ctx context.Context) error {
		if _, err := s.expenseRepo.GetByID(ctx, e.ID); err != nil {
			return err
		}
		if err := s.checkTarget(ctx, e); err != nil {
			return err
		}
		if _, err := s.ledger.RevertLinked(ctx, balance.ExpenseLink(e.ID)); err != nil {
			return err
		}

		var err error
		saved, err = s.expenseRepo.Update(ctx, e)
		if err != nil {
			return err
		}
		entries, err = s.post(ctx, saved)
		return err
	})
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	resp := expense.NewExpenseResponse(saved)
	resp.TransactionIDs = entries
	return resp, nil
}

func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, id string) error {
	return s.ledger.Atomically(ctx, func(ctx context.Context) error {
		if _, err := s.expenseRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := s.ledger.RevertLinked(ctx, balance.ExpenseLink(id)); err != nil {
			return err
		}
		return s.expenseRepo.Delete(ctx, id)
	})
}

// checkTarget makes sure an agency top-up points at an agency balance.
func (s *ExpenseServiceImpl) checkTarget(ctx context.Context, e expense.Expense) error {
	if !e.IsAgencyTopUp() {
		return nil
	}
	target, err := s.balanceRepo.GetBalanceByCode(ctx, *e.TargetBalanceCode)
	if err != nil {
		return err
	}
	if target.Type != balance.TypeAgency {
		return balance.ErrTargetBalanceNotAgency
	}
	return nil
}

// post creates the ledger entries of e: a transfer out of the exchange balance plus the
// matching agency top-up for agency_topup, a single exchange expense otherwise.
func (s *ExpenseServiceImpl) post(ctx context.Context, e expense.Expense) ([]string, error) {
	link := balance.ExpenseLink(e.ID)
	desc := e.Category
	if e.Description != nil && *e.Description != "" {
		desc = *e.Description
	}

	postings := []balance.Posting{{
		BalanceCode: s.exchangeCode,
		Type:        balance.TransactionExpense,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: desc,
		Link:        &link,
	}}
	if e.IsAgencyTopUp() {
		postings[0].Type = balance.TransactionTransfer
		postings = append(postings, balance.Posting{
			BalanceCode: *e.TargetBalanceCode,
			Type:        balance.TransactionTopUp,
			Amount:      e.Amount,
			Date:        e.Date,
			Description: desc,
			Link:        &link,
		})
	}

	ids := make([]string, 0, len(postings))
	for _, p := range postings {
		t, err := s.ledger.Post(ctx, p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func fromRequest(id string, req expense.CreateExpenseRequest) expense.Expense {
	date, _ := time.Parse("2006-01-02", req.Date)

	e := expense.Expense{
		ID:          id,
		Date:        date,
		CountryID:   req.CountryID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if e.IsAgencyTopUp() {
		code := strings.ToUpper(strings.TrimSpace(*req.TargetBalanceCode))
		e.TargetBalanceCode = &code
	}
	return e
}
