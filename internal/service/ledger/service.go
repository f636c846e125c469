package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/balance"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/lock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LockKey serializes every ledger mutation across API instances and the cron worker.
const LockKey = "finops:ledger"

type ledgerScopeKey struct{}

type LedgerServiceImpl struct {
	tx          database.Transactor
	locker      lock.Locker
	balanceRepo balance.BalanceRepository
}

func NewLedgerService(tx database.Transactor, locker lock.Locker, balanceRepo balance.BalanceRepository) balance.LedgerService {
	return &LedgerServiceImpl{
		tx:          tx,
		locker:      locker,
		balanceRepo: balanceRepo,
	}
}

// ========== INTERNAL LEDGER API ==========

// Atomically implements balance.Ledger. Nested calls reuse the lock and transaction of
// the outermost one.
func (s *LedgerServiceImpl) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(ledgerScopeKey{}).(bool); held {
		return s.tx.WithTransaction(ctx, fn)
	}

	l, err := s.locker.Obtain(ctx, LockKey)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to release ledger lock", "error", err)
		}
	}()

	return s.tx.WithTransaction(context.WithValue(ctx, ledgerScopeKey{}, true), fn)
}

// Post implements balance.Ledger.
func (s *LedgerServiceImpl) Post(ctx context.Context, p balance.Posting) (balance.Transaction, error) {
	if !p.Type.IsValid() {
		return balance.Transaction{}, balance.ErrInvalidTransactionType
	}
	if !p.Amount.IsPositive() {
		return balance.Transaction{}, balance.ErrInvalidAmount
	}

	b, err := s.balanceRepo.GetBalanceByCode(ctx, p.BalanceCode)
	if err != nil {
		return balance.Transaction{}, err
	}

	t := balance.Transaction{
		BalanceID: b.ID,
		Type:      p.Type,
		Amount:    p.Amount,
		Date:      p.Date,
	}
	if p.Description != "" {
		desc := p.Description
		t.Description = &desc
	}
	if p.Link != nil {
		p.Link.Apply(&t)
	}

	return s.apply(ctx, t)
}

// RevertLinked implements balance.Ledger.
func (s *LedgerServiceImpl) RevertLinked(ctx context.Context, link balance.Link) (int, error) {
	entries, err := s.balanceRepo.ListTransactionsByLink(ctx, link)
	if err != nil {
		return 0, err
	}
	for _, t := range entries {
		if err := s.revert(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

// apply stores t and adds its effect to the locked balance.
func (s *LedgerServiceImpl) apply(ctx context.Context, t balance.Transaction) (balance.Transaction, error) {
	if _, err := s.balanceRepo.LockBalance(ctx, t.BalanceID); err != nil {
		return balance.Transaction{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return balance.Transaction{}, fmt.Errorf("failed to generate transaction id: %w", err)
	}
	t.ID = id.String()

	created, err := s.balanceRepo.CreateTransaction(ctx, t)
	if err != nil {
		return balance.Transaction{}, err
	}
	if _, err := s.balanceRepo.AdjustBalance(ctx, t.BalanceID, t.Effect()); err != nil {
		return balance.Transaction{}, err
	}
	return created, nil
}

// revert undoes the effect of t on its balance, then deletes it.
func (s *LedgerServiceImpl) revert(ctx context.Context, t balance.Transaction) error {
	if _, err := s.balanceRepo.LockBalance(ctx, t.BalanceID); err != nil {
		return err
	}
	if _, err := s.balanceRepo.AdjustBalance(ctx, t.BalanceID, t.Effect().Neg()); err != nil {
		return err
	}
	return s.balanceRepo.DeleteTransaction(ctx, t.ID)
}

// lockInOrder row-locks balances in id order so concurrent writers never wait on each other in a cycle.
func (s *LedgerServiceImpl) lockInOrder(ctx context.Context, ids ...string) error {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var last string
	for _, id := range sorted {
		if id == last {
			continue
		}
		if _, err := s.balanceRepo.LockBalance(ctx, id); err != nil {
			return err
		}
		last = id
	}
	return nil
}

// ========== BALANCES ==========

func (s *LedgerServiceImpl) CreateBalance(ctx context.Context, req balance.CreateBalanceRequest) (balance.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return balance.BalanceResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return balance.BalanceResponse{}, fmt.Errorf("failed to generate balance id: %w", err)
	}

	var created balance.Balance
	err = s.Atomically(ctx, func(ctx context.Context) error {
		created, err = s.balanceRepo.CreateBalance(ctx, balance.Balance{
			ID:            id.String(),
			Type:          balance.Type(req.Type),
			Code:          req.Code,
			Name:          req.Name,
			CurrentAmount: decimal.Zero,
			Currency:      req.Currency,
		})
		if err != nil {
			return err
		}
		if !req.InitialAmount.IsPositive() {
			return nil
		}

		desc := "Opening balance"
		if _, err := s.apply(ctx, balance.Transaction{
			BalanceID:   created.ID,
			Type:        balance.TransactionTopUp,
			Amount:      req.InitialAmount,
			Date:        time.Now().UTC(),
			Description: &desc,
		}); err != nil {
			return err
		}
		created, err = s.balanceRepo.GetBalanceByID(ctx, created.ID)
		return err
	})
	if err != nil {
		return balance.BalanceResponse{}, err
	}

	return balance.NewBalanceResponse(created), nil
}

func (s *LedgerServiceImpl) GetBalance(ctx context.Context, id string) (balance.BalanceResponse, error) {
	b, err := s.balanceRepo.GetBalanceByID(ctx, id)
	if err != nil {
		return balance.BalanceResponse{}, err
	}
	return balance.NewBalanceResponse(b), nil
}

func (s *LedgerServiceImpl) ListBalances(ctx context.Context) ([]balance.BalanceResponse, error) {
	balances, err := s.balanceRepo.ListBalances(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]balance.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, balance.NewBalanceResponse(b))
	}
	return responses, nil
}

func (s *LedgerServiceImpl) ReconcileBalance(ctx context.Context, id string, fix bool) (balance.ReconcileResponse, error) {
	var resp balance.ReconcileResponse

	err := s.Atomically(ctx, func(ctx context.Context) error {
		b, err := s.balanceRepo.LockBalance(ctx, id)
		if err != nil {
			return err
		}
		sum, err := s.balanceRepo.SumTransactions(ctx, id)
		if err != nil {
			return err
		}

		resp = balance.ReconcileResponse{
			BalanceID:     b.ID,
			Code:          b.Code,
			CurrentAmount: b.CurrentAmount,
			LedgerAmount:  sum,
			Drift:         b.CurrentAmount.Sub(sum),
		}
		if !fix || resp.Drift.IsZero() {
			return nil
		}

		if _, err := s.balanceRepo.SetBalanceAmount(ctx, id, sum); err != nil {
			return err
		}
		slog.Warn("balance drift corrected",
			"balance", b.Code,
			"current_amount", b.CurrentAmount.String(),
			"ledger_amount", sum.String(),
		)
		resp.Fixed = true
		return nil
	})
	if err != nil {
		return balance.ReconcileResponse{}, err
	}

	return resp, nil
}

// ========== TRANSACTIONS ==========

func (s *LedgerServiceImpl) CreateTransaction(ctx context.Context, req balance.CreateTransactionRequest) (balance.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return balance.TransactionResponse{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	var created balance.Transaction
	err := s.Atomically(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.apply(ctx, balance.Transaction{
			BalanceID:   req.BalanceID,
			Type:        balance.TransactionType(req.Type),
			Amount:      req.Amount,
			Date:        date,
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		return balance.TransactionResponse{}, err
	}

	return balance.NewTransactionResponse(created), nil
}

func (s *LedgerServiceImpl) GetTransaction(ctx context.Context, id string) (balance.TransactionResponse, error) {
	t, err := s.balanceRepo.GetTransactionByID(ctx, id)
	if err != nil {
		return balance.TransactionResponse{}, err
	}
	return balance.NewTransactionResponse(t), nil
}

func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, filter balance.TransactionFilter) (balance.ListTransactionResponse, error) {
	if err := filter.Validate(); err != nil {
		return balance.ListTransactionResponse{}, err
	}

	entries, total, err := s.balanceRepo.ListTransactions(ctx, filter)
	if err != nil {
		return balance.ListTransactionResponse{}, err
	}

	data := make([]balance.TransactionResponse, 0, len(entries))
	for _, t := range entries {
		data = append(data, balance.NewTransactionResponse(t))
	}

	return balance.ListTransactionResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *LedgerServiceImpl) UpdateTransaction(ctx context.Context, req balance.UpdateTransactionRequest) (balance.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return balance.TransactionResponse{}, err
	}

	var updated balance.Transaction
	err := s.Atomically(ctx, func(ctx context.Context) error {
		existing, err := s.balanceRepo.GetTransactionByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if existing.IsLinked() {
			return balance.ErrLinkedTransaction
		}

		next := existing
		if req.BalanceID != nil {
			next.BalanceID = *req.BalanceID
		}
		if req.Type != nil {
			next.Type = balance.TransactionType(*req.Type)
		}
		if req.Amount != nil {
			next.Amount = *req.Amount
		}
		if req.Date != nil {
			next.Date, _ = time.Parse("2006-01-02", *req.Date)
		}
		if req.Description != nil {
			next.Description = req.Description
		}

		if err := s.lockInOrder(ctx, existing.BalanceID, next.BalanceID); err != nil {
			return err
		}

		// Revert the old effect before the row changes, then apply the new one.
		if _, err := s.balanceRepo.AdjustBalance(ctx, existing.BalanceID, existing.Effect().Neg()); err != nil {
			return err
		}
		updated, err = s.balanceRepo.UpdateTransaction(ctx, next)
		if err != nil {
			return err
		}
		_, err = s.balanceRepo.AdjustBalance(ctx, next.BalanceID, next.Effect())
		return err
	})
	if err != nil {
		return balance.TransactionResponse{}, err
	}

	return balance.NewTransactionResponse(updated), nil
}

func (s *LedgerServiceImpl) DeleteTransaction(ctx context.Context, id string) error {
	return s.Atomically(ctx, func(ctx context.Context) error {
		existing, err := s.balanceRepo.GetTransactionByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.IsLinked() {
			return balance.ErrLinkedTransaction
		}
		return s.revert(ctx, existing)
	})
}
