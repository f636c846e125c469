package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type walletRepositoryImpl struct {
	db *database.DB
}

func NewWalletRepository(db *database.DB) wallet.WalletRepository {
	return &walletRepositoryImpl{db: db}
}

// Insert implements wallet.WalletRepository.
func (r *walletRepositoryImpl) Insert(ctx context.Context, w wallet.WalletTransaction) (wallet.WalletTransaction, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wallet_transactions (id, source, external_id, direction, amount, currency, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (source, external_id) DO NOTHING
		RETURNING id, source, external_id, direction, amount, currency, occurred_at, created_at
	`
	var saved wallet.WalletTransaction
	err := q.QueryRow(ctx, query, w.ID, w.Source, w.ExternalID, w.Direction, w.Amount, w.Currency, w.OccurredAt).
		Scan(&saved.ID, &saved.Source, &saved.ExternalID, &saved.Direction, &saved.Amount,
			&saved.Currency, &saved.OccurredAt, &saved.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already recorded
			return wallet.WalletTransaction{}, false, nil
		}
		return wallet.WalletTransaction{}, false, fmt.Errorf("failed to insert wallet transaction %s/%s: %w", w.Source, w.ExternalID, err)
	}
	return saved, true, nil
}

// List implements wallet.WalletRepository.
func (r *walletRepositoryImpl) List(ctx context.Context, filter wallet.WalletTransactionFilter) ([]wallet.WalletTransaction, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Source != nil && *filter.Source != "" {
		conditions = append(conditions, fmt.Sprintf("w.source = $%d", argIdx))
		args = append(args, *filter.Source)
		argIdx++
	}
	if filter.Direction != nil && *filter.Direction != "" {
		conditions = append(conditions, fmt.Sprintf("w.direction = $%d", argIdx))
		args = append(args, *filter.Direction)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM wallet_transactions w WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT w.id, w.source, w.external_id, w.direction, w.amount, w.currency, w.occurred_at, w.created_at, t.id
		FROM wallet_transactions w
		LEFT JOIN balance_transactions t ON t.wallet_transaction_id = w.id
		WHERE %s
		ORDER BY w.occurred_at DESC
		LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	defer rows.Close()

	var result []wallet.WalletTransaction
	for rows.Next() {
		var w wallet.WalletTransaction
		if err := rows.Scan(&w.ID, &w.Source, &w.ExternalID, &w.Direction, &w.Amount,
			&w.Currency, &w.OccurredAt, &w.CreatedAt, &w.BalanceTransactionID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating wallet transactions: %w", err)
	}
	return result, total, nil
}
