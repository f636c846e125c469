package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/bscscan"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/htx"
)

const (
	htxPageSize = 100
	bscPageSize = 100
	bscMaxPages = 10
)

// HTXFetcher reports settled deposits and withdrawals of one currency on the exchange.
type HTXFetcher struct {
	client   *htx.Client
	currency string
}

func NewHTXFetcher(client *htx.Client, currency string) *HTXFetcher {
	return &HTXFetcher{client: client, currency: currency}
}

func (f *HTXFetcher) Source() wallet.Source { return wallet.SourceHTX }

func (f *HTXFetcher) FetchTransfers(ctx context.Context) ([]wallet.Transfer, error) {
	var transfers []wallet.Transfer
	for _, recordType := range []string{"deposit", "withdraw"} {
		records, err := f.client.DepositWithdraw(ctx, f.currency, recordType, 0, htxPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch htx %s history: %w", recordType, err)
		}
		for _, r := range records {
			if !r.Completed() {
				continue
			}
			direction := wallet.DirectionIn
			if r.Type == "withdraw" {
				direction = wallet.DirectionOut
			}
			transfers = append(transfers, wallet.Transfer{
				ExternalID: fmt.Sprintf("%s-%d", r.Type, r.ID),
				Direction:  direction,
				Amount:     r.Amount,
				Currency:   strings.ToUpper(r.Currency),
				OccurredAt: time.UnixMilli(r.CreatedAt).UTC(),
			})
		}
	}
	return transfers, nil
}

// BSCFetcher reports token transfers to and from one wallet address.
type BSCFetcher struct {
	client   *bscscan.Client
	contract string
	address  string
	decimals int32
}

func NewBSCFetcher(client *bscscan.Client, contract, address string, decimals int32) *BSCFetcher {
	return &BSCFetcher{
		client:   client,
		contract: contract,
		address:  address,
		decimals: decimals,
	}
}

func (f *BSCFetcher) Source() wallet.Source { return wallet.SourceBSC }

func (f *BSCFetcher) FetchTransfers(ctx context.Context) ([]wallet.Transfer, error) {
	var transfers []wallet.Transfer
	for page := 1; page <= bscMaxPages; page++ {
		rows, err := f.client.TokenTransfers(ctx, f.contract, f.address, page, bscPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch bsc transfers page %d: %w", page, err)
		}

		for _, row := range rows {
			// Self-transfers do not move funds.
			if strings.EqualFold(row.From, row.To) {
				continue
			}
			amount, err := row.Amount(f.decimals)
			if err != nil {
				return nil, err
			}
			occurredAt, err := row.Time()
			if err != nil {
				return nil, err
			}
			direction := wallet.DirectionOut
			if row.Incoming(f.address) {
				direction = wallet.DirectionIn
			}
			transfers = append(transfers, wallet.Transfer{
				ExternalID: row.ExternalID(),
				Direction:  direction,
				Amount:     amount,
				Currency:   strings.ToUpper(row.TokenSymbol),
				OccurredAt: occurredAt,
			})
		}

		if len(rows) < bscPageSize {
			break
		}
	}
	return transfers, nil
}
