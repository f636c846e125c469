package wallet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/bscscan"
	"github.com/cmlabs-hris/finops-backend-go/internal/pkg/htx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTXFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("type") {
		case "deposit":
			_, _ = w.Write([]byte(`{"status":"ok","data":[
				{"id":1,"type":"deposit","currency":"usdt","amount":100,"state":"safe","created-at":1704164645000},
				{"id":2,"type":"deposit","currency":"usdt","amount":5,"state":"unknown","created-at":1704164645000}
			]}`))
		default:
			_, _ = w.Write([]byte(`{"status":"ok","data":[
				{"id":1,"type":"withdraw","currency":"usdt","amount":30,"state":"confirmed","created-at":1704164645000}
			]}`))
		}
	}))
	defer srv.Close()

	client, err := htx.NewClient(srv.URL, "key", "secret", htx.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	f := NewHTXFetcher(client, "usdt")
	assert.Equal(t, wallet.SourceHTX, f.Source())

	transfers, err := f.FetchTransfers(context.Background())
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	assert.Equal(t, "deposit-1", transfers[0].ExternalID)
	assert.Equal(t, wallet.DirectionIn, transfers[0].Direction)
	assert.Equal(t, "USDT", transfers[0].Currency)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), transfers[0].OccurredAt)

	assert.Equal(t, "withdraw-1", transfers[1].ExternalID)
	assert.Equal(t, wallet.DirectionOut, transfers[1].Direction)
}

func TestBSCFetcher(t *testing.T) {
	const address = "0xabc0000000000000000000000000000000000001"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":[
			{"hash":"0xAA","logIndex":"4","timeStamp":"1704164645","from":"0xfeed","to":"0xABC0000000000000000000000000000000000001","value":"1500000000000000000","tokenDecimal":"18","tokenSymbol":"usdt"},
			{"hash":"0xBB","timeStamp":"1704164645","from":"0xabc0000000000000000000000000000000000001","to":"0xabc0000000000000000000000000000000000001","value":"1","tokenDecimal":"18","tokenSymbol":"usdt"},
			{"hash":"0xCC","logIndex":"0","timeStamp":"1704164645","from":"0xabc0000000000000000000000000000000000001","to":"0xbeef","value":"2000000000000000000","tokenDecimal":"18","tokenSymbol":"usdt"}
		]}`))
	}))
	defer srv.Close()

	f := NewBSCFetcher(bscscan.NewClient(srv.URL, "key", 100, bscscan.WithHTTPClient(srv.Client())), "0xcontract", address, 18)

	transfers, err := f.FetchTransfers(context.Background())
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	assert.Equal(t, "0xaa-4", transfers[0].ExternalID)
	assert.Equal(t, wallet.DirectionIn, transfers[0].Direction)
	assert.Equal(t, "1.5", transfers[0].Amount.String())
	assert.Equal(t, "USDT", transfers[0].Currency)

	assert.Equal(t, "0xcc-0", transfers[1].ExternalID)
	assert.Equal(t, wallet.DirectionOut, transfers[1].Direction)
	assert.Equal(t, "2", transfers[1].Amount.String())
}

func TestBSCFetcher_TransfersSharingHashAreAllRecorded(t *testing.T) {
	const address = "0xabc0000000000000000000000000000000000001"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":[
			{"hash":"0xAA","logIndex":"1","timeStamp":"1704164645","from":"0xfeed","to":"0xabc0000000000000000000000000000000000001","value":"1000000000000000000","tokenDecimal":"18","tokenSymbol":"usdt"},
			{"hash":"0xAA","logIndex":"2","timeStamp":"1704164645","from":"0xfeed","to":"0xabc0000000000000000000000000000000000001","value":"2000000000000000000","tokenDecimal":"18","tokenSymbol":"usdt"}
		]}`))
	}))
	defer srv.Close()

	f := NewBSCFetcher(bscscan.NewClient(srv.URL, "key", 100, bscscan.WithHTTPClient(srv.Client())), "0xcontract", address, 18)
	svc, balances, _ := newService(f)

	result, err := svc.Sync(context.Background(), wallet.SourceBSC)
	require.NoError(t, err)
	assert.Equal(t, wallet.SyncResult{Source: "bsc", Fetched: 2, Recorded: 2, Skipped: 0}, result)
	assert.True(t, decimal.NewFromInt(103).Equal(balances.Amount("EXCHANGE")))
}
