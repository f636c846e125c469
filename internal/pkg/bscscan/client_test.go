package bscscan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallet = "0xAbC0000000000000000000000000000000000001"

func TestTokenTransfers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tokentx", q.Get("action"))
		assert.Equal(t, wallet, q.Get("address"))
		assert.Equal(t, "key", q.Get("apikey"))
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":[
			{"hash":"0x1","timeStamp":"1704164645","from":"0xfeed","to":"0xabc0000000000000000000000000000000000001","value":"1500000000000000000000","tokenDecimal":"18"},
			{"hash":"0x2","timeStamp":"1704164700","from":"0xabc0000000000000000000000000000000000001","to":"0xbeef","value":"250000000","tokenDecimal":"6"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 100, WithHTTPClient(srv.Client()))
	transfers, err := c.TokenTransfers(context.Background(), "0xcontract", wallet, 1, 100)
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	in := transfers[0]
	assert.True(t, in.Incoming(wallet))
	amount, err := in.Amount(18)
	require.NoError(t, err)
	assert.Equal(t, "1500", amount.String())
	ts, err := in.Time()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ts)

	out := transfers[1]
	assert.False(t, out.Incoming(wallet))
	amount, err = out.Amount(18)
	require.NoError(t, err)
	assert.Equal(t, "250", amount.String())
}

func TestTokenTransferExternalID(t *testing.T) {
	assert.Equal(t, "0xaa-3", TokenTransfer{Hash: "0xAA", LogIndex: "3"}.ExternalID())
	assert.Equal(t, "0xaa", TokenTransfer{Hash: "0xAA"}.ExternalID())
}

func TestTokenTransfersEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0","message":"No transactions found","result":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 100)
	transfers, err := c.TokenTransfers(context.Background(), "0xcontract", wallet, 1, 100)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestTokenTransfersError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Invalid API Key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", 100)
	_, err := c.TokenTransfers(context.Background(), "0xcontract", wallet, 1, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestTokenTransfersRespectsContext(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "key", 0.001)
	// The first token is free; the second call has to wait far longer than the deadline.
	c.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.TokenTransfers(ctx, "0xcontract", wallet, 1, 100)
	require.Error(t, err)
}
