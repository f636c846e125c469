package htx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIsDeterministicAndIgnoresSignature(t *testing.T) {
	params := url.Values{}
	params.Set("AccessKeyId", "key")
	params.Set("SignatureMethod", "HmacSHA256")
	params.Set("SignatureVersion", "2")
	params.Set("Timestamp", "2024-01-02T03:04:05")

	first := Sign("secret", http.MethodGet, "api.huobi.pro", depositWithdrawPath, params)
	params.Set("Signature", first)
	second := Sign("secret", http.MethodGet, "API.huobi.pro", depositWithdrawPath, params)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, Sign("other", http.MethodGet, "api.huobi.pro", depositWithdrawPath, params))
}

func TestDepositWithdraw(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, depositWithdrawPath, r.URL.Path)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","data":[
			{"id":101,"type":"deposit","currency":"usdt","tx-hash":"0xabc","amount":250.5,"state":"safe","created-at":1704164645000},
			{"id":102,"type":"deposit","currency":"usdt","tx-hash":"0xdef","amount":10,"state":"pending","created-at":1704164646000}
		]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "key", "secret", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	records, err := c.DepositWithdraw(context.Background(), "USDT", "deposit", 0, 100)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(101), records[0].ID)
	assert.Equal(t, "250.5", records[0].Amount.String())
	assert.True(t, records[0].Completed())
	assert.False(t, records[1].Completed())

	assert.Equal(t, "usdt", got.Get("currency"))
	assert.Equal(t, "deposit", got.Get("type"))
	assert.Equal(t, "key", got.Get("AccessKeyId"))
	assert.Equal(t, "2024-01-02T03:04:05", got.Get("Timestamp"))

	host, err := url.Parse(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, Sign("secret", http.MethodGet, host.Host, depositWithdrawPath, got), got.Get("Signature"))
}

func TestDepositWithdrawAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","err-code":"api-signature-not-valid","err-msg":"bad signature"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "key", "secret")
	require.NoError(t, err)

	_, err = c.DepositWithdraw(context.Background(), "usdt", "withdraw", 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api-signature-not-valid")
}
