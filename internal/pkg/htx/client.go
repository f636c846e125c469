// Package htx is a minimal client for the HTX (formerly Huobi) spot REST API.
package htx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const depositWithdrawPath = "/v1/query/deposit-withdraw"

type Client struct {
	baseURL    *url.URL
	accessKey  string
	secretKey  string
	httpClient *http.Client
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL, accessKey, secretKey string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid htx base url: %w", err)
	}
	c := &Client{
		baseURL:    u,
		accessKey:  accessKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Record is one deposit or withdrawal as reported by the exchange.
type Record struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"` // deposit | withdraw
	Currency  string          `json:"currency"`
	TxHash    string          `json:"tx-hash"`
	Amount    decimal.Decimal `json:"amount"`
	Address   string          `json:"address"`
	Fee       decimal.Decimal `json:"fee"`
	State     string          `json:"state"`
	CreatedAt int64           `json:"created-at"` // unix millis
	UpdatedAt int64           `json:"updated-at"`
}

// Completed reports whether the exchange has settled the record.
func (r Record) Completed() bool {
	switch r.Type {
	case "deposit":
		return r.State == "safe" || r.State == "confirmed"
	case "withdraw":
		return r.State == "confirmed"
	}
	return false
}

type apiResponse struct {
	Status  string   `json:"status"`
	ErrCode string   `json:"err-code"`
	ErrMsg  string   `json:"err-msg"`
	Data    []Record `json:"data"`
}

// DepositWithdraw lists deposits or withdrawals ("deposit" | "withdraw") of currency.
// from is the record id to start after, 0 for the most recent page.
func (c *Client) DepositWithdraw(ctx context.Context, currency, recordType string, from int64, size int) ([]Record, error) {
	params := url.Values{}
	params.Set("currency", strings.ToLower(currency))
	params.Set("type", recordType)
	params.Set("size", strconv.Itoa(size))
	params.Set("direct", "next")
	if from > 0 {
		params.Set("from", strconv.FormatInt(from, 10))
	}

	var resp apiResponse
	if err := c.signedGet(ctx, depositWithdrawPath, params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("htx %s: %s %s", depositWithdrawPath, resp.ErrCode, resp.ErrMsg)
	}
	return resp.Data, nil
}

func (c *Client) signedGet(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("AccessKeyId", c.accessKey)
	params.Set("SignatureMethod", "HmacSHA256")
	params.Set("SignatureVersion", "2")
	params.Set("Timestamp", c.now().UTC().Format("2006-01-02T15:04:05"))
	params.Set("Signature", Sign(c.secretKey, http.MethodGet, c.baseURL.Host, path, params))

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build htx request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call htx: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("htx %s returned status %d", path, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode htx response: %w", err)
	}
	return nil
}

// Sign computes the signature v2 of a request: base64(HMAC-SHA256(secret, payload)) where
// payload is method, host, path and the sorted, escaped query joined by newlines.
// params must not contain Signature yet.
func Sign(secretKey, method, host, path string, params url.Values) string {
	unsigned := url.Values{}
	for k, v := range params {
		if k != "Signature" {
			unsigned[k] = v
		}
	}
	payload := strings.Join([]string{method, strings.ToLower(host), path, unsigned.Encode()}, "\n")

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
