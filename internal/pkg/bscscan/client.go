// Package bscscan reads BEP-20 token transfers of a wallet from the BscScan explorer API.
package bscscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const noTransactions = "No transactions found"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a client that issues at most rps requests per second. The free
// explorer tier allows 5.
func NewClient(baseURL, apiKey string, rps float64, opts ...Option) *Client {
	if rps <= 0 {
		rps = 5
	}
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TokenTransfer is one row of the tokentx action.
type TokenTransfer struct {
	Hash            string `json:"hash"`
	LogIndex        string `json:"logIndex"`
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	ContractAddress string `json:"contractAddress"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
}

// ExternalID identifies one Transfer log. A transaction can emit several transfers,
// so the hash alone is not unique.
func (t TokenTransfer) ExternalID() string {
	hash := strings.ToLower(t.Hash)
	if t.LogIndex == "" {
		return hash
	}
	return hash + "-" + t.LogIndex
}

// Amount converts the raw integer value into token units.
func (t TokenTransfer) Amount(decimals int32) (decimal.Decimal, error) {
	if t.TokenDecimal != "" {
		if d, err := strconv.Atoi(t.TokenDecimal); err == nil {
			decimals = int32(d)
		}
	}
	v, err := decimal.NewFromString(t.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid transfer value %q: %w", t.Value, err)
	}
	return v.Shift(-decimals), nil
}

// Time parses the unix timestamp of the transfer.
func (t TokenTransfer) Time() (time.Time, error) {
	sec, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid transfer timestamp %q: %w", t.TimeStamp, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// Incoming reports whether the transfer credits wallet.
func (t TokenTransfer) Incoming(wallet string) bool {
	return strings.EqualFold(t.To, wallet)
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// TokenTransfers lists transfers of contract touching wallet, oldest first.
func (c *Client) TokenTransfers(ctx context.Context, contract, wallet string, page, offset int) ([]TokenTransfer, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokentx")
	params.Set("contractaddress", contract)
	params.Set("address", wallet)
	params.Set("page", strconv.Itoa(page))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("sort", "asc")
	params.Set("apikey", c.apiKey)

	var resp apiResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "1" {
		if resp.Message == noTransactions {
			return nil, nil
		}
		var detail string
		_ = json.Unmarshal(resp.Result, &detail)
		return nil, fmt.Errorf("bscscan tokentx: %s %s", resp.Message, detail)
	}

	var transfers []TokenTransfer
	if err := json.Unmarshal(resp.Result, &transfers); err != nil {
		return nil, fmt.Errorf("failed to decode bscscan transfers: %w", err)
	}
	return transfers, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("bscscan rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build bscscan request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call bscscan: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("bscscan returned status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode bscscan response: %w", err)
	}
	return nil
}
