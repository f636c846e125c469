package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth struct{ client *http.Client }

func (a staticAuth) Client(context.Context) *http.Client { return a.client }
func (a staticAuth) Email() string                       { return "importer@test.iam.gserviceaccount.com" }

func TestReadRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "/v4/spreadsheets/sheet-id/values/"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"Daily!A1:M3","majorDimension":"ROWS","values":[
			["date","country_code","spend_trust"],
			["2024-01-01","KZ",100],
			["2024-01-02","UZ"]
		]}`))
	}))
	defer srv.Close()

	r := NewReader(staticAuth{client: srv.Client()}, "sheet-id", "Daily!A1:M")
	r.endpoint = srv.URL + "/"

	rows, err := r.ReadRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date", "country_code", "spend_trust"},
		{"2024-01-01", "KZ", "100"},
		{"2024-01-02", "UZ"},
	}, rows)
}

func TestReadRowsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	}))
	defer srv.Close()

	r := NewReader(staticAuth{client: srv.Client()}, "sheet-id", "Daily!A1:M")
	r.endpoint = srv.URL + "/"

	_, err := r.ReadRows(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet-id")
}
