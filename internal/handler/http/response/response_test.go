package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	assert.Equal(t, &Meta{Page: 1, Limit: 20, TotalItems: 0, TotalPages: 0}, NewMeta(1, 20, 0))
	assert.Equal(t, &Meta{Page: 1, Limit: 20, TotalItems: 20, TotalPages: 1}, NewMeta(1, 20, 20))
	assert.Equal(t, &Meta{Page: 2, Limit: 20, TotalItems: 21, TotalPages: 2}, NewMeta(2, 20, 21))
	assert.Equal(t, 0, NewMeta(1, 0, 5).TotalPages)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, NewMeta(1, 10, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `["a"]`, string(body["data"]))
	assert.JSONEq(t, `{"page":1,"limit":10,"total_items":1,"total_pages":1}`, string(body["meta"]))
}
