package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// optionalQuery returns nil for a missing or empty query parameter.
func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// pagination reads page and limit, leaving zero for absent values so the
// filter Validate applies its defaults.
func pagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}
	return page, limit
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// period reads the start/end range, accepting both the short and the _date forms.
func period(r *http.Request) (start, end string) {
	q := r.URL.Query()
	start = q.Get("start")
	if start == "" {
		start = q.Get("start_date")
	}
	end = q.Get("end")
	if end == "" {
		end = q.Get("end_date")
	}
	return start, end
}
