package utils

import (
	"fmt"
	"net/http"
	"strconv"
)

// QueryLimit reads the optional positive integer `limit` query parameter.
// A missing parameter yields 0, leaving the default to the caller.
func QueryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	return limit, nil
}
