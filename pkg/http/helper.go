package http

import (
	"net/http"
	"roomledger/pkg/daterange"
	apperrors "roomledger/pkg/errors"
	"strconv"
	"time"
)

const (
	DefaultPaginationLimit = 10
	MaxPaginationLimit     = 100
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return NormalizeLimit(limit), max(0, offset), nil
}

func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPaginationLimit
	}
	return min(limit, MaxPaginationLimit)
}

// ExtractDate reads a required date query parameter.
func ExtractDate(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, apperrors.InvalidInput(name + " query parameter is required")
	}
	t, err := daterange.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(err.Error())
	}
	return t, nil
}
