package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/okian/skillswap/internal/domain/types"
)

// pageParams reads limit and offset. Missing values are zero and left to the
// service to default; malformed or negative values are rejected.
func pageParams(v url.Values) (types.Page, error) {
	limit, err := intParam(v, "limit")
	if err != nil {
		return types.Page{}, err
	}
	offset, err := intParam(v, "offset")
	if err != nil {
		return types.Page{}, err
	}
	return types.Page{Limit: limit, Offset: offset}, nil
}

func intParam(v url.Values, name string) (int, error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", ErrBadParam, name)
	}
	return n, nil
}

func floatParam(v url.Values, name string) (float64, error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrBadParam, name)
	}
	return f, nil
}

// requiredParam returns the named value or an error when it is absent.
func requiredParam(v url.Values, name string) (string, error) {
	raw := v.Get(name)
	if raw == "" {
		return "", fmt.Errorf("%w: %s is required", ErrBadParam, name)
	}
	return raw, nil
}

func writeBadParam(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "invalid_argument", err)
}
