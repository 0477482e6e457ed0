package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/sbilibin2017/course-api/internal/validation"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON object as a generic map. An empty body decodes as {}.
// Field types are not checked here; see bodyFields.
func decodeBody(r *http.Request) (map[string]any, error) {
	invalid := func(err error) error {
		return NestedError(http.StatusBadRequest, "Invalid request body", err)
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, invalid(err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid(err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// bodyFields reads typed values from a decoded body and collects one message
// per field whose JSON type cannot be used.
type bodyFields struct {
	raw  map[string]any
	errs []string
}

func (f *bodyFields) invalid(key string) {
	f.errs = append(f.errs, fmt.Sprintf("Please provide a valid value for %q", key))
}

// text reads a field already checked by a validation rule.
func (f *bodyFields) text(key string) string {
	s, _ := validation.Text(f.raw[key])
	return s
}

// optionalText returns nil for a missing or null field.
func (f *bodyFields) optionalText(key string) *string {
	v, ok := f.raw[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := validation.Text(v)
	if !ok {
		f.invalid(key)
		return nil
	}
	return &s
}

// optionalID accepts a whole JSON number or a numeric string.
func (f *bodyFields) optionalID(key string) *int64 {
	v, ok := f.raw[key]
	if !ok || v == nil {
		return nil
	}

	switch val := v.(type) {
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			id := int64(val)
			return &id
		}
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return &id
		}
	}

	f.invalid(key)
	return nil
}
