// Package validation checks decoded JSON request bodies against an ordered
// list of field rules and reports one human-readable message per failing rule.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule describes the checks applied to a single body field.
type Rule struct {
	Field    string
	Required bool
	Email    bool
}

// Required returns a presence rule for field.
func Required(field string) Rule {
	return Rule{Field: field, Required: true}
}

// Email returns a presence plus email format rule for field.
func Email(field string) Rule {
	return Rule{Field: field, Required: true, Email: true}
}

// Validate applies rules to body in order. An empty result means the body passed.
func Validate(body map[string]any, rules ...Rule) []string {
	var errs []string
	for _, rule := range rules {
		if msg, ok := rule.check(body); !ok {
			errs = append(errs, msg)
		}
	}
	return errs
}

func (r Rule) check(body map[string]any) (string, bool) {
	value, ok := Text(body[r.Field])
	if !ok {
		if r.Required {
			return fmt.Sprintf("Please provide a value for %q", r.Field), false
		}
		return fmt.Sprintf("Please provide a valid value for %q", r.Field), false
	}

	if strings.TrimSpace(value) == "" {
		if r.Required {
			return fmt.Sprintf("Please provide a value for %q", r.Field), false
		}
		return "", true
	}

	if r.Email {
		if err := validate.Var(value, "required,email"); err != nil {
			return fmt.Sprintf("Please provide a valid email address for %q", r.Field), false
		}
	}

	return "", true
}

// Text renders a decoded JSON scalar as text. Missing and null render empty;
// numbers and booleans render the way they were written. Objects and arrays
// have no text form and report false.
func Text(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
