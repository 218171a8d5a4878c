// Package validate adapts ozzo-validation to the flat field → message map
// used by the HTTP layer.
//
// Request types describe their own rules by implementing
// validation.Validatable:
//
//	type SignupInput struct {
//	    Username string `json:"username"`
//	    Email    string `json:"email"`
//	}
//
//	func (in SignupInput) Validate() error {
//	    return validation.ValidateStruct(&in,
//	        validation.Field(&in.Username, validation.Required, validation.Length(3, 25)),
//	        validation.Field(&in.Email, validation.Required, is.Email),
//	    )
//	}
//
// Field names in the returned map follow the json tags.
package validate

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Struct runs v.Validate() when v implements validation.Validatable.
// Returns a map of field name → message; nil means valid or no rules.
func Struct(v interface{}) map[string]string {
	val, ok := v.(validation.Validatable)
	if !ok {
		return nil
	}
	errs, _ := Fields(val.Validate())
	return errs
}

// Fields flattens a validation error into field → message. Nested structs
// use dotted keys. The second result is false when err is not a
// validation error at all (including nil).
func Fields(err error) (map[string]string, bool) {
	if err == nil {
		return nil, false
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		return nil, false
	}

	out := make(map[string]string, len(ve))
	flatten("", ve, out)
	return out, true
}

func flatten(prefix string, ve validation.Errors, out map[string]string) {
	for field, err := range ve {
		if err == nil {
			continue
		}
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(key, nested, out)
			continue
		}
		out[key] = err.Error()
	}
}

// HasErrors reports whether errs contains at least one failure.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// Summary renders errs as "field: message; …" in stable order.
func Summary(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return strings.Join(parts, "; ")
}
