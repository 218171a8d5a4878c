// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// ErrEmptyBody is returned when the request carries no JSON document.
var ErrEmptyBody = errors.New("request body is empty")

// JSON decodes r.Body as JSON into dest and runs validation.
// The body is capped at MAX_BODY_BYTES.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest any) (errs map[string]string, err error) {
	if err := Decode(r, dest); err != nil {
		return nil, err
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Decode only decodes; validation is left to the caller.
func Decode(r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		default:
			return fmt.Errorf("invalid JSON: %w", err)
		}
	}
	return nil
}
