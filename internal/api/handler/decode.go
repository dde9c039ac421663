package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/TaylorONeal/jetsweep/internal/api/models"
)

const maxBodyBytes = 64 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// validationErrors validates v and converts failures to field errors.
// It returns nil when v is valid.
func validationErrors(v any) []models.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldError{{Field: "", Message: err.Error(), Code: models.CodeInvalidValue}}
	}

	out := make([]models.FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = fieldError(fe)
	}
	return out
}

func fieldError(fe validator.FieldError) models.FieldError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return models.FieldError{Field: field, Message: "is required", Code: models.CodeRequired}
	case "oneof":
		return models.FieldError{Field: field, Message: "must be one of: " + fe.Param(), Code: models.CodeInvalidValue}
	case "gte", "min":
		return models.FieldError{Field: field, Message: "must be at least " + fe.Param(), Code: models.CodeOutOfRange}
	case "lte", "max":
		return models.FieldError{Field: field, Message: "must be at most " + fe.Param(), Code: models.CodeOutOfRange}
	default:
		return models.FieldError{Field: field, Message: "failed " + fe.Tag() + " validation", Code: models.CodeInvalidValue}
	}
}
