package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fnvalidacpf/internal/errs"
)

// validate is the package-level validator instance shared by all payloads.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that calls validation.Struct(req)
type Validatable interface {
	Validate() error
}

// Stage identifies the binding step that rejected a request.
type Stage int

const (
	// StageDecode: the body could not be read or is not JSON.
	StageDecode Stage = iota
	// StageEmpty: the body is JSON but carries nothing ({}, [], null, "", 0, false).
	StageEmpty
	// StageValidate: the body does not fit the payload type or fails its rules.
	StageValidate
)

// Code returns the machine-readable error code for the stage.
func (s Stage) Code() string {
	switch s {
	case StageDecode:
		return "INVALID_JSON"
	case StageEmpty:
		return "EMPTY_BODY"
	default:
		return "VALIDATION_FAILED"
	}
}

func (s Stage) defaultMessage() string {
	switch s {
	case StageDecode:
		return "Invalid JSON"
	case StageEmpty:
		return "Request body is required"
	default:
		return "Validation failed"
	}
}

// MessageProvider is implemented by payloads that define their own
// client-facing message for each failed stage.
type MessageProvider interface {
	Message(stage Stage) string
}

// CustomValidationError represents a single validation issue for a specific field.
// Used for rules that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate reads the JSON request body into payload and validates it.
//
// Flow:
//  1. Read the body. Unreadable, empty or malformed JSON fails with StageDecode.
//  2. JSON that carries no data fails with StageEmpty.
//  3. Decode into payload. Shape/type mismatches fail with StageValidate.
//  4. payload.Validate(). Rule violations fail with StageValidate.
//
// The Content-Type header is not checked. Every failure is a 400 *errs.HTTPError
// whose Code is Stage.Code() and whose Message comes from payload (when it
// implements MessageProvider) or a generic default.
func BindAndValidate(c echo.Context, payload Validatable) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || !json.Valid(body) {
		return bindError(payload, StageDecode, nil)
	}

	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return bindError(payload, StageDecode, nil)
	}

	if isEmptyJSON(probe) {
		return bindError(payload, StageEmpty, nil)
	}

	if err := json.Unmarshal(body, payload); err != nil {
		return bindError(payload, StageValidate, decodeFieldErrors(err))
	}

	if fieldErrors := validateStruct(payload); fieldErrors != nil {
		return bindError(payload, StageValidate, fieldErrors)
	}

	return nil
}

func bindError(payload Validatable, stage Stage, fieldErrors []errs.FieldError) *errs.HTTPError {
	message := stage.defaultMessage()
	if mp, ok := payload.(MessageProvider); ok {
		if m := mp.Message(stage); m != "" {
			message = m
		}
	}

	code := stage.Code()
	return errs.NewBadRequestError(message, true, &code, fieldErrors)
}

// isEmptyJSON reports whether a decoded JSON value is "falsy".
func isEmptyJSON(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// decodeFieldErrors turns a json type mismatch into a field error when the
// offending field is known.
func decodeFieldErrors(err error) []errs.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []errs.FieldError{{
			Field: strings.ToLower(typeErr.Field),
			Error: fmt.Sprintf("must be a %s", typeErr.Type.Kind()),
		}}
	}

	return []errs.FieldError{{Field: "body", Error: "must be a JSON object"}}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) []errs.FieldError {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
