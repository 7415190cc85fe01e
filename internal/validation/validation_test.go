package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/fnvalidacpf/internal/errs"
)

type documentRequest struct {
	Number *string `json:"number" validate:"required"`
}

func (r *documentRequest) Validate() error {
	return Struct(r)
}

type labelledRequest struct {
	documentRequest
}

func (r *labelledRequest) Message(stage Stage) string {
	switch stage {
	case StageDecode:
		return "bad json"
	case StageEmpty:
		return "empty"
	}
	return ""
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return CustomValidationErrors{{Field: "number", Message: "is blocked"}}
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return e.NewContext(req, httptest.NewRecorder())
}

func bindErr(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	require.Error(t, err)

	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok, "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_Stages(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		wantMsg  string
	}{
		{name: "empty body", body: "", wantCode: "INVALID_JSON", wantMsg: "Invalid JSON"},
		{name: "not json", body: "not json", wantCode: "INVALID_JSON", wantMsg: "Invalid JSON"},
		{name: "truncated", body: `{"number": "1"`, wantCode: "INVALID_JSON", wantMsg: "Invalid JSON"},
		{name: "empty object", body: `{}`, wantCode: "EMPTY_BODY", wantMsg: "Request body is required"},
		{name: "null", body: `null`, wantCode: "EMPTY_BODY", wantMsg: "Request body is required"},
		{name: "empty array", body: `[]`, wantCode: "EMPTY_BODY", wantMsg: "Request body is required"},
		{name: "zero", body: `0`, wantCode: "EMPTY_BODY", wantMsg: "Request body is required"},
		{name: "false", body: `false`, wantCode: "EMPTY_BODY", wantMsg: "Request body is required"},
		{name: "empty string", body: `""`, wantCode: "EMPTY_BODY", wantMsg: "Request body is required"},
		{name: "missing field", body: `{"other": "x"}`, wantCode: "VALIDATION_FAILED", wantMsg: "Validation failed"},
		{name: "null field", body: `{"number": null}`, wantCode: "VALIDATION_FAILED", wantMsg: "Validation failed"},
		{name: "wrong type", body: `{"number": 123}`, wantCode: "VALIDATION_FAILED", wantMsg: "Validation failed"},
		{name: "not an object", body: `[1, 2]`, wantCode: "VALIDATION_FAILED", wantMsg: "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindAndValidate(newContext(tt.body), &documentRequest{})

			httpErr := bindErr(t, err)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestBindAndValidate_Success(t *testing.T) {
	req := &documentRequest{}

	require.NoError(t, BindAndValidate(newContext(`{"number": "", "extra": true}`), req))
	require.NotNil(t, req.Number)
	assert.Equal(t, "", *req.Number)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	httpErr := bindErr(t, BindAndValidate(newContext(`{"other": 1}`), &documentRequest{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "number", Error: "is required"}, httpErr.Errors[0])

	httpErr = bindErr(t, BindAndValidate(newContext(`{"number": 1}`), &documentRequest{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "number", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a string", httpErr.Errors[0].Error)

	httpErr = bindErr(t, BindAndValidate(newContext(`{"a": 1}`), &customRequest{}))
	assert.Equal(t, []errs.FieldError{{Field: "number", Error: "is blocked"}}, httpErr.Errors)
}

func TestBindAndValidate_MessageProvider(t *testing.T) {
	httpErr := bindErr(t, BindAndValidate(newContext("nope"), &labelledRequest{}))
	assert.Equal(t, "bad json", httpErr.Message)

	httpErr = bindErr(t, BindAndValidate(newContext("{}"), &labelledRequest{}))
	assert.Equal(t, "empty", httpErr.Message)

	// An empty message falls back to the default.
	httpErr = bindErr(t, BindAndValidate(newContext(`{"x": 1}`), &labelledRequest{}))
	assert.Equal(t, "Validation failed", httpErr.Message)
}
