package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/fnvalidacpf/internal/config"
	"github.com/deppfellow/fnvalidacpf/internal/middleware"
	"github.com/deppfellow/fnvalidacpf/internal/server"
	"github.com/deppfellow/fnvalidacpf/internal/service"
	"github.com/deppfellow/fnvalidacpf/internal/validation"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	logger := zerolog.Nop()
	s, err := server.New(config.DefaultConfig(), &logger, nil)
	require.NoError(t, err)

	return NewHandlers(s, service.NewServices(s))
}

func serve(h echo.HandlerFunc, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/fnvalidacpf", strings.NewReader(body))
	rec := httptest.NewRecorder()

	err := h(e.NewContext(req, rec))
	return rec, err
}

func TestValidateCPF(t *testing.T) {
	handlers := newTestHandlers(t)
	h := HandleText(handlers.CPF.Handler, handlers.CPF.ValidateCPF, http.StatusOK, NewValidateCPFRequest)

	tests := []struct {
		body       string
		wantStatus int
		wantBody   string
	}{
		{body: `{"cpf": "11144477735"}`, wantStatus: http.StatusOK, wantBody: MessageValidCPF},
		{body: `{"cpf": "111"}`, wantStatus: http.StatusBadRequest, wantBody: MessageInvalidCPF},
		{body: `not json`, wantStatus: http.StatusBadRequest, wantBody: MessageInvalidJSON},
		{body: `{}`, wantStatus: http.StatusBadRequest, wantBody: MessageEmptyBody},
		{body: `{"name": "x"}`, wantStatus: http.StatusBadRequest, wantBody: MessageMissingCPF},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			rec, err := serve(h, tt.body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestValidateCPFRequest_Messages(t *testing.T) {
	req := NewValidateCPFRequest()

	assert.Equal(t, MessageInvalidJSON, req.Message(validation.StageDecode))
	assert.Equal(t, MessageEmptyBody, req.Message(validation.StageEmpty))
	assert.Equal(t, MessageMissingCPF, req.Message(validation.StageValidate))
}

func TestHandleText_PassesUnknownErrorsThrough(t *testing.T) {
	boom := errors.New("boom")

	h := HandleText(Handler{}, func(c echo.Context, req *ValidateCPFRequest) (string, error) {
		return "", boom
	}, http.StatusOK, NewValidateCPFRequest)

	rec, err := serve(h, `{"cpf": "11144477735"}`)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Body.String())
}

func TestHandleText_DefaultStatus(t *testing.T) {
	h := HandleText(Handler{}, func(c echo.Context, req *ValidateCPFRequest) (string, error) {
		return *req.CPF, nil
	}, 0, NewValidateCPFRequest)

	rec, err := serve(h, `{"cpf": "echo"}`)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "echo", rec.Body.String())
}

func TestValidateCPFRequest_ExactKey(t *testing.T) {
	tests := []struct {
		body    string
		wantCPF *string
	}{
		{body: `{"cpf": "11144477735"}`, wantCPF: ptr("11144477735")},
		{body: `{"CPF": "11144477735"}`, wantCPF: nil},
		{body: `{"Cpf": "11144477735"}`, wantCPF: nil},
		{body: `{"cpf": null, "CPF": "11144477735"}`, wantCPF: nil},
		{body: `{"CPF": "1", "cpf": "2"}`, wantCPF: ptr("2")},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			req := NewValidateCPFRequest()
			require.NoError(t, json.Unmarshal([]byte(tt.body), req))
			assert.Equal(t, tt.wantCPF, req.CPF)
		})
	}
}

func TestValidateCPFRequest_WrongTypeNamesField(t *testing.T) {
	err := json.Unmarshal([]byte(`{"cpf": 11144477735}`), NewValidateCPFRequest())

	var typeErr *json.UnmarshalTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "cpf", typeErr.Field)
}

func TestValidateCPF_LogsStartBeforeBinding(t *testing.T) {
	handlers := newTestHandlers(t)
	h := HandleText(handlers.CPF.Handler, handlers.CPF.ValidateCPF, http.StatusOK, NewValidateCPFRequest)

	for _, body := range []string{`not json`, `{}`, `{"CPF": "11144477735"}`, `{"cpf": "11144477735"}`} {
		t.Run(body, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/fnvalidacpf", strings.NewReader(body))
			c := e.NewContext(req, httptest.NewRecorder())
			c.Set(middleware.LoggerKey, &logger)

			require.NoError(t, h(c))

			first, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
			var entry map[string]any
			require.NoError(t, json.Unmarshal(first, &entry))
			assert.Equal(t, "handling request", entry["message"])
		})
	}
}

func ptr(s string) *string {
	return &s
}
