package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ValidatesCPF(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/fnvalidacpf", strings.NewReader(`{"cpf": "111.444.777-35"}`))
	rec := httptest.NewRecorder()

	Handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CPF válido.", rec.Body.String())
}

func TestHandler_HealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()

	Handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
