package handler

import (
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fnvalidacpf/internal/errs"
	"github.com/deppfellow/fnvalidacpf/internal/server"
	"github.com/deppfellow/fnvalidacpf/internal/service"
	"github.com/deppfellow/fnvalidacpf/internal/validation"
)

// Client-facing messages. Callers match on this text; do not reword.
const (
	MessageInvalidJSON = "JSON inválido."
	MessageEmptyBody   = "Por favor, informe um CPF para validação."
	MessageMissingCPF  = "Por favor, informe um CPF."
	MessageValidCPF    = "CPF válido."
	MessageInvalidCPF  = "CPF inválido."
)

// CodeInvalidCPF is the error code of a well-formed request whose CPF fails the checksum.
const CodeInvalidCPF = "INVALID_CPF"

// ValidateCPFRequest is the body of the CPF validation function.
//
// CPF is a pointer so an absent or null field is distinguishable from "".
// An empty string is present and simply fails the checksum.
type ValidateCPFRequest struct {
	CPF *string `json:"cpf" validate:"required"`
}

func NewValidateCPFRequest() *ValidateCPFRequest {
	return &ValidateCPFRequest{}
}

// UnmarshalJSON reads only the exact "cpf" key. encoding/json would otherwise
// match "CPF" or "Cpf" to the field as well.
func (r *ValidateCPFRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.CPF = nil

	raw, ok := fields["cpf"]
	if !ok {
		return nil
	}

	if err := json.Unmarshal(raw, &r.CPF); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			typeErr.Field = "cpf"
		}
		return err
	}

	return nil
}

func (r *ValidateCPFRequest) Validate() error {
	return validation.Struct(r)
}

// Message implements validation.MessageProvider.
func (r *ValidateCPFRequest) Message(stage validation.Stage) string {
	switch stage {
	case validation.StageDecode:
		return MessageInvalidJSON
	case validation.StageEmpty:
		return MessageEmptyBody
	default:
		return MessageMissingCPF
	}
}

type CPFHandler struct {
	Handler
	cpfService *service.CPFService
}

func NewCPFHandler(s *server.Server, cpfService *service.CPFService) *CPFHandler {
	return &CPFHandler{
		Handler:    NewHandler(s),
		cpfService: cpfService,
	}
}

// ValidateCPF answers 200 "CPF válido." or 400 "CPF inválido.".
func (h *CPFHandler) ValidateCPF(c echo.Context, req *ValidateCPFRequest) (string, error) {
	if !h.cpfService.Validate(c.Request().Context(), *req.CPF) {
		code := CodeInvalidCPF
		return "", errs.NewBadRequestError(MessageInvalidCPF, true, &code, nil)
	}

	return MessageValidCPF, nil
}
