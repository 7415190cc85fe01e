package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"

	"github.com/deppfellow/fnvalidacpf/internal/errs"
	"github.com/deppfellow/fnvalidacpf/internal/middleware"
	"github.com/deppfellow/fnvalidacpf/internal/server"
	"github.com/deppfellow/fnvalidacpf/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
// Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function that receives a validated request
// payload and returns a response or an error.
//
// Req is a pointer type, e.g. *ValidateCPFRequest, so binding can populate it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a handler result, or a handler error, is written.
type ResponseHandler interface {
	// Handle writes the HTTP response for a successful result.
	Handle(c echo.Context, result interface{}) error

	// HandleError writes the response for a failed request, or returns the
	// error for the global error handler to render.
	HandleError(c echo.Context, err error) error

	// GetOperation returns an operation name used in structured logs.
	GetOperation() string
}

// TextResponseHandler writes plain-text responses.
//
// Errors of type *errs.HTTPError are rendered here as text with their own
// status and message. Anything else goes to the global error handler.
type TextResponseHandler struct {
	status int
}

func (h TextResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.String(h.status, result.(string))
}

func (h TextResponseHandler) HandleError(c echo.Context, err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return c.String(httpErr.Status, httpErr.Message)
	}
	return err
}

func (h TextResponseHandler) GetOperation() string {
	return "handler_text"
}

// handleRequest is the shared execution pipeline for typed handlers. It centralizes:
//
//   - request binding + validation
//   - structured logging (with request context)
//   - New Relic attributes and error reporting
//   - timing (validation duration, handler duration, total duration)
//   - response writing
//
// newReq is called once per request so concurrent requests never share a payload.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	newReq func() Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	path := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", path)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", path).
		Logger()

	logger.Info().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()
	req := newReq()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return responseHandler.HandleError(c, err)
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)
	totalDuration := time.Since(start)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler returned an error")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}

		return responseHandler.HandleError(c, err)
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// HandleText wraps a string-returning handler with validation, logging and
// tracing, and writes the result as text/plain with status.
//
// Usage:
//
//	router.POST("/x", handler.HandleText(h, myHandlerFn, http.StatusOK, newMyReq))
func HandleText[Req validation.Validatable](
	h Handler,
	handler HandlerFunc[Req, string],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	if status == 0 {
		status = http.StatusOK
	}

	return func(c echo.Context) error {
		return handleRequest(c, newReq, func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, TextResponseHandler{status: status})
	}
}
