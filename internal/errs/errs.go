// Package errs defines the error shapes returned to API clients.
//
// Handlers and middleware return *HTTPError values; the route decides how
// they are rendered (JSON through the global error handler, or plain text
// for the CPF function route).
package errs
