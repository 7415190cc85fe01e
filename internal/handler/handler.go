// Package handler is the first layer after the router.
//
// It binds and validates requests using the validation package, calls the
// service layer and writes the response. It is the interface between the
// HTTP request and the business logic.
package handler
