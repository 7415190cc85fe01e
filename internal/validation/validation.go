// Package validation contains the logic for binding and validating
// request data.
//
// Binding runs in stages (decode, empty check, struct validation) so each
// failure can be reported to the client with its own message. Struct rules
// are expressed with `validator` tags and turned into field-level errors.
package validation
