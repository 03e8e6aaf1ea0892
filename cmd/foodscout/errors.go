package main

import (
	"context"
	"errors"

	"github.com/at-ishikawa/foodscout/internal/query"
)

// Messages shown in the error document. The wrapped chain only goes to the debug log.
const (
	msgConfig      = "Failed to load the configuration."
	msgStoreLoad   = "Failed to load the food database."
	msgStoreSave   = "Failed to save the food database."
	msgDatabase    = "Failed to access the MySQL database."
	msgOutput      = "Failed to write the output."
	msgInterrupted = "Lookup was interrupted."
)

// failure pairs an internal error with the short message reported to the user.
type failure struct {
	message string
	err     error
}

func (f *failure) Error() string {
	return f.err.Error()
}

func (f *failure) Unwrap() error {
	return f.err
}

func fail(message string, err error) error {
	return &failure{message: message, err: err}
}

// publicMessage returns the message for the error document.
// Errors that are not classified come from argument and flag parsing and are shown as they are.
func publicMessage(err error) string {
	var validationErr *query.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if errors.Is(err, context.Canceled) {
		return msgInterrupted
	}
	var f *failure
	if errors.As(err, &f) {
		return f.message
	}
	return err.Error()
}
