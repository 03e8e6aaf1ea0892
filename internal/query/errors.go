package query

// ErrEmptyQuery is returned when a query yields no food items.
var ErrEmptyQuery = &ValidationError{Message: "No food items found in query."}

// ValidationError represents a query the user has to rephrase.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
