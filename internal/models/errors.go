package models

import "fmt"

// ErrorKind classifies a ValidationError so callers can map it to a
// transport status without matching on message text.
type ErrorKind string

const (
	// InvalidFormat marks structurally malformed input: a non-object
	// payload or an unparsable date string.
	InvalidFormat ErrorKind = "invalid_format"
	// MissingField marks a required key absent from an external record.
	MissingField ErrorKind = "missing_field"
	// InvalidType marks a field present but of the wrong primitive type.
	InvalidType ErrorKind = "invalid_type"
	// InvalidAttribute marks a value outside its enumeration's closed set.
	InvalidAttribute ErrorKind = "invalid_attribute"
)

// ValidationError is returned when an external record fails to deserialize
// into a Product.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError is returned when a product id does not correspond to any
// stored row.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with id %d was not found", e.ID)
}
