package domain

// FieldError is a user-input problem attributed to a single input field.
// It travels as data in a successful response, never as a transport failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewFieldError(field, message string) FieldError {
	return FieldError{Field: field, Message: message}
}
