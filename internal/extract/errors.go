package extract

// ValidationError rejects a single row. The row is reported and dropped;
// processing continues with the next one.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

func missing(field, label string) *ValidationError {
	return &ValidationError{Field: field, Msg: "Missing " + label}
}
