package util

// Failure categories. Concrete error kinds are created under one of them with
// NError.New, so callers can test for either the kind or the category.
var (
	NotFoundError     = NewError("not found")
	UnauthorizedError = NewError("unauthorized")
	ConflictError     = NewError("state conflict")
	OverflowError     = NewError("arithmetic overflow")
	TemporalError     = NewError("out of time window")
)
