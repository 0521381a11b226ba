package models

// Typed errors returned by the service layer. helper.HTTPHelper maps
// them to HTTP status codes by concrete type.

// ErrorNotFound - the referenced video/article/user does not exist.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

// ErrorConflict - an optimistic-concurrency check failed; the row
// changed between read and write. Callers should re-read and retry.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

// ErrorPrecondition - a transition was attempted whose business
// precondition is unmet. The video is left untouched.
type ErrorPrecondition struct {
	Message string
}

func (e ErrorPrecondition) Error() string {
	return e.Message
}

// ErrorUnauthorized ...
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

// ErrorExternalOperation wraps a failure reported by a render/publish
// collaborator.
type ErrorExternalOperation struct {
	Op      string
	Message string
}

func (e ErrorExternalOperation) Error() string {
	return e.Op + ": " + e.Message
}

// ErrorInternalServer ...
type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string {
	return e.Message
}
