package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

type UnauthorizedError struct {
	ErrorMessage
}

// DatabaseError wraps a Realtime Database failure with the operation that
// produced it ("read", "write", "delete").
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError covers Vertex and any other remote dependency.
// Transient failures map to 503 rather than 502.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
}

// ConfigError marks a missing or malformed deployment value. These are
// raised loudly at the point of use; they indicate a deployment mistake,
// not a data-quality issue.
type ConfigError struct {
	ErrorMessage
	Key string
}

// FeedError marks a feed path that failed to refresh. The aggregation pass
// treats the path as empty until it recovers, so these are non-fatal.
type FeedError struct {
	ErrorMessage
	Path string
	Err  error
}

func (e *FeedError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
	}
}

func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{
		ErrorMessage: ErrorMessage{Message: message},
		Key:          key,
	}
}

func NewFeedError(path string, err error) *FeedError {
	return &FeedError{
		ErrorMessage: ErrorMessage{Message: "feed refresh failed for " + path},
		Path:         path,
		Err:          err,
	}
}
