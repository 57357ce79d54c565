// Package errors provides an API for errors across the application.
package errors

// RequestError carries the HTTP status a handler should answer with.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
