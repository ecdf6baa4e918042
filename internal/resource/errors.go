package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload is returned when server data cannot be decoded.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrRemoteServer matches responses with a 5xx status.
	ErrRemoteServer = errors.New("server error")
	// ErrRemoteNotFound matches responses with a 4xx status.
	ErrRemoteNotFound = errors.New("URL not found")
	// ErrTransport wraps network-level failures.
	ErrTransport = errors.New("transport failure")
	// ErrNotPopulated is returned when an operation needs an id that is unset.
	ErrNotPopulated = errors.New("object has not been populated with data")
	// ErrFieldNotFound matches every *FieldError.
	ErrFieldNotFound = errors.New("field not found")
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	var kind any = "unexpected status"
	switch {
	case e.StatusCode >= 500:
		kind = ErrRemoteServer
	case e.StatusCode >= 400:
		kind = ErrRemoteNotFound
	}
	return fmt.Sprintf("%s %s: %v: %d", e.Method, e.URL, kind, e.StatusCode)
}

// Is matches ErrRemoteServer for 5xx and ErrRemoteNotFound for 4xx.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrRemoteServer:
		return e.StatusCode >= 500
	case ErrRemoteNotFound:
		return e.StatusCode >= 400 && e.StatusCode < 500
	}
	return false
}

// FieldError reports a read of a field the object does not hold.
//
// An empty ID means the object was never populated, which usually points at
// a programming error; otherwise the object is known but the server did not
// send that field.
type FieldError struct {
	Field string
	ID    string
}

func (e *FieldError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s could not be found: object has not been populated", e.Field)
	}
	return fmt.Sprintf("%s cannot be found on object id %s", e.Field, e.ID)
}

func (e *FieldError) Is(target error) bool { return target == ErrFieldNotFound }
