package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRequestType means the request name is not declared in the
	// catalog. The legacy client returned a silent nil here; callers that
	// want to probe for a request type should use Catalog.Describe.
	ErrUnknownRequestType = errors.New("unknown request type")

	// ErrMissingResourceID means the request type requires a resource id
	// and the caller supplied none.
	ErrMissingResourceID = errors.New("resource id required")

	// ErrItemNotFound means the hub has no record for the requested item.
	ErrItemNotFound = errors.New("item not found")
)

// SchemaViolationError reports a payload field required by the request
// type's schema that the caller did not supply.
type SchemaViolationError struct {
	RequestName string
	Field       string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("request %s: missing required field %q", e.RequestName, e.Field)
}

// RemoteError is a non-success status returned by the hub.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("hub returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is a failure to complete the HTTP round trip: connection
// refused, timeout, or a malformed response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
