package node

import "errors"

var (
	// ErrNoResponse is reported when the controller returned nothing for a request.
	ErrNoResponse = errors.New("no response from controller")

	// ErrMalformedResponse is reported when a controller document could not be parsed.
	ErrMalformedResponse = errors.New("malformed controller response")
)
