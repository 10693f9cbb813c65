package goToken

import "errors"

var (
	// ErrUnsupportedAlgorithm is an exported constant or variable used by the token repositories.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrIssuance is an exported constant or variable used by the token repositories.
	ErrIssuance = errors.New("token issuance failed")
	// ErrKeyLength is an exported constant or variable used by the token repositories.
	ErrKeyLength = errors.New("key length invalid for declared algorithm")
	// ErrInvalidToken is an exported constant or variable used by the token repositories.
	ErrInvalidToken = errors.New("invalid token")
	// ErrAuthentication is an exported constant or variable used by the token repositories.
	ErrAuthentication = errors.New("token authentication failed")
)
