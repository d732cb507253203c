package fetcher

import "errors"

// ErrSourceUnavailable signals that a standard contract source could not be retrieved
var ErrSourceUnavailable = errors.New("standard contract source unavailable")

// ErrInvalidRequestTimeout signals that an invalid request timeout has been provided
var ErrInvalidRequestTimeout = errors.New("invalid request timeout")
