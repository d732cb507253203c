package errors

import (
	"errors"
)

// ErrNilFacadeHandler signals that a nil facade handler has been provided
var ErrNilFacadeHandler = errors.New("nil facade handler")

// ErrFacadeWrongTypeAssertion signals a facade that does not expose the expected methods
var ErrFacadeWrongTypeAssertion = errors.New("facade is of the wrong type")

// ErrInvalidListenAddress signals that an invalid listen address has been provided
var ErrInvalidListenAddress = errors.New("invalid listen address")

// ErrInvalidJSONRequest signals an error in json request formatting
var ErrInvalidJSONRequest = errors.New("invalid json request")

// ErrBadUrlParams signals bad url parameter(s)
var ErrBadUrlParams = errors.New("bad url parameter(s)")

// ErrSetupState signals an error in the setup state request
var ErrSetupState = errors.New("cannot setup state")

// ErrMine signals an error in the mine request
var ErrMine = errors.New("cannot mine")

// ErrGetRecord signals an error in the get record request
var ErrGetRecord = errors.New("cannot get record")

// ErrGetTrace signals an error in the get trace request
var ErrGetTrace = errors.New("cannot get trace")

// ErrNewAddress signals an error in the new address request
var ErrNewAddress = errors.New("cannot create new address")

// ErrApiCall signals an error in the rpc bridge request
var ErrApiCall = errors.New("cannot execute api call")
