package registry

import "errors"

// ErrEmptyContractName signals that an empty contract name has been provided
var ErrEmptyContractName = errors.New("empty contract name")

// ErrEmptyAddress signals that an empty address has been provided
var ErrEmptyAddress = errors.New("empty address")

// ErrDuplicateContractName signals that the name is already bound to a different address in its namespace
var ErrDuplicateContractName = errors.New("contract name already bound to a different address")

// ErrAddressAlreadyRegistered signals that the address is already bound to a different name in its namespace
var ErrAddressAlreadyRegistered = errors.New("address already bound to a different name")

// ErrNameNotFound signals a lookup miss on a contract name in both namespaces
var ErrNameNotFound = errors.New("contract name not found")

// ErrAddressNotFound signals a lookup miss on an address in both namespaces
var ErrAddressNotFound = errors.New("address not found")
