package records

import "errors"

// ErrRecordNotFound signals that no record is stored at the requested index
var ErrRecordNotFound = errors.New("execution record not found")

// ErrNilRecord signals that a nil record has been provided
var ErrNilRecord = errors.New("nil execution record")
