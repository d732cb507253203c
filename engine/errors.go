package engine

import "errors"

// ErrNilHasher signals that a nil hasher has been provided
var ErrNilHasher = errors.New("nil hasher")

// ErrInvalidTraceCacheCapacity signals that an invalid trace cache capacity has been provided
var ErrInvalidTraceCacheCapacity = errors.New("invalid trace cache capacity")

// ErrNilInput signals that a nil execution input has been provided
var ErrNilInput = errors.New("nil execution input")

// ErrAccountNotFound signals that the requested account does not exist
var ErrAccountNotFound = errors.New("account not found")

// ErrNilBalance signals that a nil balance has been provided
var ErrNilBalance = errors.New("nil balance")

// ErrNegativeBalance signals that a negative balance has been provided
var ErrNegativeBalance = errors.New("negative balance")

// ErrTraceNotFound signals that no retained history exists for the requested transaction
var ErrTraceNotFound = errors.New("trace not found")

// ErrEngineClosed signals that the engine was already closed
var ErrEngineClosed = errors.New("engine closed")
