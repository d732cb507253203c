package simulation

import "errors"

// ErrNilEngineFactory signals that a nil engine factory has been provided
var ErrNilEngineFactory = errors.New("nil engine factory")

// ErrNilSourceFetcher signals that a nil source fetcher has been provided
var ErrNilSourceFetcher = errors.New("nil source fetcher")

// ErrNilEventNotifier signals that a nil event notifier has been provided
var ErrNilEventNotifier = errors.New("nil event notifier")

// ErrNilMarshalizer signals that a nil marshalizer has been provided
var ErrNilMarshalizer = errors.New("nil marshalizer")

// ErrNilStateDescription signals that a nil state description has been provided
var ErrNilStateDescription = errors.New("nil state description")

// ErrSimulationRunning signals that a simulation sequence is currently executing
var ErrSimulationRunning = errors.New("simulation already running")

// ErrMiningInProgress signals that a simulated mining step is currently executing
var ErrMiningInProgress = errors.New("mining already in progress")

// ErrUnresolvableParameter signals a parameter placeholder that cannot be resolved
// against the already executed operations of the sequence
var ErrUnresolvableParameter = errors.New("unresolvable parameter placeholder")

// ErrInvalidParameterBinding signals a parameter binding carrying both or neither
// of a literal value and an address reference
var ErrInvalidParameterBinding = errors.New("invalid parameter binding")

// ErrInvalidTransactionSettings signals malformed transaction settings
var ErrInvalidTransactionSettings = errors.New("invalid transaction settings")

// ErrInvalidValue signals a transferred value that is not a non-negative integer
var ErrInvalidValue = errors.New("invalid value")

// ErrInvalidBalance signals a declared balance that is not a non-negative integer
var ErrInvalidBalance = errors.New("invalid balance")

// ErrUnknownSenderIdentity signals a sender identity absent from the declared accounts
var ErrUnknownSenderIdentity = errors.New("unknown sender identity")

// ErrUnknownTargetContract signals a call targeting a contract that is neither a
// registered name nor a valid address
var ErrUnknownTargetContract = errors.New("unknown target contract")

// ErrEngineExecutionFailed signals that the execution engine reported a failure
// for an operation, reverts included
var ErrEngineExecutionFailed = errors.New("engine execution failed")

// ErrNoTraceForRecord signals a debug request on a record with no machine state
// behind it, such as a block-boundary marker
var ErrNoTraceForRecord = errors.New("no execution trace behind record")

// ErrInvalidRPCRequest signals an RPC request that could not be decoded
var ErrInvalidRPCRequest = errors.New("invalid rpc request")

// ErrUnknownRPCMethod signals an RPC method the bridge does not map
var ErrUnknownRPCMethod = errors.New("unknown rpc method")
