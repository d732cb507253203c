package simulation

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
)

type operationKind int

const (
	opDeploy operationKind = iota
	opCall
)

// operation is one resolved step of a simulation sequence, ready for direct
// execution. Parameter bindings referencing deployed addresses stay symbolic
// until the operation's own turn, since only backward references to already
// executed operations are valid.
type operation struct {
	kind           operationKind
	index          int // 1-based position inside the sequence
	contractName   string
	functionName   string
	code           []byte
	stdSource      *dtos.StdContractSource
	parameters     []dtos.ParameterBinding
	value          *big.Int
	gasLimit       uint64
	gasPrice       uint64
	senderIdentity string
	readOnly       bool
}

// transactionSequencer converts a declarative state description into an
// ordered operation list
type transactionSequencer struct {
}

// NewTransactionSequencer returns a new instance of transactionSequencer
func NewTransactionSequencer() *transactionSequencer {
	return &transactionSequencer{}
}

// BuildOperations validates the description and returns the concrete, ordered
// operation list implied by it. Validation failures abort the whole build.
func (ts *transactionSequencer) BuildOperations(description *dtos.StateDescription) ([]*operation, error) {
	if description == nil {
		return nil, ErrNilStateDescription
	}

	knownSenders := make(map[string]struct{}, len(description.Accounts))
	for _, account := range description.Accounts {
		knownSenders[account.Identity] = struct{}{}
	}

	operations := make([]*operation, 0, len(description.Transactions))
	for i, settings := range description.Transactions {
		op, err := ts.buildOperation(i+1, settings, knownSenders)
		if err != nil {
			return nil, err
		}

		operations = append(operations, op)
	}

	return operations, nil
}

func (ts *transactionSequencer) buildOperation(
	index int,
	settings dtos.TransactionSettings,
	knownSenders map[string]struct{},
) (*operation, error) {
	_, senderKnown := knownSenders[settings.Sender]
	if !senderKnown {
		return nil, fmt.Errorf("%w: %q in operation %d", ErrUnknownSenderIdentity, settings.Sender, index)
	}

	value, err := parseValue(settings.Value)
	if err != nil {
		return nil, fmt.Errorf("%w in operation %d", err, index)
	}

	op := &operation{
		index:          index,
		contractName:   settings.ContractID,
		functionName:   settings.FunctionID,
		parameters:     settings.Parameters,
		value:          value,
		gasLimit:       settings.GasLimit,
		gasPrice:       settings.GasPrice,
		senderIdentity: settings.Sender,
		readOnly:       settings.ReadOnly,
	}

	isDeployment := len(settings.FunctionID) == 0
	if !isDeployment {
		op.kind = opCall
		if len(settings.ContractID) == 0 {
			return nil, fmt.Errorf("%w: operation %d calls %q on an unnamed contract",
				ErrInvalidTransactionSettings, index, settings.FunctionID)
		}
		if len(settings.Code) != 0 || settings.StdContract != nil {
			return nil, fmt.Errorf("%w: operation %d carries contract code on a call",
				ErrInvalidTransactionSettings, index)
		}
		if settings.ReadOnly && value.Sign() != 0 {
			return nil, fmt.Errorf("%w: operation %d transfers value in a read-only call",
				ErrInvalidTransactionSettings, index)
		}

		return op, nil
	}

	op.kind = opDeploy
	if settings.ReadOnly {
		return nil, fmt.Errorf("%w: operation %d marks a deployment as read-only",
			ErrInvalidTransactionSettings, index)
	}

	hasLocalCode := len(settings.Code) != 0
	hasStdSource := settings.StdContract != nil
	if hasLocalCode == hasStdSource {
		return nil, fmt.Errorf("%w: operation %d must carry either local code or a standard contract source",
			ErrInvalidTransactionSettings, index)
	}

	if hasStdSource {
		if len(settings.StdContract.Name) == 0 || len(settings.StdContract.URL) == 0 {
			return nil, fmt.Errorf("%w: operation %d has an incomplete standard contract source",
				ErrInvalidTransactionSettings, index)
		}

		op.stdSource = settings.StdContract
		op.contractName = settings.StdContract.Name

		return op, nil
	}

	if len(settings.ContractID) == 0 {
		return nil, fmt.Errorf("%w: operation %d deploys an unnamed contract",
			ErrInvalidTransactionSettings, index)
	}

	code, err := hex.DecodeString(strings.TrimPrefix(settings.Code, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: operation %d has malformed contract code: %v",
			ErrInvalidTransactionSettings, index, err)
	}
	op.code = code

	return op, nil
}

// ResolveArguments resolves the parameter bindings of one operation into
// concrete byte values just before its execution. Address references are
// served by the provided lookup, which only knows the contracts deployed by
// already executed operations; anything else, forward references included,
// fails with ErrUnresolvableParameter and aborts the sequence.
func (ts *transactionSequencer) ResolveArguments(
	op *operation,
	addressLookup func(name string) ([]byte, error),
) ([][]byte, error) {
	arguments := make([][]byte, 0, len(op.parameters))
	for _, binding := range op.parameters {
		hasValue := len(binding.Value) != 0
		hasReference := len(binding.AddressOf) != 0
		if hasValue == hasReference {
			return nil, fmt.Errorf("%w: parameter %q of operation %d",
				ErrInvalidParameterBinding, binding.Name, op.index)
		}

		if hasValue {
			argument, err := hex.DecodeString(strings.TrimPrefix(binding.Value, "0x"))
			if err != nil {
				return nil, fmt.Errorf("%w: parameter %q of operation %d: %v",
					ErrInvalidParameterBinding, binding.Name, op.index, err)
			}

			arguments = append(arguments, argument)
			continue
		}

		address, err := addressLookup(binding.AddressOf)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q of operation %d references contract %q",
				ErrUnresolvableParameter, binding.Name, op.index, binding.AddressOf)
		}

		arguments = append(arguments, address)
	}

	return arguments, nil
}

func parseValue(value string) (*big.Int, error) {
	if len(value) == 0 {
		return big.NewInt(0), nil
	}

	parsed, ok := big.NewInt(0).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a base 10 integer", ErrInvalidValue, value)
	}
	if parsed.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidValue, value)
	}

	return parsed, nil
}
