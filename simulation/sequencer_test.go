package simulation

import (
	"errors"
	"testing"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDescription() *dtos.StateDescription {
	return &dtos.StateDescription{
		Accounts: []dtos.AccountState{
			{Identity: "alice", Balance: "1000000000"},
			{Identity: "bob", Balance: "500"},
		},
		Transactions: []dtos.TransactionSettings{
			{
				ContractID: "token",
				Code:       "0x0061736d01000000",
				Sender:     "alice",
				GasLimit:   20000000,
				GasPrice:   1,
			},
			{
				ContractID: "token",
				FunctionID: "transfer",
				Value:      "10",
				Sender:     "alice",
				GasLimit:   20000000,
				GasPrice:   1,
			},
		},
	}
}

func TestTransactionSequencer_BuildOperations(t *testing.T) {
	t.Parallel()

	ts := NewTransactionSequencer()

	t.Run("nil description should error", func(t *testing.T) {
		t.Parallel()

		operations, err := ts.BuildOperations(nil)
		assert.Nil(t, operations)
		assert.Equal(t, ErrNilStateDescription, err)
	})
	t.Run("empty description should build no operations", func(t *testing.T) {
		t.Parallel()

		operations, err := ts.BuildOperations(&dtos.StateDescription{})
		assert.NoError(t, err)
		assert.Empty(t, operations)
	})
	t.Run("should build deployment then call", func(t *testing.T) {
		t.Parallel()

		operations, err := ts.BuildOperations(createTestDescription())
		require.NoError(t, err)
		require.Len(t, operations, 2)

		deploy := operations[0]
		assert.Equal(t, opDeploy, deploy.kind)
		assert.Equal(t, 1, deploy.index)
		assert.Equal(t, "token", deploy.contractName)
		assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, deploy.code)
		assert.Zero(t, deploy.value.Sign())

		call := operations[1]
		assert.Equal(t, opCall, call.kind)
		assert.Equal(t, 2, call.index)
		assert.Equal(t, "transfer", call.functionName)
		assert.Equal(t, "10", call.value.String())
	})
	t.Run("unknown sender should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[1].Sender = "mallory"

		operations, err := ts.BuildOperations(description)
		assert.Nil(t, operations)
		assert.True(t, errors.Is(err, ErrUnknownSenderIdentity))
		assert.Contains(t, err.Error(), "operation 2")
	})
	t.Run("malformed value should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[1].Value = "ten"

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidValue))
	})
	t.Run("negative value should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[1].Value = "-5"

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidValue))
	})
	t.Run("call without contract name should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[1].ContractID = ""

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
	t.Run("call carrying code should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[1].Code = "0xff"

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
	t.Run("read-only call with value should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[1].ReadOnly = true

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
	t.Run("read-only call without value should build", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[1].ReadOnly = true
		description.Transactions[1].Value = ""

		operations, err := ts.BuildOperations(description)
		require.NoError(t, err)
		assert.True(t, operations[1].readOnly)
	})
	t.Run("read-only deployment should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[0].ReadOnly = true

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
	t.Run("deployment without code or source should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[0].Code = ""

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
	t.Run("deployment with both code and source should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[0].StdContract = &dtos.StdContractSource{
			Name: "registrar",
			URL:  "http://localhost/registrar",
		}

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
	t.Run("deployment with malformed code should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[0].Code = "zz"

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
	t.Run("standard contract deployment takes name from source", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[0].Code = ""
		description.Transactions[0].ContractID = ""
		description.Transactions[0].StdContract = &dtos.StdContractSource{
			Name: "registrar",
			URL:  "http://localhost/registrar",
		}

		operations, err := ts.BuildOperations(description)
		require.NoError(t, err)
		assert.Equal(t, "registrar", operations[0].contractName)
		assert.NotNil(t, operations[0].stdSource)
	})
	t.Run("incomplete standard contract source should error", func(t *testing.T) {
		t.Parallel()

		description := createTestDescription()
		description.Transactions[0].Code = ""
		description.Transactions[0].StdContract = &dtos.StdContractSource{Name: "registrar"}

		_, err := ts.BuildOperations(description)
		assert.True(t, errors.Is(err, ErrInvalidTransactionSettings))
	})
}

func TestTransactionSequencer_ResolveArguments(t *testing.T) {
	t.Parallel()

	ts := NewTransactionSequencer()
	knownAddress := []byte("contract address")
	lookup := func(name string) ([]byte, error) {
		if name == "token" {
			return knownAddress, nil
		}
		return nil, errors.New("not found")
	}

	t.Run("no parameters", func(t *testing.T) {
		t.Parallel()

		arguments, err := ts.ResolveArguments(&operation{index: 1}, lookup)
		assert.NoError(t, err)
		assert.Empty(t, arguments)
	})
	t.Run("literal and reference parameters", func(t *testing.T) {
		t.Parallel()

		op := &operation{
			index: 3,
			parameters: []dtos.ParameterBinding{
				{Name: "amount", Value: "0x2a"},
				{Name: "target", AddressOf: "token"},
			},
		}

		arguments, err := ts.ResolveArguments(op, lookup)
		require.NoError(t, err)
		require.Len(t, arguments, 2)
		assert.Equal(t, []byte{0x2a}, arguments[0])
		assert.Equal(t, knownAddress, arguments[1])
	})
	t.Run("binding with both value and reference should error", func(t *testing.T) {
		t.Parallel()

		op := &operation{
			index:      3,
			parameters: []dtos.ParameterBinding{{Name: "target", Value: "0x2a", AddressOf: "token"}},
		}

		_, err := ts.ResolveArguments(op, lookup)
		assert.True(t, errors.Is(err, ErrInvalidParameterBinding))
	})
	t.Run("binding with neither value nor reference should error", func(t *testing.T) {
		t.Parallel()

		op := &operation{
			index:      3,
			parameters: []dtos.ParameterBinding{{Name: "target"}},
		}

		_, err := ts.ResolveArguments(op, lookup)
		assert.True(t, errors.Is(err, ErrInvalidParameterBinding))
	})
	t.Run("malformed literal should error", func(t *testing.T) {
		t.Parallel()

		op := &operation{
			index:      3,
			parameters: []dtos.ParameterBinding{{Name: "amount", Value: "zz"}},
		}

		_, err := ts.ResolveArguments(op, lookup)
		assert.True(t, errors.Is(err, ErrInvalidParameterBinding))
	})
	t.Run("unresolvable reference should error with operation and contract", func(t *testing.T) {
		t.Parallel()

		op := &operation{
			index:      3,
			parameters: []dtos.ParameterBinding{{Name: "target", AddressOf: "missing"}},
		}

		_, err := ts.ResolveArguments(op, lookup)
		assert.True(t, errors.Is(err, ErrUnresolvableParameter))
		assert.Contains(t, err.Error(), "operation 3")
		assert.Contains(t, err.Error(), `"missing"`)
	})
}
