package testscommon

import (
	"math/big"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
)

// EngineStub -
type EngineStub struct {
	CreateAccountCalled       func() ([]byte, error)
	SetBalanceCalled          func(address []byte, balance *big.Int) error
	AccountBalanceCalled      func(address []byte) (*big.Int, error)
	RunContractCreateCalled   func(input *vmcommon.ContractCreateInput) (*vmcommon.VMOutput, []byte, []byte, error)
	RunContractCallCalled     func(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error)
	ExecuteQueryCalled        func(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error)
	TraceForTransactionCalled func(txHash []byte) (*dtos.TransactionTrace, error)
	CloseCalled               func() error
}

// CreateAccount -
func (stub *EngineStub) CreateAccount() ([]byte, error) {
	if stub.CreateAccountCalled != nil {
		return stub.CreateAccountCalled()
	}
	return []byte("account"), nil
}

// SetBalance -
func (stub *EngineStub) SetBalance(address []byte, balance *big.Int) error {
	if stub.SetBalanceCalled != nil {
		return stub.SetBalanceCalled(address, balance)
	}
	return nil
}

// AccountBalance -
func (stub *EngineStub) AccountBalance(address []byte) (*big.Int, error) {
	if stub.AccountBalanceCalled != nil {
		return stub.AccountBalanceCalled(address)
	}
	return big.NewInt(0), nil
}

// RunContractCreate -
func (stub *EngineStub) RunContractCreate(input *vmcommon.ContractCreateInput) (*vmcommon.VMOutput, []byte, []byte, error) {
	if stub.RunContractCreateCalled != nil {
		return stub.RunContractCreateCalled(input)
	}
	return &vmcommon.VMOutput{ReturnCode: vmcommon.Ok}, []byte("contract"), []byte("hash"), nil
}

// RunContractCall -
func (stub *EngineStub) RunContractCall(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error) {
	if stub.RunContractCallCalled != nil {
		return stub.RunContractCallCalled(input)
	}
	return &vmcommon.VMOutput{ReturnCode: vmcommon.Ok}, []byte("hash"), nil
}

// ExecuteQuery -
func (stub *EngineStub) ExecuteQuery(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error) {
	if stub.ExecuteQueryCalled != nil {
		return stub.ExecuteQueryCalled(input)
	}
	return &vmcommon.VMOutput{ReturnCode: vmcommon.Ok}, []byte("hash"), nil
}

// TraceForTransaction -
func (stub *EngineStub) TraceForTransaction(txHash []byte) (*dtos.TransactionTrace, error) {
	if stub.TraceForTransactionCalled != nil {
		return stub.TraceForTransactionCalled(txHash)
	}
	return dtos.NewEmptyTrace(), nil
}

// Close -
func (stub *EngineStub) Close() error {
	if stub.CloseCalled != nil {
		return stub.CloseCalled()
	}
	return nil
}

// IsInterfaceNil -
func (stub *EngineStub) IsInterfaceNil() bool {
	return stub == nil
}
