package testscommon

import (
	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
)

// FacadeStub -
type FacadeStub struct {
	SetupStateCalled        func(description *dtos.StateDescription) error
	MineCalled              func() error
	DebugRecordCalled       func(index uint64) (*dtos.TransactionTrace, error)
	EmptyRecordCalled       func() *dtos.TransactionTrace
	NewAddressCalled        func() (string, error)
	ApiCallCalled           func(request string) (string, error)
	CurrentRecordCalled     func() *records.ExecutionRecord
	RecordCalled            func(index uint64) (*records.ExecutionRecord, error)
	ContractAddressesCalled func() map[string]string
	IsRunningCalled         func() bool
	IsMiningCalled          func() bool
	CloseCalled             func() error
}

// SetupState -
func (stub *FacadeStub) SetupState(description *dtos.StateDescription) error {
	if stub.SetupStateCalled != nil {
		return stub.SetupStateCalled(description)
	}
	return nil
}

// Mine -
func (stub *FacadeStub) Mine() error {
	if stub.MineCalled != nil {
		return stub.MineCalled()
	}
	return nil
}

// DebugRecord -
func (stub *FacadeStub) DebugRecord(index uint64) (*dtos.TransactionTrace, error) {
	if stub.DebugRecordCalled != nil {
		return stub.DebugRecordCalled(index)
	}
	return dtos.NewEmptyTrace(), nil
}

// EmptyRecord -
func (stub *FacadeStub) EmptyRecord() *dtos.TransactionTrace {
	if stub.EmptyRecordCalled != nil {
		return stub.EmptyRecordCalled()
	}
	return dtos.NewEmptyTrace()
}

// NewAddress -
func (stub *FacadeStub) NewAddress() (string, error) {
	if stub.NewAddressCalled != nil {
		return stub.NewAddressCalled()
	}
	return "", nil
}

// ApiCall -
func (stub *FacadeStub) ApiCall(request string) (string, error) {
	if stub.ApiCallCalled != nil {
		return stub.ApiCallCalled(request)
	}
	return "{}", nil
}

// CurrentRecord -
func (stub *FacadeStub) CurrentRecord() *records.ExecutionRecord {
	if stub.CurrentRecordCalled != nil {
		return stub.CurrentRecordCalled()
	}
	return nil
}

// Record -
func (stub *FacadeStub) Record(index uint64) (*records.ExecutionRecord, error) {
	if stub.RecordCalled != nil {
		return stub.RecordCalled(index)
	}
	return nil, nil
}

// ContractAddresses -
func (stub *FacadeStub) ContractAddresses() map[string]string {
	if stub.ContractAddressesCalled != nil {
		return stub.ContractAddressesCalled()
	}
	return nil
}

// IsRunning -
func (stub *FacadeStub) IsRunning() bool {
	if stub.IsRunningCalled != nil {
		return stub.IsRunningCalled()
	}
	return false
}

// IsMining -
func (stub *FacadeStub) IsMining() bool {
	if stub.IsMiningCalled != nil {
		return stub.IsMiningCalled()
	}
	return false
}

// Close -
func (stub *FacadeStub) Close() error {
	if stub.CloseCalled != nil {
		return stub.CloseCalled()
	}
	return nil
}

// IsInterfaceNil -
func (stub *FacadeStub) IsInterfaceNil() bool {
	return stub == nil
}
