package testscommon

import "github.com/multiversx/mx-chain-sandbox-go/simulation"

// EngineFactoryStub -
type EngineFactoryStub struct {
	CreateEngineCalled func() (simulation.ExecutionEngine, error)
}

// CreateEngine -
func (stub *EngineFactoryStub) CreateEngine() (simulation.ExecutionEngine, error) {
	if stub.CreateEngineCalled != nil {
		return stub.CreateEngineCalled()
	}
	return &EngineStub{}, nil
}

// IsInterfaceNil -
func (stub *EngineFactoryStub) IsInterfaceNil() bool {
	return stub == nil
}
