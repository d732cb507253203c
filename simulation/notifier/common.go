package notifier

import "github.com/multiversx/mx-chain-sandbox-go/simulation/records"

// SimulationEventHandler defines what a subscriber to simulation events should do.
// Handlers are invoked synchronously, in registration order.
type SimulationEventHandler interface {
	RunStarted()
	RunCompleted()
	RunFailed(message string)
	MiningStarted()
	MiningCompleted()
	ContractAddressesChanged()
	NewRecord(record *records.ExecutionRecord)
	StateCleared()
}

// EventFuncs bundles optional callbacks for each simulation event. Nil fields
// are simply skipped when the event fires.
type EventFuncs struct {
	OnRunStarted               func()
	OnRunCompleted             func()
	OnRunFailed                func(message string)
	OnMiningStarted            func()
	OnMiningCompleted          func()
	OnContractAddressesChanged func()
	OnNewRecord                func(record *records.ExecutionRecord)
	OnStateCleared             func()
}

// MakeHandler returns a struct satisfying the SimulationEventHandler interface
// out of the provided callbacks
func MakeHandler(funcs EventFuncs) SimulationEventHandler {
	return &handlerStruct{funcs: funcs}
}

// handlerStruct represents a struct which satisfies the SimulationEventHandler interface
type handlerStruct struct {
	funcs EventFuncs
}

// RunStarted will call the subscribed function if not nil
func (hs *handlerStruct) RunStarted() {
	if hs.funcs.OnRunStarted != nil {
		hs.funcs.OnRunStarted()
	}
}

// RunCompleted will call the subscribed function if not nil
func (hs *handlerStruct) RunCompleted() {
	if hs.funcs.OnRunCompleted != nil {
		hs.funcs.OnRunCompleted()
	}
}

// RunFailed will call the subscribed function if not nil
func (hs *handlerStruct) RunFailed(message string) {
	if hs.funcs.OnRunFailed != nil {
		hs.funcs.OnRunFailed(message)
	}
}

// MiningStarted will call the subscribed function if not nil
func (hs *handlerStruct) MiningStarted() {
	if hs.funcs.OnMiningStarted != nil {
		hs.funcs.OnMiningStarted()
	}
}

// MiningCompleted will call the subscribed function if not nil
func (hs *handlerStruct) MiningCompleted() {
	if hs.funcs.OnMiningCompleted != nil {
		hs.funcs.OnMiningCompleted()
	}
}

// ContractAddressesChanged will call the subscribed function if not nil
func (hs *handlerStruct) ContractAddressesChanged() {
	if hs.funcs.OnContractAddressesChanged != nil {
		hs.funcs.OnContractAddressesChanged()
	}
}

// NewRecord will call the subscribed function if not nil
func (hs *handlerStruct) NewRecord(record *records.ExecutionRecord) {
	if hs.funcs.OnNewRecord != nil {
		hs.funcs.OnNewRecord(record)
	}
}

// StateCleared will call the subscribed function if not nil
func (hs *handlerStruct) StateCleared() {
	if hs.funcs.OnStateCleared != nil {
		hs.funcs.OnStateCleared()
	}
}
