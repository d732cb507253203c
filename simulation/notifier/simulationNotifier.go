package notifier

import (
	"sync"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
)

// simulationNotifier handles subscription of simulation event handlers and
// notifies them synchronously, in registration order
type simulationNotifier struct {
	handlers    []SimulationEventHandler
	mutHandlers sync.RWMutex
}

// NewSimulationNotifier returns a new instance of simulationNotifier
func NewSimulationNotifier() *simulationNotifier {
	return &simulationNotifier{
		handlers: make([]SimulationEventHandler, 0),
	}
}

// RegisterHandler will subscribe a handler so it will be called when events fire
func (sn *simulationNotifier) RegisterHandler(handler SimulationEventHandler) {
	if handler != nil {
		sn.mutHandlers.Lock()
		sn.handlers = append(sn.handlers, handler)
		sn.mutHandlers.Unlock()
	}
}

// UnregisterHandler will unsubscribe a handler from the slice
func (sn *simulationNotifier) UnregisterHandler(handlerToUnregister SimulationEventHandler) {
	if handlerToUnregister == nil {
		return
	}

	sn.mutHandlers.Lock()
	for idx, handler := range sn.handlers {
		if handler == handlerToUnregister {
			sn.handlers = append(sn.handlers[:idx], sn.handlers[idx+1:]...)
			break
		}
	}
	sn.mutHandlers.Unlock()
}

// NotifyRunStarted will call all the subscribed handlers
func (sn *simulationNotifier) NotifyRunStarted() {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.RunStarted()
	}
	sn.mutHandlers.RUnlock()
}

// NotifyRunCompleted will call all the subscribed handlers
func (sn *simulationNotifier) NotifyRunCompleted() {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.RunCompleted()
	}
	sn.mutHandlers.RUnlock()
}

// NotifyRunFailed will call all the subscribed handlers with the failure message
func (sn *simulationNotifier) NotifyRunFailed(message string) {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.RunFailed(message)
	}
	sn.mutHandlers.RUnlock()
}

// NotifyMiningStarted will call all the subscribed handlers
func (sn *simulationNotifier) NotifyMiningStarted() {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.MiningStarted()
	}
	sn.mutHandlers.RUnlock()
}

// NotifyMiningCompleted will call all the subscribed handlers
func (sn *simulationNotifier) NotifyMiningCompleted() {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.MiningCompleted()
	}
	sn.mutHandlers.RUnlock()
}

// NotifyContractAddressesChanged will call all the subscribed handlers
func (sn *simulationNotifier) NotifyContractAddressesChanged() {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.ContractAddressesChanged()
	}
	sn.mutHandlers.RUnlock()
}

// NotifyNewRecord will call all the subscribed handlers with the appended record
func (sn *simulationNotifier) NotifyNewRecord(record *records.ExecutionRecord) {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.NewRecord(record)
	}
	sn.mutHandlers.RUnlock()
}

// NotifyStateCleared will call all the subscribed handlers
func (sn *simulationNotifier) NotifyStateCleared() {
	sn.mutHandlers.RLock()
	for _, handler := range sn.handlers {
		handler.StateCleared()
	}
	sn.mutHandlers.RUnlock()
}

// IsInterfaceNil returns true if there is no value under the interface
func (sn *simulationNotifier) IsInterfaceNil() bool {
	return sn == nil
}
