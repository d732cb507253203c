package notifier

import (
	"testing"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationNotifier_NotifiesHandlersInRegistrationOrder(t *testing.T) {
	t.Parallel()

	sn := NewSimulationNotifier()

	calls := make([]string, 0)
	sn.RegisterHandler(MakeHandler(EventFuncs{
		OnRunStarted: func() { calls = append(calls, "first") },
	}))
	sn.RegisterHandler(MakeHandler(EventFuncs{
		OnRunStarted: func() { calls = append(calls, "second") },
	}))

	sn.NotifyRunStarted()

	require.Equal(t, []string{"first", "second"}, calls)
}

func TestSimulationNotifier_AllEventsReachTheHandler(t *testing.T) {
	t.Parallel()

	sn := NewSimulationNotifier()

	received := make([]string, 0)
	var receivedRecord *records.ExecutionRecord
	var receivedMessage string
	sn.RegisterHandler(MakeHandler(EventFuncs{
		OnRunStarted:               func() { received = append(received, "runStarted") },
		OnRunCompleted:             func() { received = append(received, "runCompleted") },
		OnRunFailed:                func(message string) { received = append(received, "runFailed"); receivedMessage = message },
		OnMiningStarted:            func() { received = append(received, "miningStarted") },
		OnMiningCompleted:          func() { received = append(received, "miningCompleted") },
		OnContractAddressesChanged: func() { received = append(received, "contractAddressesChanged") },
		OnNewRecord:                func(record *records.ExecutionRecord) { received = append(received, "newRecord"); receivedRecord = record },
		OnStateCleared:             func() { received = append(received, "stateCleared") },
	}))

	record := &records.ExecutionRecord{Contract: "Token"}

	sn.NotifyRunStarted()
	sn.NotifyRunCompleted()
	sn.NotifyRunFailed("boom")
	sn.NotifyMiningStarted()
	sn.NotifyMiningCompleted()
	sn.NotifyContractAddressesChanged()
	sn.NotifyNewRecord(record)
	sn.NotifyStateCleared()

	expected := []string{
		"runStarted", "runCompleted", "runFailed", "miningStarted",
		"miningCompleted", "contractAddressesChanged", "newRecord", "stateCleared",
	}
	require.Equal(t, expected, received)
	assert.Equal(t, "boom", receivedMessage)
	assert.Equal(t, record, receivedRecord)
}

func TestSimulationNotifier_UnregisterHandler(t *testing.T) {
	t.Parallel()

	sn := NewSimulationNotifier()

	numCallsFirst := 0
	numCallsSecond := 0
	first := MakeHandler(EventFuncs{OnStateCleared: func() { numCallsFirst++ }})
	second := MakeHandler(EventFuncs{OnStateCleared: func() { numCallsSecond++ }})

	sn.RegisterHandler(first)
	sn.RegisterHandler(second)
	sn.NotifyStateCleared()

	sn.UnregisterHandler(first)
	sn.NotifyStateCleared()

	assert.Equal(t, 1, numCallsFirst)
	assert.Equal(t, 2, numCallsSecond)
}

func TestSimulationNotifier_NilHandlersAreIgnored(t *testing.T) {
	t.Parallel()

	sn := NewSimulationNotifier()
	sn.RegisterHandler(nil)
	sn.UnregisterHandler(nil)

	// must not panic with no handlers registered
	sn.NotifyRunStarted()
	sn.NotifyNewRecord(nil)
}

func TestSimulationNotifier_IsInterfaceNil(t *testing.T) {
	t.Parallel()

	var sn *simulationNotifier
	require.True(t, sn.IsInterfaceNil())

	sn = NewSimulationNotifier()
	require.False(t, sn.IsInterfaceNil())
}
