package simulation

import (
	"math/big"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
)

// ExecutionEngine is the boundary towards the isolated, non-networked ledger
// engine a simulation run executes against. Implementations must allocate
// addresses deterministically and retain enough per-transaction state history
// to re-derive a step trace for any executed transaction on demand.
type ExecutionEngine interface {
	CreateAccount() ([]byte, error)
	SetBalance(address []byte, balance *big.Int) error
	AccountBalance(address []byte) (*big.Int, error)
	RunContractCreate(input *vmcommon.ContractCreateInput) (*vmcommon.VMOutput, []byte, []byte, error)
	RunContractCall(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error)
	ExecuteQuery(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error)
	TraceForTransaction(txHash []byte) (*dtos.TransactionTrace, error)
	Close() error
	IsInterfaceNil() bool
}

// EngineFactory creates a fresh execution engine for each simulation run; a
// state reset discards the previous engine instance entirely
type EngineFactory interface {
	CreateEngine() (ExecutionEngine, error)
	IsInterfaceNil() bool
}

// SourceFetcher retrieves standard contract bytecode from an external source keyed by URL
type SourceFetcher interface {
	FetchContractCode(name string, url string) ([]byte, error)
	IsInterfaceNil() bool
}

// EventNotifier fires the simulation events towards the registered observers
type EventNotifier interface {
	NotifyRunStarted()
	NotifyRunCompleted()
	NotifyRunFailed(message string)
	NotifyMiningStarted()
	NotifyMiningCompleted()
	NotifyContractAddressesChanged()
	NotifyNewRecord(record *records.ExecutionRecord)
	NotifyStateCleared()
	IsInterfaceNil() bool
}

// SimulationHandler is the full surface the controller exposes to its consumers
type SimulationHandler interface {
	SetupState(description *dtos.StateDescription) error
	Mine() error
	DebugRecord(index uint64) (*dtos.TransactionTrace, error)
	EmptyRecord() *dtos.TransactionTrace
	NewAddress() (string, error)
	ApiCall(request string) (string, error)
	CurrentRecord() *records.ExecutionRecord
	Record(index uint64) (*records.ExecutionRecord, error)
	ContractAddresses() map[string]string
	IsRunning() bool
	IsMining() bool
	Close() error
	IsInterfaceNil() bool
}
