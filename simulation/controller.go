package simulation

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/multiversx/mx-chain-core-go/core/atomic"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/marshal"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/registry"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
)

var log = logger.GetOrCreate("simulation")

// RegistryHandler maintains the name<->address namespaces of one simulation run
type RegistryHandler interface {
	RegisterDeployed(name string, address []byte) error
	RegisterStandard(name string, address []byte) error
	Lookup(name string) ([]byte, error)
	LookupName(address []byte) (string, error)
	DeployedContracts() map[string]string
	Reset()
	IsInterfaceNil() bool
}

// RecordStorer is the append-only log of execution records of one simulation run
type RecordStorer interface {
	Append(record *records.ExecutionRecord) (uint64, error)
	RecordMarkingNewBlock(blockIndex uint64) *records.ExecutionRecord
	Get(index uint64) (*records.ExecutionRecord, error)
	Len() int
	Clear()
	IsInterfaceNil() bool
}

// ArgsSimulationController holds the arguments required for creating a new simulation controller
type ArgsSimulationController struct {
	EngineFactory  EngineFactory
	SourceFetcher  SourceFetcher
	EventsNotifier EventNotifier
	Marshalizer    marshal.Marshalizer
}

// simulationController is the coordinating state machine of a simulation run.
// It exclusively owns the ledger engine, the address registry and the record
// store, all scoped to the lifetime of one run; a state reset discards and
// recreates them atomically.
type simulationController struct {
	engineFactory EngineFactory
	fetcher       SourceFetcher
	notifier      EventNotifier
	marshalizer   marshal.Marshalizer
	sequencer     *transactionSequencer

	flagRunning atomic.Flag
	flagMining  atomic.Flag

	mutExecution       sync.RWMutex
	engine             ExecutionEngine
	registry           RegistryHandler
	store              RecordStorer
	accountsByIdentity map[string][]byte
	currentBlock       uint64
	txIndexInBlock     uint64
	currentRecord      *records.ExecutionRecord
}

// NewSimulationController returns a new instance of simulationController
func NewSimulationController(args ArgsSimulationController) (*simulationController, error) {
	if check.IfNil(args.EngineFactory) {
		return nil, ErrNilEngineFactory
	}
	if check.IfNil(args.SourceFetcher) {
		return nil, ErrNilSourceFetcher
	}
	if check.IfNil(args.EventsNotifier) {
		return nil, ErrNilEventNotifier
	}
	if check.IfNil(args.Marshalizer) {
		return nil, ErrNilMarshalizer
	}

	engine, err := args.EngineFactory.CreateEngine()
	if err != nil {
		return nil, err
	}

	return &simulationController{
		engineFactory:      args.EngineFactory,
		fetcher:            args.SourceFetcher,
		notifier:           args.EventsNotifier,
		marshalizer:        args.Marshalizer,
		sequencer:          NewTransactionSequencer(),
		engine:             engine,
		registry:           registry.NewAddressRegistry(),
		store:              records.NewRecordStore(),
		accountsByIdentity: make(map[string][]byte),
	}, nil
}

// SetupState starts a new simulation run from the given declarative state
// description: the ledger, registry and record store are reset, the declared
// balances funded and the implied operation sequence executed one operation at
// a time on a dedicated goroutine. Completion or failure is communicated
// through the events notifier, not through the returned error, which only
// covers up-front rejections.
func (sc *simulationController) SetupState(description *dtos.StateDescription) error {
	if description == nil {
		return ErrNilStateDescription
	}
	if sc.flagMining.IsSet() {
		return ErrMiningInProgress
	}
	if sc.flagRunning.SetReturningPrevious() {
		return ErrSimulationRunning
	}

	sc.notifier.NotifyRunStarted()
	go sc.executeSequence(description)

	return nil
}

func (sc *simulationController) executeSequence(description *dtos.StateDescription) {
	err := sc.runSequence(description)

	// the running flag is lowered before notifying so observers reacting to
	// the terminal event already see the controller back in idle
	sc.flagRunning.Reset()

	if err != nil {
		log.Debug("simulation run failed", "error", err.Error())
		sc.notifier.NotifyRunFailed(err.Error())
		return
	}

	log.Debug("simulation run completed", "records", sc.store.Len())
	sc.notifier.NotifyRunCompleted()
}

func (sc *simulationController) runSequence(description *dtos.StateDescription) error {
	sc.mutExecution.Lock()
	defer sc.mutExecution.Unlock()

	err := sc.resetComponents()
	if err != nil {
		return err
	}

	err = sc.fundAccounts(description.Accounts)
	if err != nil {
		return err
	}

	operations, err := sc.sequencer.BuildOperations(description)
	if err != nil {
		return err
	}

	for _, op := range operations {
		err = sc.executeOperation(op, sc.accountsByIdentity[op.senderIdentity])
		if err != nil {
			return err
		}
	}

	return nil
}

// resetComponents must be called under mutExecution
func (sc *simulationController) resetComponents() error {
	if !check.IfNil(sc.engine) {
		err := sc.engine.Close()
		log.LogIfError(err)
	}

	engine, err := sc.engineFactory.CreateEngine()
	if err != nil {
		return err
	}

	sc.engine = engine
	sc.registry.Reset()
	sc.store.Clear()
	sc.accountsByIdentity = make(map[string][]byte)
	sc.currentBlock = 0
	sc.txIndexInBlock = 0
	sc.currentRecord = nil

	sc.notifier.NotifyContractAddressesChanged()
	sc.notifier.NotifyStateCleared()

	return nil
}

// fundAccounts must be called under mutExecution
func (sc *simulationController) fundAccounts(accounts []dtos.AccountState) error {
	for _, account := range accounts {
		balance, err := parseBalance(account.Balance)
		if err != nil {
			return fmt.Errorf("%w for identity %q", err, account.Identity)
		}

		address, found := sc.accountsByIdentity[account.Identity]
		if !found {
			address, err = sc.engine.CreateAccount()
			if err != nil {
				return err
			}
			sc.accountsByIdentity[account.Identity] = address
		}

		err = sc.engine.SetBalance(address, balance)
		if err != nil {
			return err
		}

		log.Trace("funded account", "identity", account.Identity,
			"address", hex.EncodeToString(address), "balance", balance.String())
	}

	return nil
}

// executeOperation must be called under mutExecution
func (sc *simulationController) executeOperation(op *operation, senderAddress []byte) error {
	arguments, err := sc.sequencer.ResolveArguments(op, sc.registry.Lookup)
	if err != nil {
		return err
	}

	if op.kind == opDeploy {
		return sc.deployContract(op, senderAddress, arguments)
	}

	return sc.callContract(op, senderAddress, arguments)
}

// deployContract must be called under mutExecution
func (sc *simulationController) deployContract(op *operation, senderAddress []byte, arguments [][]byte) error {
	code := op.code
	var err error
	if op.stdSource != nil {
		code, err = sc.fetcher.FetchContractCode(op.stdSource.Name, op.stdSource.URL)
		if err != nil {
			return fmt.Errorf("operation %d: %w", op.index, err)
		}
	}

	input := &vmcommon.ContractCreateInput{
		VMInput: vmcommon.VMInput{
			CallerAddr:  senderAddress,
			Arguments:   arguments,
			CallValue:   big.NewInt(0).Set(op.value),
			GasPrice:    op.gasPrice,
			GasProvided: op.gasLimit,
		},
		ContractCode: code,
	}

	vmOutput, newAddress, txHash, err := sc.engine.RunContractCreate(input)
	if err != nil {
		return fmt.Errorf("%w: operation %d: %v", ErrEngineExecutionFailed, op.index, err)
	}
	if vmOutput.ReturnCode != vmcommon.Ok {
		return fmt.Errorf("%w: operation %d: %s: %s",
			ErrEngineExecutionFailed, op.index, vmOutput.ReturnCode, vmOutput.ReturnMessage)
	}

	if op.stdSource != nil {
		err = sc.registry.RegisterStandard(op.contractName, newAddress)
	} else {
		err = sc.registry.RegisterDeployed(op.contractName, newAddress)
	}
	if err != nil {
		return fmt.Errorf("operation %d: %w", op.index, err)
	}

	if op.stdSource == nil {
		sc.notifier.NotifyContractAddressesChanged()
	}

	log.Debug("deployed contract", "name", op.contractName,
		"address", hex.EncodeToString(newAddress), "standard", op.stdSource != nil)

	record := &records.ExecutionRecord{
		PositionLabel: sc.nextPositionLabel(),
		Contract:      op.contractName,
		Value:         big.NewInt(0).Set(op.value),
		Address:       newAddress,
		Returned:      newAddress,
		TxHash:        txHash,
		IsCall:        false,
		Type:          records.TransactionRecord,
	}

	return sc.appendRecord(record)
}

// callContract must be called under mutExecution
func (sc *simulationController) callContract(op *operation, senderAddress []byte, arguments [][]byte) error {
	target, err := sc.resolveTargetAddress(op.contractName)
	if err != nil {
		return fmt.Errorf("%w: operation %d targets %q", ErrUnknownTargetContract, op.index, op.contractName)
	}

	input := &vmcommon.ContractCallInput{
		VMInput: vmcommon.VMInput{
			CallerAddr:  senderAddress,
			Arguments:   arguments,
			CallValue:   big.NewInt(0).Set(op.value),
			GasPrice:    op.gasPrice,
			GasProvided: op.gasLimit,
		},
		RecipientAddr: target,
		Function:      op.functionName,
	}

	var vmOutput *vmcommon.VMOutput
	var txHash []byte
	if op.readOnly {
		vmOutput, txHash, err = sc.engine.ExecuteQuery(input)
	} else {
		vmOutput, txHash, err = sc.engine.RunContractCall(input)
	}
	if err != nil {
		return fmt.Errorf("%w: operation %d: %v", ErrEngineExecutionFailed, op.index, err)
	}
	if vmOutput.ReturnCode != vmcommon.Ok {
		return fmt.Errorf("%w: operation %d: %s: %s",
			ErrEngineExecutionFailed, op.index, vmOutput.ReturnCode, vmOutput.ReturnMessage)
	}

	record := &records.ExecutionRecord{
		PositionLabel: sc.nextPositionLabel(),
		Contract:      op.contractName,
		Function:      op.functionName,
		Value:         big.NewInt(0).Set(op.value),
		Address:       target,
		Returned:      firstReturnData(vmOutput),
		TxHash:        txHash,
		IsCall:        op.readOnly,
		Type:          records.TransactionRecord,
	}

	return sc.appendRecord(record)
}

// resolveTargetAddress accepts either a registered contract name or a raw
// hex-encoded address, must be called under mutExecution
func (sc *simulationController) resolveTargetAddress(nameOrAddress string) ([]byte, error) {
	address, err := sc.registry.Lookup(nameOrAddress)
	if err == nil {
		return address, nil
	}

	decoded, errDecode := hex.DecodeString(nameOrAddress)
	if errDecode != nil || len(decoded) == 0 {
		return nil, err
	}

	return decoded, nil
}

// appendRecord must be called under mutExecution
func (sc *simulationController) appendRecord(record *records.ExecutionRecord) error {
	_, err := sc.store.Append(record)
	if err != nil {
		return err
	}

	sc.currentRecord = record
	sc.txIndexInBlock++
	sc.notifier.NotifyNewRecord(record)

	return nil
}

// nextPositionLabel must be called under mutExecution
func (sc *simulationController) nextPositionLabel() string {
	return fmt.Sprintf("%d.%d", sc.currentBlock, sc.txIndexInBlock)
}

// Mine simulates the progression to a new block by appending a block-boundary
// marker record. The ledger state itself is left untouched.
func (sc *simulationController) Mine() error {
	if sc.flagRunning.IsSet() {
		return ErrSimulationRunning
	}
	if sc.flagMining.SetReturningPrevious() {
		return ErrMiningInProgress
	}
	defer sc.flagMining.Reset()

	sc.notifier.NotifyMiningStarted()

	sc.mutExecution.Lock()
	sc.currentBlock++
	sc.txIndexInBlock = 0
	record := sc.store.RecordMarkingNewBlock(sc.currentBlock)
	sc.currentRecord = record
	sc.mutExecution.Unlock()

	sc.notifier.NotifyNewRecord(record)
	sc.notifier.NotifyMiningCompleted()

	return nil
}

// DebugRecord re-derives the step-level execution trace of the record stored
// at the given index from the engine's retained state history
func (sc *simulationController) DebugRecord(index uint64) (*dtos.TransactionTrace, error) {
	if sc.flagRunning.IsSet() {
		return nil, ErrSimulationRunning
	}

	sc.mutExecution.RLock()
	defer sc.mutExecution.RUnlock()

	record, err := sc.store.Get(index)
	if err != nil {
		return nil, err
	}
	if record.Type == records.BlockRecord || len(record.TxHash) == 0 {
		return nil, fmt.Errorf("%w: record %d", ErrNoTraceForRecord, index)
	}

	return sc.engine.TraceForTransaction(record.TxHash)
}

// EmptyRecord returns a blank trace seeded with no prior execution, used when
// composing a new ad-hoc transaction
func (sc *simulationController) EmptyRecord() *dtos.TransactionTrace {
	return dtos.NewEmptyTrace()
}

// NewAddress allocates and returns a fresh, unused account address without
// touching the registry's name bindings
func (sc *simulationController) NewAddress() (string, error) {
	if sc.flagRunning.IsSet() {
		return "", ErrSimulationRunning
	}

	sc.mutExecution.Lock()
	defer sc.mutExecution.Unlock()

	address, err := sc.engine.CreateAccount()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(address), nil
}

// CurrentRecord returns the record auto-selected for debugger entry, the last
// one appended. It returns nil while a sequence is executing.
func (sc *simulationController) CurrentRecord() *records.ExecutionRecord {
	if sc.flagRunning.IsSet() {
		return nil
	}

	sc.mutExecution.RLock()
	defer sc.mutExecution.RUnlock()

	return sc.currentRecord
}

// Record returns the record stored at the given index
func (sc *simulationController) Record(index uint64) (*records.ExecutionRecord, error) {
	if sc.flagRunning.IsSet() {
		return nil, ErrSimulationRunning
	}

	return sc.store.Get(index)
}

// ContractAddresses returns the user namespace of the registry as a
// name -> hex-encoded address view
func (sc *simulationController) ContractAddresses() map[string]string {
	return sc.registry.DeployedContracts()
}

// IsRunning returns true while a transaction sequence is executing
func (sc *simulationController) IsRunning() bool {
	return sc.flagRunning.IsSet()
}

// IsMining returns true while a simulated mining step is executing
func (sc *simulationController) IsMining() bool {
	return sc.flagMining.IsSet()
}

// Close releases the underlying execution engine
func (sc *simulationController) Close() error {
	sc.mutExecution.Lock()
	defer sc.mutExecution.Unlock()

	if check.IfNil(sc.engine) {
		return nil
	}

	return sc.engine.Close()
}

// IsInterfaceNil returns true if there is no value under the interface
func (sc *simulationController) IsInterfaceNil() bool {
	return sc == nil
}

func parseBalance(balance string) (*big.Int, error) {
	if len(balance) == 0 {
		return big.NewInt(0), nil
	}

	parsed, ok := big.NewInt(0).SetString(balance, 10)
	if !ok || parsed.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBalance, balance)
	}

	return parsed, nil
}

func firstReturnData(vmOutput *vmcommon.VMOutput) []byte {
	if len(vmOutput.ReturnData) == 0 {
		return nil
	}

	return vmOutput.ReturnData[0]
}
