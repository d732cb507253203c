package engine

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/hashing"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	"github.com/multiversx/mx-chain-storage-go/lrucache"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
)

var log = logger.GetOrCreate("engine")

const (
	deployBaseGasCost  uint64 = 32000
	callBaseGasCost    uint64 = 21000
	gasCostPerCodeByte uint64 = 200
	gasCostPerArgByte  uint64 = 16
)

type account struct {
	address    []byte
	balance    *big.Int
	nonce      uint64
	code       []byte
	isContract bool
}

// ArgsInMemoryEngine holds the arguments required for creating a new in-memory engine
type ArgsInMemoryEngine struct {
	Hasher             hashing.Hasher
	TraceCacheCapacity int
}

// inMemoryEngine is a self-contained, deterministic ledger. It does not
// interpret contract bytecode: deployments and calls charge a size-based gas
// cost, move value between accounts and return a stable digest of the call,
// which keeps repeated runs of the same sequence byte-for-byte comparable.
// Addresses and transaction hashes are derived from monotonic counters, never
// from wall-clock time or randomness.
type inMemoryEngine struct {
	mut            sync.RWMutex
	hasher         hashing.Hasher
	accounts       map[string]*account
	history        *stateHistory
	addressCounter uint64
	txCounter      uint64
	closed         bool
}

// NewInMemoryEngine returns a new instance of inMemoryEngine
func NewInMemoryEngine(args ArgsInMemoryEngine) (*inMemoryEngine, error) {
	if check.IfNil(args.Hasher) {
		return nil, ErrNilHasher
	}

	traceCache, err := lrucache.NewCache(args.TraceCacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTraceCacheCapacity, err)
	}

	return &inMemoryEngine{
		hasher:   args.Hasher,
		accounts: make(map[string]*account),
		history:  newStateHistory(traceCache),
	}, nil
}

// CreateAccount allocates a fresh externally-owned account with a zero balance
func (engine *inMemoryEngine) CreateAccount() ([]byte, error) {
	engine.mut.Lock()
	defer engine.mut.Unlock()

	if engine.closed {
		return nil, ErrEngineClosed
	}

	address := engine.nextAddress("account")
	engine.accounts[string(address)] = &account{
		address: address,
		balance: big.NewInt(0),
	}

	return address, nil
}

// SetBalance overwrites the balance of an existing account
func (engine *inMemoryEngine) SetBalance(address []byte, balance *big.Int) error {
	if balance == nil {
		return ErrNilBalance
	}
	if balance.Sign() < 0 {
		return ErrNegativeBalance
	}

	engine.mut.Lock()
	defer engine.mut.Unlock()

	if engine.closed {
		return ErrEngineClosed
	}

	acc, found := engine.accounts[string(address)]
	if !found {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, hex.EncodeToString(address))
	}

	acc.balance = big.NewInt(0).Set(balance)

	return nil
}

// AccountBalance returns the current balance of an existing account
func (engine *inMemoryEngine) AccountBalance(address []byte) (*big.Int, error) {
	engine.mut.RLock()
	defer engine.mut.RUnlock()

	acc, found := engine.accounts[string(address)]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, hex.EncodeToString(address))
	}

	return big.NewInt(0).Set(acc.balance), nil
}

// RunContractCreate deploys the provided code as a new contract account and
// returns the execution output, the new contract address and the transaction
// hash. Out-of-gas and out-of-funds conditions are reported through the
// output's return code and leave the ledger untouched.
func (engine *inMemoryEngine) RunContractCreate(input *vmcommon.ContractCreateInput) (*vmcommon.VMOutput, []byte, []byte, error) {
	if input == nil {
		return nil, nil, nil, ErrNilInput
	}

	engine.mut.Lock()
	defer engine.mut.Unlock()

	if engine.closed {
		return nil, nil, nil, ErrEngineClosed
	}

	sender, found := engine.accounts[string(input.CallerAddr)]
	if !found {
		return nil, nil, nil, fmt.Errorf("%w: sender %s", ErrAccountNotFound, hex.EncodeToString(input.CallerAddr))
	}

	gasUsed := deployBaseGasCost +
		uint64(len(input.ContractCode))*gasCostPerCodeByte +
		gasForArguments(input.Arguments)
	if gasUsed > input.GasProvided {
		return outOfGasOutput(gasUsed, input.GasProvided), nil, nil, nil
	}

	value := callValueOrZero(&input.VMInput)
	total := totalCost(gasUsed, input.GasPrice, value)
	if sender.balance.Cmp(total) < 0 {
		return outOfFundsOutput(sender.balance, total), nil, nil, nil
	}

	newAddress := engine.nextAddress("contract/" + hex.EncodeToString(sender.address))
	txHash := engine.nextTxHash(sender.address, newAddress, "")

	contract := &account{
		address:    newAddress,
		balance:    big.NewInt(0),
		code:       input.ContractCode,
		isContract: true,
	}

	before := []accountSnapshot{snapshotOf(sender), snapshotOf(contract)}
	sender.balance.Sub(sender.balance, total)
	sender.nonce++
	contract.balance.Set(value)
	engine.accounts[string(newAddress)] = contract
	after := []accountSnapshot{snapshotOf(sender), snapshotOf(contract)}

	engine.history.retain(&historyEntry{
		txHash:   txHash,
		sender:   sender.address,
		receiver: newAddress,
		value:    big.NewInt(0).Set(value),
		gasUsed:  gasUsed,
		gasLimit: input.GasProvided,
		before:   before,
		after:    after,
	})

	log.Trace("contract created", "address", hex.EncodeToString(newAddress),
		"codeSize", len(input.ContractCode), "gasUsed", gasUsed)

	output := &vmcommon.VMOutput{
		ReturnCode:   vmcommon.Ok,
		ReturnData:   [][]byte{},
		GasRemaining: input.GasProvided - gasUsed,
	}

	return output, newAddress, txHash, nil
}

// RunContractCall executes a state-mutating call against a deployed contract
// and returns the execution output and the transaction hash
func (engine *inMemoryEngine) RunContractCall(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error) {
	return engine.runCall(input, false)
}

// ExecuteQuery executes a read-only call: no balance moves, no nonce bumps,
// only the derived return data. The call is still retained in history so it
// can be inspected in the debugger afterwards.
func (engine *inMemoryEngine) ExecuteQuery(input *vmcommon.ContractCallInput) (*vmcommon.VMOutput, []byte, error) {
	return engine.runCall(input, true)
}

func (engine *inMemoryEngine) runCall(input *vmcommon.ContractCallInput, readOnly bool) (*vmcommon.VMOutput, []byte, error) {
	if input == nil {
		return nil, nil, ErrNilInput
	}

	engine.mut.Lock()
	defer engine.mut.Unlock()

	if engine.closed {
		return nil, nil, ErrEngineClosed
	}

	sender, found := engine.accounts[string(input.CallerAddr)]
	if !found {
		return nil, nil, fmt.Errorf("%w: sender %s", ErrAccountNotFound, hex.EncodeToString(input.CallerAddr))
	}

	receiver, found := engine.accounts[string(input.RecipientAddr)]
	if !found || !receiver.isContract {
		output := &vmcommon.VMOutput{
			ReturnCode:    vmcommon.ContractNotFound,
			ReturnMessage: fmt.Sprintf("no contract at address %s", hex.EncodeToString(input.RecipientAddr)),
		}
		return output, nil, nil
	}

	value := callValueOrZero(&input.VMInput)
	if readOnly && value.Sign() != 0 {
		output := &vmcommon.VMOutput{
			ReturnCode:    vmcommon.UserError,
			ReturnMessage: "value transfer in a read-only call",
		}
		return output, nil, nil
	}

	gasUsed := callBaseGasCost + gasForArguments(input.Arguments)
	if gasUsed > input.GasProvided {
		return outOfGasOutput(gasUsed, input.GasProvided), nil, nil
	}

	if !readOnly {
		total := totalCost(gasUsed, input.GasPrice, value)
		if sender.balance.Cmp(total) < 0 {
			return outOfFundsOutput(sender.balance, total), nil, nil
		}

		txHash := engine.nextTxHash(sender.address, receiver.address, input.Function)
		before := []accountSnapshot{snapshotOf(sender), snapshotOf(receiver)}
		sender.balance.Sub(sender.balance, total)
		sender.nonce++
		receiver.balance.Add(receiver.balance, value)
		after := []accountSnapshot{snapshotOf(sender), snapshotOf(receiver)}

		engine.history.retain(&historyEntry{
			txHash:   txHash,
			sender:   sender.address,
			receiver: receiver.address,
			function: input.Function,
			value:    big.NewInt(0).Set(value),
			gasUsed:  gasUsed,
			gasLimit: input.GasProvided,
			before:   before,
			after:    after,
		})

		return engine.callOutput(receiver, input, gasUsed), txHash, nil
	}

	txHash := engine.nextTxHash(sender.address, receiver.address, input.Function)
	snapshots := []accountSnapshot{snapshotOf(sender), snapshotOf(receiver)}

	engine.history.retain(&historyEntry{
		txHash:   txHash,
		sender:   sender.address,
		receiver: receiver.address,
		function: input.Function,
		value:    big.NewInt(0),
		gasUsed:  gasUsed,
		gasLimit: input.GasProvided,
		readOnly: true,
		before:   snapshots,
		after:    snapshots,
	})

	return engine.callOutput(receiver, input, gasUsed), txHash, nil
}

// TraceForTransaction re-derives the step-level trace of a retained transaction
func (engine *inMemoryEngine) TraceForTransaction(txHash []byte) (*dtos.TransactionTrace, error) {
	return engine.history.traceFor(txHash)
}

// Close discards the ledger and the retained history. The engine rejects all
// further operations.
func (engine *inMemoryEngine) Close() error {
	engine.mut.Lock()
	defer engine.mut.Unlock()

	if engine.closed {
		return nil
	}

	engine.closed = true
	engine.accounts = make(map[string]*account)
	engine.history.reset()

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (engine *inMemoryEngine) IsInterfaceNil() bool {
	return engine == nil
}

// nextAddress must be called under mut
func (engine *inMemoryEngine) nextAddress(realm string) []byte {
	engine.addressCounter++
	return engine.hasher.Compute(fmt.Sprintf("%s/%d", realm, engine.addressCounter))
}

// nextTxHash must be called under mut
func (engine *inMemoryEngine) nextTxHash(sender []byte, receiver []byte, function string) []byte {
	engine.txCounter++
	return engine.hasher.Compute(fmt.Sprintf("tx/%d/%s/%s/%s",
		engine.txCounter, hex.EncodeToString(sender), hex.EncodeToString(receiver), function))
}

// callOutput derives the returned payload as a stable digest of the call so
// identical sequences produce identical outputs
func (engine *inMemoryEngine) callOutput(receiver *account, input *vmcommon.ContractCallInput, gasUsed uint64) *vmcommon.VMOutput {
	payload := hex.EncodeToString(receiver.address) + "/" + input.Function
	for _, argument := range input.Arguments {
		payload += "/" + hex.EncodeToString(argument)
	}

	return &vmcommon.VMOutput{
		ReturnCode:   vmcommon.Ok,
		ReturnData:   [][]byte{engine.hasher.Compute(payload)},
		GasRemaining: input.GasProvided - gasUsed,
	}
}

func snapshotOf(acc *account) accountSnapshot {
	return accountSnapshot{
		address: acc.address,
		balance: big.NewInt(0).Set(acc.balance),
		nonce:   acc.nonce,
	}
}

func callValueOrZero(input *vmcommon.VMInput) *big.Int {
	if input.CallValue == nil {
		return big.NewInt(0)
	}

	return input.CallValue
}

func totalCost(gasUsed uint64, gasPrice uint64, value *big.Int) *big.Int {
	fee := big.NewInt(0).Mul(
		big.NewInt(0).SetUint64(gasUsed),
		big.NewInt(0).SetUint64(gasPrice),
	)

	return fee.Add(fee, value)
}

func gasForArguments(arguments [][]byte) uint64 {
	gas := uint64(0)
	for _, argument := range arguments {
		gas += uint64(len(argument)) * gasCostPerArgByte
	}

	return gas
}

func outOfGasOutput(gasUsed uint64, gasProvided uint64) *vmcommon.VMOutput {
	return &vmcommon.VMOutput{
		ReturnCode:    vmcommon.OutOfGas,
		ReturnMessage: fmt.Sprintf("needs %d gas units, %d provided", gasUsed, gasProvided),
	}
}

func outOfFundsOutput(balance *big.Int, required *big.Int) *vmcommon.VMOutput {
	return &vmcommon.VMOutput{
		ReturnCode:    vmcommon.OutOfFunds,
		ReturnMessage: fmt.Sprintf("balance %s cannot cover %s", balance.String(), required.String()),
	}
}
