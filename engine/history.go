package engine

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
)

const traceStepEstimatedSize = 96

type accountSnapshot struct {
	address []byte
	balance *big.Int
	nonce   uint64
}

// historyEntry captures one executed transaction together with the snapshots
// of every account it touched, taken before and after execution
type historyEntry struct {
	txHash   []byte
	sender   []byte
	receiver []byte
	function string
	value    *big.Int
	gasUsed  uint64
	gasLimit uint64
	readOnly bool
	before   []accountSnapshot
	after    []accountSnapshot
}

// stateHistory retains the per-transaction snapshots of one engine instance
// and re-derives debugger traces from them on demand. Derived traces are kept
// in a bounded LRU cache since the debugger tends to revisit the same records.
type stateHistory struct {
	mut        sync.RWMutex
	entries    map[string]*historyEntry
	traceCache traceCacher
}

func newStateHistory(traceCache traceCacher) *stateHistory {
	return &stateHistory{
		entries:    make(map[string]*historyEntry),
		traceCache: traceCache,
	}
}

func (history *stateHistory) retain(entry *historyEntry) {
	history.mut.Lock()
	history.entries[string(entry.txHash)] = entry
	history.mut.Unlock()
}

func (history *stateHistory) traceFor(txHash []byte) (*dtos.TransactionTrace, error) {
	cached, found := history.traceCache.Get(txHash)
	if found {
		trace, ok := cached.(*dtos.TransactionTrace)
		if ok {
			return trace, nil
		}
	}

	history.mut.RLock()
	entry, found := history.entries[string(txHash)]
	history.mut.RUnlock()
	if !found {
		return nil, fmt.Errorf("%w for transaction %s", ErrTraceNotFound, hex.EncodeToString(txHash))
	}

	trace := deriveTrace(entry)
	history.traceCache.Put(txHash, trace, len(trace.Steps)*traceStepEstimatedSize)

	return trace, nil
}

func (history *stateHistory) reset() {
	history.mut.Lock()
	history.entries = make(map[string]*historyEntry)
	history.mut.Unlock()

	history.traceCache.Clear()
}

func deriveTrace(entry *historyEntry) *dtos.TransactionTrace {
	gasRemaining := entry.gasLimit - entry.gasUsed

	steps := make([]dtos.TraceStep, 0, len(entry.before)+2)
	steps = append(steps, dtos.TraceStep{
		Name:         "start",
		Address:      hex.EncodeToString(entry.sender),
		GasRemaining: entry.gasLimit,
	})

	for i := range entry.before {
		before := entry.before[i]
		after := entry.after[i]
		steps = append(steps, dtos.TraceStep{
			Name:          "account",
			Address:       hex.EncodeToString(before.address),
			BalanceBefore: before.balance.String(),
			BalanceAfter:  after.balance.String(),
			Nonce:         after.nonce,
			GasRemaining:  gasRemaining,
		})
	}

	steps = append(steps, dtos.TraceStep{
		Name:         "end",
		Address:      hex.EncodeToString(entry.receiver),
		GasRemaining: gasRemaining,
	})

	return &dtos.TransactionTrace{
		TxHash:   hex.EncodeToString(entry.txHash),
		Sender:   hex.EncodeToString(entry.sender),
		Receiver: hex.EncodeToString(entry.receiver),
		Function: entry.function,
		Value:    entry.value.String(),
		GasUsed:  entry.gasUsed,
		ReadOnly: entry.readOnly,
		Steps:    steps,
	}
}
