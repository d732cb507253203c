package dtos

// TraceStep is one re-derived machine step of an executed transaction
type TraceStep struct {
	Name          string `json:"name"`
	Address       string `json:"address,omitempty"`
	BalanceBefore string `json:"balanceBefore,omitempty"`
	BalanceAfter  string `json:"balanceAfter,omitempty"`
	Nonce         uint64 `json:"nonce,omitempty"`
	GasRemaining  uint64 `json:"gasRemaining"`
}

// TransactionTrace is the step-level view of one historical transaction,
// re-derived from the engine's retained state history for the debugger
type TransactionTrace struct {
	TxHash   string      `json:"txHash,omitempty"`
	Sender   string      `json:"sender,omitempty"`
	Receiver string      `json:"receiver,omitempty"`
	Function string      `json:"function,omitempty"`
	Value    string      `json:"value,omitempty"`
	GasUsed  uint64      `json:"gasUsed"`
	ReadOnly bool        `json:"readOnly"`
	Steps    []TraceStep `json:"steps"`
}

// NewEmptyTrace returns a blank trace, used when composing a new ad-hoc
// transaction with no prior execution behind it
func NewEmptyTrace() *TransactionTrace {
	return &TransactionTrace{
		Steps: make([]TraceStep, 0),
	}
}
