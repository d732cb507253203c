package records

import "math/big"

// RecordType distinguishes ordinary transaction records from synthetic
// block-boundary markers
type RecordType string

const (
	// TransactionRecord marks a record produced by an executed operation
	TransactionRecord RecordType = "transaction"
	// BlockRecord marks a synthetic block-boundary record (simulated mining)
	BlockRecord RecordType = "block"
)

// ExecutionRecord is the immutable result of one executed step. It is created
// exactly once, when a step executes or when mining is simulated, and is never
// mutated afterwards. The store owns it; the debugger only references it.
type ExecutionRecord struct {
	RecordIndex   uint64     `json:"recordIndex"`
	PositionLabel string     `json:"positionLabel"`
	Contract      string     `json:"contract,omitempty"`
	Function      string     `json:"function,omitempty"`
	Value         *big.Int   `json:"value,omitempty"`
	Address       []byte     `json:"address,omitempty"`
	Returned      []byte     `json:"returned,omitempty"`
	TxHash        []byte     `json:"txHash,omitempty"`
	IsCall        bool       `json:"isCall"`
	Type          RecordType `json:"type"`
}
