package simulation

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
)

const (
	methodSendTransaction = "sandbox_sendTransaction"
	methodGetBalance      = "sandbox_getBalance"
	methodNewAccount      = "sandbox_newAccount"
)

type rpcRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type getBalanceParams struct {
	Address string `json:"address"`
}

type sendTransactionResult struct {
	RecordIndex   uint64 `json:"recordIndex"`
	PositionLabel string `json:"positionLabel"`
	Address       string `json:"address"`
	Returned      string `json:"returned"`
	TxHash        string `json:"txHash"`
}

// ApiCall executes one JSON-encoded RPC request against the simulated ledger
// and returns the JSON-encoded response. Method-level failures are reported
// inside the response envelope; the returned error only covers requests that
// could not be decoded or responses that could not be encoded.
func (sc *simulationController) ApiCall(request string) (string, error) {
	rpc := &rpcRequest{}
	err := sc.marshalizer.Unmarshal(rpc, []byte(request))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRPCRequest, err)
	}
	if len(rpc.Method) == 0 {
		return "", fmt.Errorf("%w: missing method", ErrInvalidRPCRequest)
	}

	response := sc.dispatchRPC(rpc)

	encoded, err := sc.marshalizer.Marshal(response)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

func (sc *simulationController) dispatchRPC(rpc *rpcRequest) *rpcResponse {
	var result interface{}
	var err error

	switch rpc.Method {
	case methodSendTransaction:
		result, err = sc.rpcSendTransaction(rpc.Params)
	case methodGetBalance:
		result, err = sc.rpcGetBalance(rpc.Params)
	case methodNewAccount:
		result, err = sc.NewAddress()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownRPCMethod, rpc.Method)
	}

	if err != nil {
		return &rpcResponse{Error: err.Error()}
	}

	return &rpcResponse{Result: result}
}

// rpcSendTransaction executes a single ad-hoc operation against the retained
// ledger state, outside of any declarative sequence. It is serialized against
// SetupState through the same running flag.
func (sc *simulationController) rpcSendTransaction(params json.RawMessage) (interface{}, error) {
	settings := &dtos.TransactionSettings{}
	err := sc.marshalizer.Unmarshal(settings, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRPCRequest, err)
	}

	if sc.flagRunning.SetReturningPrevious() {
		return nil, ErrSimulationRunning
	}
	defer sc.flagRunning.Reset()

	sc.mutExecution.Lock()
	defer sc.mutExecution.Unlock()

	senderAddress, err := sc.resolveSender(settings.Sender)
	if err != nil {
		return nil, err
	}

	knownSenders := map[string]struct{}{settings.Sender: {}}
	op, err := sc.sequencer.buildOperation(sc.store.Len()+1, *settings, knownSenders)
	if err != nil {
		return nil, err
	}

	err = sc.executeOperation(op, senderAddress)
	if err != nil {
		return nil, err
	}

	record := sc.currentRecord

	return &sendTransactionResult{
		RecordIndex:   record.RecordIndex,
		PositionLabel: record.PositionLabel,
		Address:       hex.EncodeToString(record.Address),
		Returned:      hex.EncodeToString(record.Returned),
		TxHash:        hex.EncodeToString(record.TxHash),
	}, nil
}

func (sc *simulationController) rpcGetBalance(params json.RawMessage) (interface{}, error) {
	decoded := &getBalanceParams{}
	err := sc.marshalizer.Unmarshal(decoded, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRPCRequest, err)
	}

	if sc.flagRunning.IsSet() {
		return nil, ErrSimulationRunning
	}

	address, err := hex.DecodeString(decoded.Address)
	if err != nil || len(address) == 0 {
		return nil, fmt.Errorf("%w: malformed address %q", ErrInvalidRPCRequest, decoded.Address)
	}

	sc.mutExecution.RLock()
	defer sc.mutExecution.RUnlock()

	balance, err := sc.engine.AccountBalance(address)
	if err != nil {
		return nil, err
	}

	return balance.String(), nil
}

// resolveSender accepts a funded identity or a raw hex-encoded address,
// must be called under mutExecution
func (sc *simulationController) resolveSender(sender string) ([]byte, error) {
	address, found := sc.accountsByIdentity[sender]
	if found {
		return address, nil
	}

	decoded, err := hex.DecodeString(sender)
	if err != nil || len(decoded) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSenderIdentity, sender)
	}

	return decoded, nil
}
