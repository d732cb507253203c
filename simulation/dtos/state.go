package dtos

// AccountState declares a sender identity and the balance it starts the run with
type AccountState struct {
	Identity string `json:"identity"`
	Balance  string `json:"balance"`
}

// StdContractSource points to an externally hosted standard contract
type StdContractSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ParameterBinding holds one resolved-before-execution parameter of a transaction.
// Exactly one of Value (hex literal) or AddressOf (name of an already deployed
// contract) must be set.
type ParameterBinding struct {
	Name      string `json:"name"`
	Value     string `json:"value,omitempty"`
	AddressOf string `json:"addressOf,omitempty"`
}

// TransactionSettings describes one deployment or call requested by the user.
// An empty FunctionID marks a deployment. A deployment carries either the
// hex-encoded Code of a locally authored contract or a StdContract source,
// never both.
type TransactionSettings struct {
	ContractID  string             `json:"contractId"`
	FunctionID  string             `json:"functionId,omitempty"`
	Value       string             `json:"value,omitempty"`
	GasLimit    uint64             `json:"gasLimit"`
	GasPrice    uint64             `json:"gasPrice"`
	Parameters  []ParameterBinding `json:"parameters,omitempty"`
	Sender      string             `json:"sender"`
	Code        string             `json:"code,omitempty"`
	StdContract *StdContractSource `json:"stdContract,omitempty"`
	ReadOnly    bool               `json:"readOnly,omitempty"`
}

// StateDescription is the declarative input of a simulation run: the accounts
// to fund and the ordered transaction sequence to execute against them
type StateDescription struct {
	Accounts     []AccountState        `json:"accounts"`
	Transactions []TransactionSettings `json:"transactions"`
}
