package groups

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-sandbox-go/api/errors"
	"github.com/multiversx/mx-chain-sandbox-go/api/shared"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
)

const (
	setupStatePath    = "/state"
	minePath          = "/mine"
	getRecordPath     = "/record/:index"
	getTracePath      = "/record/:index/trace"
	currentRecordPath = "/current-record"
	emptyTracePath    = "/empty-trace"
	addressesPath     = "/addresses"
	newAddressPath    = "/address"
	apiCallPath       = "/call"
	statusPath        = "/status"
)

// simulationFacadeHandler defines the methods that can be used by the gin webserver
type simulationFacadeHandler interface {
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
	IsInterfaceNil() bool
}

type simulationGroup struct {
	facade simulationFacadeHandler
	*baseGroup
}

// NewSimulationGroup returns a new instance of simulationGroup
func NewSimulationGroup(facadeHandler interface{}) (*simulationGroup, error) {
	if facadeHandler == nil {
		return nil, errors.ErrNilFacadeHandler
	}

	facade, ok := facadeHandler.(simulationFacadeHandler)
	if !ok {
		return nil, fmt.Errorf("%w for simulation group", errors.ErrFacadeWrongTypeAssertion)
	}

	sg := &simulationGroup{
		facade:    facade,
		baseGroup: &baseGroup{},
	}

	sg.endpoints = []*shared.EndpointHandlerData{
		{Path: setupStatePath, Method: http.MethodPost, Handler: sg.setupState},
		{Path: minePath, Method: http.MethodPost, Handler: sg.mine},
		{Path: getRecordPath, Method: http.MethodGet, Handler: sg.getRecord},
		{Path: getTracePath, Method: http.MethodGet, Handler: sg.getTrace},
		{Path: currentRecordPath, Method: http.MethodGet, Handler: sg.getCurrentRecord},
		{Path: emptyTracePath, Method: http.MethodGet, Handler: sg.getEmptyTrace},
		{Path: addressesPath, Method: http.MethodGet, Handler: sg.getAddresses},
		{Path: newAddressPath, Method: http.MethodPost, Handler: sg.newAddress},
		{Path: apiCallPath, Method: http.MethodPost, Handler: sg.apiCall},
		{Path: statusPath, Method: http.MethodGet, Handler: sg.getStatus},
	}

	return sg, nil
}

// setupState starts a new simulation run from the posted state description.
// The run executes asynchronously; progress is observable through /status
// and the record endpoints.
func (sg *simulationGroup) setupState(c *gin.Context) {
	description := &dtos.StateDescription{}
	err := c.ShouldBindJSON(description)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrSetupState, errors.ErrInvalidJSONRequest)
		return
	}

	err = sg.facade.SetupState(description)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrSetupState, err)
		return
	}

	shared.RespondWithSuccess(c, gin.H{"started": true})
}

func (sg *simulationGroup) mine(c *gin.Context) {
	err := sg.facade.Mine()
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrMine, err)
		return
	}

	shared.RespondWithSuccess(c, gin.H{"mined": true})
}

func (sg *simulationGroup) getRecord(c *gin.Context) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrGetRecord, errors.ErrBadUrlParams)
		return
	}

	record, err := sg.facade.Record(index)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrGetRecord, err)
		return
	}

	shared.RespondWithSuccess(c, gin.H{"record": record})
}

func (sg *simulationGroup) getTrace(c *gin.Context) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrGetTrace, errors.ErrBadUrlParams)
		return
	}

	trace, err := sg.facade.DebugRecord(index)
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrGetTrace, err)
		return
	}

	shared.RespondWithSuccess(c, gin.H{"trace": trace})
}

func (sg *simulationGroup) getCurrentRecord(c *gin.Context) {
	shared.RespondWithSuccess(c, gin.H{"record": sg.facade.CurrentRecord()})
}

func (sg *simulationGroup) getEmptyTrace(c *gin.Context) {
	shared.RespondWithSuccess(c, gin.H{"trace": sg.facade.EmptyRecord()})
}

func (sg *simulationGroup) getAddresses(c *gin.Context) {
	shared.RespondWithSuccess(c, gin.H{"addresses": sg.facade.ContractAddresses()})
}

func (sg *simulationGroup) newAddress(c *gin.Context) {
	address, err := sg.facade.NewAddress()
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrNewAddress, err)
		return
	}

	shared.RespondWithSuccess(c, gin.H{"address": address})
}

// apiCall forwards a raw RPC envelope to the simulated ledger and relays the
// raw response. Method-level failures travel inside the relayed envelope.
func (sg *simulationGroup) apiCall(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		shared.RespondWithValidationError(c, errors.ErrApiCall, errors.ErrInvalidJSONRequest)
		return
	}

	response, err := sg.facade.ApiCall(string(body))
	if err != nil {
		shared.RespondWithValidationError(c, errors.ErrApiCall, err)
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(response))
}

func (sg *simulationGroup) getStatus(c *gin.Context) {
	shared.RespondWithSuccess(c, gin.H{
		"running": sg.facade.IsRunning(),
		"mining":  sg.facade.IsMining(),
	})
}

// IsInterfaceNil returns true if there is no value under the interface
func (sg *simulationGroup) IsInterfaceNil() bool {
	return sg == nil
}
