package groups_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apiErrors "github.com/multiversx/mx-chain-sandbox-go/api/errors"
	"github.com/multiversx/mx-chain-sandbox-go/api/groups"
	"github.com/multiversx/mx-chain-sandbox-go/api/shared"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/dtos"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
	"github.com/multiversx/mx-chain-sandbox-go/testscommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startWebServer(group shared.GroupHandler) *gin.Engine {
	ws := gin.New()
	routes := ws.Group("/simulation")
	group.RegisterRoutes(routes)

	return ws
}

func loadResponse(rsp io.Reader, destination interface{}) error {
	return json.NewDecoder(rsp).Decode(destination)
}

func serveRequest(group shared.GroupHandler, method string, path string, body io.Reader) *httptest.ResponseRecorder {
	ws := startWebServer(group)
	req := httptest.NewRequest(method, path, body)
	resp := httptest.NewRecorder()
	ws.ServeHTTP(resp, req)

	return resp
}

func TestNewSimulationGroup(t *testing.T) {
	t.Parallel()

	t.Run("nil facade should error", func(t *testing.T) {
		t.Parallel()

		group, err := groups.NewSimulationGroup(nil)
		assert.Nil(t, group)
		assert.Equal(t, apiErrors.ErrNilFacadeHandler, err)
	})
	t.Run("wrong facade type should error", func(t *testing.T) {
		t.Parallel()

		group, err := groups.NewSimulationGroup("not a facade")
		assert.Nil(t, group)
		assert.True(t, errors.Is(err, apiErrors.ErrFacadeWrongTypeAssertion))
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		group, err := groups.NewSimulationGroup(&testscommon.FacadeStub{})
		assert.NoError(t, err)
		assert.False(t, group.IsInterfaceNil())
	})
}

func TestSimulationGroup_setupState(t *testing.T) {
	t.Parallel()

	t.Run("malformed body should return bad request", func(t *testing.T) {
		t.Parallel()

		group, _ := groups.NewSimulationGroup(&testscommon.FacadeStub{})
		resp := serveRequest(group, http.MethodPost, "/simulation/state", bytes.NewBufferString("not json"))

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
	t.Run("facade rejection should return bad request with the cause", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("expected error")
		facade := &testscommon.FacadeStub{
			SetupStateCalled: func(description *dtos.StateDescription) error {
				return expectedErr
			},
		}
		group, _ := groups.NewSimulationGroup(facade)

		resp := serveRequest(group, http.MethodPost, "/simulation/state", bytes.NewBufferString("{}"))
		require.Equal(t, http.StatusBadRequest, resp.Code)

		response := shared.GenericAPIResponse{}
		require.NoError(t, loadResponse(resp.Body, &response))
		assert.Contains(t, response.Error, expectedErr.Error())
		assert.Equal(t, shared.ReturnCodeRequestError, response.Code)
	})
	t.Run("should pass the description to the facade", func(t *testing.T) {
		t.Parallel()

		received := &dtos.StateDescription{}
		facade := &testscommon.FacadeStub{
			SetupStateCalled: func(description *dtos.StateDescription) error {
				received = description
				return nil
			},
		}
		group, _ := groups.NewSimulationGroup(facade)

		body := `{"accounts":[{"identity":"alice","balance":"1000"}],"transactions":[{"contractId":"token","code":"0xff","sender":"alice","gasLimit":100,"gasPrice":1}]}`
		resp := serveRequest(group, http.MethodPost, "/simulation/state", bytes.NewBufferString(body))
		require.Equal(t, http.StatusOK, resp.Code)

		require.Len(t, received.Accounts, 1)
		assert.Equal(t, "alice", received.Accounts[0].Identity)
		require.Len(t, received.Transactions, 1)
		assert.Equal(t, "token", received.Transactions[0].ContractID)
	})
}

func TestSimulationGroup_mine(t *testing.T) {
	t.Parallel()

	t.Run("busy controller should return bad request", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("expected error")
		facade := &testscommon.FacadeStub{
			MineCalled: func() error { return expectedErr },
		}
		group, _ := groups.NewSimulationGroup(facade)

		resp := serveRequest(group, http.MethodPost, "/simulation/mine", nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		wasCalled := false
		facade := &testscommon.FacadeStub{
			MineCalled: func() error {
				wasCalled = true
				return nil
			},
		}
		group, _ := groups.NewSimulationGroup(facade)

		resp := serveRequest(group, http.MethodPost, "/simulation/mine", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.True(t, wasCalled)
	})
}

func TestSimulationGroup_getRecord(t *testing.T) {
	t.Parallel()

	t.Run("non numeric index should return bad request", func(t *testing.T) {
		t.Parallel()

		group, _ := groups.NewSimulationGroup(&testscommon.FacadeStub{})
		resp := serveRequest(group, http.MethodGet, "/simulation/record/abc", nil)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
	t.Run("should return the record", func(t *testing.T) {
		t.Parallel()

		facade := &testscommon.FacadeStub{
			RecordCalled: func(index uint64) (*records.ExecutionRecord, error) {
				return &records.ExecutionRecord{RecordIndex: index, Contract: "token"}, nil
			},
		}
		group, _ := groups.NewSimulationGroup(facade)

		resp := serveRequest(group, http.MethodGet, "/simulation/record/7", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		response := shared.GenericAPIResponse{}
		require.NoError(t, loadResponse(resp.Body, &response))
		assert.Equal(t, shared.ReturnCodeSuccess, response.Code)
	})
}

func TestSimulationGroup_getTrace(t *testing.T) {
	t.Parallel()

	requestedIndex := uint64(0)
	facade := &testscommon.FacadeStub{
		DebugRecordCalled: func(index uint64) (*dtos.TransactionTrace, error) {
			requestedIndex = index
			return &dtos.TransactionTrace{Function: "transfer"}, nil
		},
	}
	group, _ := groups.NewSimulationGroup(facade)

	resp := serveRequest(group, http.MethodGet, "/simulation/record/3/trace", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, uint64(3), requestedIndex)
}

func TestSimulationGroup_getAddresses(t *testing.T) {
	t.Parallel()

	facade := &testscommon.FacadeStub{
		ContractAddressesCalled: func() map[string]string {
			return map[string]string{"token": "00ff"}
		},
	}
	group, _ := groups.NewSimulationGroup(facade)

	resp := serveRequest(group, http.MethodGet, "/simulation/addresses", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	bodyBytes, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(bodyBytes), `"token":"00ff"`)
}

func TestSimulationGroup_newAddress(t *testing.T) {
	t.Parallel()

	facade := &testscommon.FacadeStub{
		NewAddressCalled: func() (string, error) {
			return "aabb", nil
		},
	}
	group, _ := groups.NewSimulationGroup(facade)

	resp := serveRequest(group, http.MethodPost, "/simulation/address", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	bodyBytes, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(bodyBytes), `"aabb"`)
}

func TestSimulationGroup_apiCall(t *testing.T) {
	t.Parallel()

	t.Run("empty body should return bad request", func(t *testing.T) {
		t.Parallel()

		group, _ := groups.NewSimulationGroup(&testscommon.FacadeStub{})
		resp := serveRequest(group, http.MethodPost, "/simulation/call", nil)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
	t.Run("relays the raw rpc response", func(t *testing.T) {
		t.Parallel()

		facade := &testscommon.FacadeStub{
			ApiCallCalled: func(request string) (string, error) {
				return `{"result":"ok"}`, nil
			},
		}
		group, _ := groups.NewSimulationGroup(facade)

		resp := serveRequest(group, http.MethodPost, "/simulation/call",
			bytes.NewBufferString(`{"method":"sandbox_newAccount"}`))
		require.Equal(t, http.StatusOK, resp.Code)

		bodyBytes, _ := io.ReadAll(resp.Body)
		assert.Equal(t, `{"result":"ok"}`, string(bodyBytes))
	})
}

func TestSimulationGroup_getStatus(t *testing.T) {
	t.Parallel()

	facade := &testscommon.FacadeStub{
		IsRunningCalled: func() bool { return true },
	}
	group, _ := groups.NewSimulationGroup(facade)

	resp := serveRequest(group, http.MethodGet, "/simulation/status", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	bodyBytes, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(bodyBytes), `"running":true`)
	assert.Contains(t, string(bodyBytes), `"mining":false`)
}
