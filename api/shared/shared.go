package shared

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReturnCode is the machine-readable status of an API response
type ReturnCode string

const (
	// ReturnCodeSuccess marks a fulfilled request
	ReturnCodeSuccess ReturnCode = "successful"
	// ReturnCodeRequestError marks a request rejected before execution
	ReturnCodeRequestError ReturnCode = "bad_request"
	// ReturnCodeInternalError marks a request that failed during execution
	ReturnCodeInternalError ReturnCode = "internal_issue"
)

// GenericAPIResponse is the uniform envelope of every API response
type GenericAPIResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
	Code  ReturnCode  `json:"code"`
}

// EndpointHandlerData holds the definition of one route of a group
type EndpointHandlerData struct {
	Path    string
	Method  string
	Handler gin.HandlerFunc
}

// GroupHandler defines the actions of an api group
type GroupHandler interface {
	RegisterRoutes(ws *gin.RouterGroup)
	IsInterfaceNil() bool
}

// RespondWithSuccess writes the data inside the uniform envelope
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, GenericAPIResponse{
		Data:  data,
		Error: "",
		Code:  ReturnCodeSuccess,
	})
}

// RespondWithValidationError rejects a request that failed validation
func RespondWithValidationError(c *gin.Context, err error, innerErr error) {
	respondWith(c, http.StatusBadRequest, fmt.Errorf("%w: %v", err, innerErr), ReturnCodeRequestError)
}

// RespondWithInternalError reports a request that failed during execution
func RespondWithInternalError(c *gin.Context, err error, innerErr error) {
	respondWith(c, http.StatusInternalServerError, fmt.Errorf("%w: %v", err, innerErr), ReturnCodeInternalError)
}

func respondWith(c *gin.Context, status int, err error, code ReturnCode) {
	c.JSON(status, GenericAPIResponse{
		Data:  nil,
		Error: err.Error(),
		Code:  code,
	})
}
