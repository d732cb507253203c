package gin

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-sandbox-go/api/errors"
	"github.com/multiversx/mx-chain-sandbox-go/api/groups"
	"github.com/multiversx/mx-chain-sandbox-go/api/shared"
	"github.com/multiversx/mx-chain-sandbox-go/simulation"
)

var log = logger.GetOrCreate("api/gin")

const shutdownTimeout = time.Second * 5

// ArgsNewWebServer holds the arguments needed to create a new instance of webServer
type ArgsNewWebServer struct {
	Facade        simulation.SimulationHandler
	ListenAddress string
	DebugMode     bool
}

type webServer struct {
	sync.Mutex
	facade        simulation.SimulationHandler
	listenAddress string
	debugMode     bool
	httpServer    *http.Server
	groups        map[string]shared.GroupHandler
}

// NewGinWebServerHandler returns a new instance of webServer
func NewGinWebServerHandler(args ArgsNewWebServer) (*webServer, error) {
	if check.IfNil(args.Facade) {
		return nil, errors.ErrNilFacadeHandler
	}
	if len(args.ListenAddress) == 0 {
		return nil, errors.ErrInvalidListenAddress
	}

	return &webServer{
		facade:        args.Facade,
		listenAddress: args.ListenAddress,
		debugMode:     args.DebugMode,
	}, nil
}

// StartHttpServer creates the http server, populates it with all the routes
// and starts serving on a dedicated goroutine
func (ws *webServer) StartHttpServer() error {
	ws.Lock()
	defer ws.Unlock()

	if !ws.debugMode {
		gin.DisableConsoleColor()
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	err := ws.createGroups()
	if err != nil {
		return err
	}

	ws.registerRoutes(engine)

	ws.httpServer = &http.Server{Addr: ws.listenAddress, Handler: engine}
	log.Debug("starting web server", "interface", ws.listenAddress)

	go func() {
		errServe := ws.httpServer.ListenAndServe()
		if errServe != nil && errServe != http.ErrServerClosed {
			log.Error("web server stopped", "error", errServe.Error())
		}
	}()

	return nil
}

func (ws *webServer) createGroups() error {
	groupsMap := make(map[string]shared.GroupHandler)

	simulationGroup, err := groups.NewSimulationGroup(ws.facade)
	if err != nil {
		return err
	}
	groupsMap["simulation"] = simulationGroup

	ws.groups = groupsMap

	return nil
}

func (ws *webServer) registerRoutes(ginRouter *gin.Engine) {
	for groupName, groupHandler := range ws.groups {
		log.Debug("registering gin API group", "group name", groupName)
		ginGroup := ginRouter.Group("/" + groupName)
		groupHandler.RegisterRoutes(ginGroup)
	}
}

// Close gracefully shuts down the http server
func (ws *webServer) Close() error {
	ws.Lock()
	server := ws.httpServer
	ws.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(ctx)
}

// IsInterfaceNil returns true if there is no value under the interface
func (ws *webServer) IsInterfaceNil() bool {
	return ws == nil
}
