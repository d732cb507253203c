package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/multiversx/mx-chain-core-go/marshal"
	logger "github.com/multiversx/mx-chain-logger-go"
	ginServer "github.com/multiversx/mx-chain-sandbox-go/api/gin"
	"github.com/multiversx/mx-chain-sandbox-go/config"
	"github.com/multiversx/mx-chain-sandbox-go/engine"
	"github.com/multiversx/mx-chain-sandbox-go/simulation"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/fetcher"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/notifier"
	"github.com/multiversx/mx-chain-sandbox-go/simulation/records"
	"github.com/urfave/cli"
)

var sandboxHelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}
   {{if len .Authors}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}{{if .Copyright }}
VERSION:
   {{.Version}}
   {{end}}
`

var (
	configurationFile = cli.StringFlag{
		Name:  "config",
		Usage: "The main configuration file to load",
		Value: "./config/config.toml",
	}
	restApiInterface = cli.StringFlag{
		Name:  "rest-api-interface",
		Usage: "The interface address and port to which the REST API will attempt to bind. If empty, the one from the configuration file is used",
		Value: "",
	}
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "The logger levels and patterns. If empty, the one from the configuration file is used",
		Value: "",
	}
)

var log = logger.GetOrCreate("main")

func main() {
	app := cli.NewApp()
	cli.AppHelpTemplate = sandboxHelpTemplate
	app.Name = "Contract Sandbox CLI App"
	app.Usage = "Runs a local, deterministic contract simulation environment with a REST API"
	app.Flags = []cli.Flag{configurationFile, restApiInterface, logLevel}
	app.Version = "v1.0.0"
	app.Authors = []cli.Author{
		{
			Name:  "The MultiversX Team",
			Email: "contact@multiversx.com",
		},
	}

	app.Action = startSandbox

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startSandbox(ctx *cli.Context) error {
	cfg := &config.Config{}
	configPath := ctx.GlobalString(configurationFile.Name)
	err := config.LoadTomlFile(cfg, configPath)
	if err != nil {
		return fmt.Errorf("cannot load configuration file %s: %w", configPath, err)
	}
	log.Debug("loaded configuration", "file", configPath)

	applyFlagOverrides(ctx, cfg)

	err = logger.SetLogLevel(cfg.GeneralSettings.LogLevel)
	if err != nil {
		return err
	}

	controller, err := createController(cfg)
	if err != nil {
		return err
	}

	webServer, err := ginServer.NewGinWebServerHandler(ginServer.ArgsNewWebServer{
		Facade:        controller,
		ListenAddress: cfg.WebServer.ListenAddress,
		DebugMode:     cfg.WebServer.DebugMode,
	})
	if err != nil {
		return err
	}

	err = webServer.StartHttpServer()
	if err != nil {
		return err
	}

	log.Info("sandbox is up", "rest api interface", cfg.WebServer.ListenAddress)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Info("terminating at user's signal...")

	err = webServer.Close()
	log.LogIfError(err)

	return controller.Close()
}

func applyFlagOverrides(ctx *cli.Context, cfg *config.Config) {
	apiInterface := ctx.GlobalString(restApiInterface.Name)
	if len(apiInterface) != 0 {
		cfg.WebServer.ListenAddress = apiInterface
	}

	level := ctx.GlobalString(logLevel.Name)
	if len(level) != 0 {
		cfg.GeneralSettings.LogLevel = level
	}
}

func createController(cfg *config.Config) (simulation.SimulationHandler, error) {
	engineFactory, err := engine.NewEngineFactory(engine.ArgsEngineFactory{
		TraceCacheCapacity: cfg.Engine.TraceCacheCapacity,
	})
	if err != nil {
		return nil, err
	}

	sourceFetcher, err := fetcher.NewSourceFetcher(fetcher.ArgsSourceFetcher{
		RequestTimeout: time.Duration(cfg.StdContracts.RequestTimeoutInSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	eventsNotifier := notifier.NewSimulationNotifier()
	eventsNotifier.RegisterHandler(notifier.MakeHandler(notifier.EventFuncs{
		OnRunStarted:   func() { log.Info("simulation run started") },
		OnRunCompleted: func() { log.Info("simulation run completed") },
		OnRunFailed:    func(message string) { log.Warn("simulation run failed", "reason", message) },
		OnNewRecord: func(record *records.ExecutionRecord) {
			log.Debug("new execution record",
				"index", record.RecordIndex,
				"position", record.PositionLabel,
				"contract", record.Contract,
				"function", record.Function,
			)
		},
	}))

	return simulation.NewSimulationController(simulation.ArgsSimulationController{
		EngineFactory:  engineFactory,
		SourceFetcher:  sourceFetcher,
		EventsNotifier: eventsNotifier,
		Marshalizer:    &marshal.JsonMarshalizer{},
	})
}
