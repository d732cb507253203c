package config

// GeneralSettingsConfig holds the general settings of the sandbox
type GeneralSettingsConfig struct {
	LogLevel string
}

// EngineConfig holds the execution engine settings
type EngineConfig struct {
	TraceCacheCapacity int
}

// StdContractsConfig holds the standard contract fetcher settings
type StdContractsConfig struct {
	RequestTimeoutInSeconds int
}

// WebServerConfig holds the rest api settings
type WebServerConfig struct {
	ListenAddress string
	DebugMode     bool
}

// Config holds the whole sandbox configuration
type Config struct {
	GeneralSettings GeneralSettingsConfig
	Engine          EngineConfig
	StdContracts    StdContractsConfig
	WebServer       WebServerConfig
}
