package domain

const (
	// ConfigFileName is the configuration file looked up in the working directory.
	ConfigFileName = "margin.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MARGIN_"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the resolved configuration of margin.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
	Log       LogConfig
}

// ServerConfig configures the annotation API and the page proxy.
type ServerConfig struct {
	Addr        string
	APIEndpoint string
	Inject      bool
	Upstream    string
	StaticDir   string
}

// StorageConfig selects and configures the annotation repository.
type StorageConfig struct {
	Driver    string
	Path      string
	RedisAddr string
	RedisDB   int
}

// TelemetryConfig configures trace export. An empty endpoint disables export.
type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// LogConfig configures the logger.
type LogConfig struct {
	JSON bool
}

// DefaultConfig returns the configuration used when no file and no overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			APIEndpoint: DefaultEndpoint,
			Inject:      true,
		},
		Storage: StorageConfig{
			Driver:    DriverMemory,
			Path:      "margin.db",
			RedisAddr: "localhost:6379",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "margin",
		},
	}
}
