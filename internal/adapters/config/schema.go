package config

// File represents the structure of margin.yaml. Absent keys keep their defaults.
type File struct {
	Server    ServerSection    `yaml:"server"`
	Storage   StorageSection   `yaml:"storage"`
	Telemetry TelemetrySection `yaml:"telemetry"`
	Log       LogSection       `yaml:"log"`
}

// ServerSection configures the API server and page proxy.
type ServerSection struct {
	Addr        string `yaml:"addr"`
	APIEndpoint string `yaml:"api_endpoint"`
	Inject      *bool  `yaml:"inject"`
	Upstream    string `yaml:"upstream"`
	StaticDir   string `yaml:"static_dir"`
}

// StorageSection selects the repository driver.
type StorageSection struct {
	Driver    string `yaml:"driver"`
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   *int   `yaml:"redis_db"`
}

// TelemetrySection configures trace export.
type TelemetrySection struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// LogSection configures the logger.
type LogSection struct {
	JSON *bool `yaml:"json"`
}

// envOverrides lists the MARGIN_* variables. Unset variables leave fields nil.
type envOverrides struct {
	Addr         *string `env:"ADDR"`
	APIEndpoint  *string `env:"API_ENDPOINT"`
	Inject       *bool   `env:"INJECT"`
	Upstream     *string `env:"UPSTREAM"`
	StaticDir    *string `env:"STATIC_DIR"`
	Driver       *string `env:"STORAGE_DRIVER"`
	Path         *string `env:"STORAGE_PATH"`
	RedisAddr    *string `env:"REDIS_ADDR"`
	RedisDB      *int    `env:"REDIS_DB"`
	OTLPEndpoint *string `env:"OTLP_ENDPOINT"`
	ServiceName  *string `env:"SERVICE_NAME"`
	LogJSON      *bool   `env:"LOG_JSON"`
}
