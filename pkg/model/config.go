package model

// Log holds the log configuration
type Log struct {
	Level      string `yaml:"level"`
	FolderPath string `yaml:"folder_path"`
}

// OTEL holds the opentelemetry configuration
type OTEL struct {
	Addr    string `yaml:"addr" validate:"required"`
	Type    string `yaml:"type" validate:"required"`
	Timeout int64  `yaml:"timeout" default:"10"`
}

// Common holds the common configuration
type Common struct {
	Production bool `yaml:"production"`
	Log        Log  `yaml:"log"`
	Tracing    OTEL `yaml:"tracing" validate:"required"`
}

// APIServer holds the api server configuration
type APIServer struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Database holds the credential database configuration
type Database struct {
	// Layout selects the registered parser plug-in.
	Layout string `yaml:"layout" default:"grouped" validate:"oneof=flat grouped"`
}

// Matcher holds the matcher service configuration
type Matcher struct {
	APIServer APIServer `yaml:"api_server" validate:"required"`
	Database  Database  `yaml:"database"`

	// Debug enables diagnostic entries on the host surface. Failures are
	// silent otherwise.
	Debug bool `yaml:"debug"`
}

// Cfg is the main configuration structure for this application
type Cfg struct {
	Common  Common  `yaml:"common"`
	Matcher Matcher `yaml:"matcher" validate:"required"`
}
