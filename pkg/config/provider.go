package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetServerConfig() (*ServerData, error)
	GetStorageConfig() (*StorageData, error)
	GetEngineConfig() (*EngineData, error)

	IsReadOnly() bool
	Close() error
}

const (
	DefaultListenAddr = "0.0.0.0"
	DefaultPort       = 8080
	DefaultZone       = "UTC"
	DefaultCalendar   = "gregorian"
)

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server  ServerData  `json:"server"`
	Storage StorageData `json:"storage,omitempty"`
	Engine  EngineData  `json:"engine"`
	Log     LogData     `json:"log"`
}

// ServerData configures the HTTP conversion service.
type ServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
}

// TLS reports whether both a certificate and key are configured.
func (s ServerData) TLS() bool {
	return s.Cert != "" && s.Key != ""
}

// StorageData configures the moment store. An empty SQLitePath disables it.
type StorageData struct {
	SQLitePath string `json:"sqlite_path,omitempty"`
}

// EngineData holds defaults applied to conversion requests that omit them.
type EngineData struct {
	DefaultZone     string `json:"default_zone,omitempty"`
	DefaultCalendar string `json:"default_calendar,omitempty"`
}

// LogData configures logging.
type LogData struct {
	Debug      bool   `json:"debug,omitempty"`
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
}

// applyDefaults fills in fields left empty by the source.
func (c *ConfigData) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Engine.DefaultZone == "" {
		c.Engine.DefaultZone = DefaultZone
	}
	if c.Engine.DefaultCalendar == "" {
		c.Engine.DefaultCalendar = DefaultCalendar
	}
}
