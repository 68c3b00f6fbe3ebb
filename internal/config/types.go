package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigServer настройки сервера
type ConfigServer struct {
	UseReflection           bool `mapstructure:"use_reflection"`
	PortGRPC                int  `mapstructure:"port_grpc"`
	PortHTTP                int  `mapstructure:"port_http"`
	GracefulShutdownTimeout int  `mapstructure:"graceful_shutdown_timeout"`
	HeartbeatInterval       int  `mapstructure:"heartbeat_interval"` // секунды между heartbeat в стриме событий
}

// ConfigGateway настройки HTTP Gateway
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigSwagger настройки Swagger UI
type ConfigSwagger struct {
	Enabled bool `mapstructure:"enabled"`
}

// ConfigAuth настройки авторизации
type ConfigAuth struct {
	Token string `mapstructure:"token"` // Пустой токен отключает проверку
}

// ConfigStorage настройки key/value хранилища
type ConfigStorage struct {
	Driver     string `mapstructure:"driver"` // memory | bolt | sqlite
	Path       string `mapstructure:"path"`
	Bucket     string `mapstructure:"bucket"`
	QuotaBytes int    `mapstructure:"quota_bytes"`
}

// ConfigNotes настройки работы с заметками
type ConfigNotes struct {
	Locale string `mapstructure:"locale"` // BCP 47 тег для сортировки имен
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	Swagger *ConfigSwagger `mapstructure:"swagger"`
	Auth    *ConfigAuth    `mapstructure:"auth"`
	Storage *ConfigStorage `mapstructure:"storage"`
	Notes   *ConfigNotes   `mapstructure:"notes"`
}
