package config

import (
	"log/slog"
	"strings"
)

// Значения по умолчанию для незаполненных секций
const (
	DefaultPortGRPC          = 50051
	DefaultPortHTTP          = 8080
	DefaultShutdownTimeout   = 10
	DefaultHeartbeatInterval = 30
	DefaultStorageDriver     = "memory"
	DefaultLocale            = "und"
)

// ApplyDefaults заполняет отсутствующие секции и нулевые значения
func (c *Config) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{}
	}
	if c.Swagger == nil {
		c.Swagger = &ConfigSwagger{}
	}
	if c.Auth == nil {
		c.Auth = &ConfigAuth{}
	}
	if c.Storage == nil {
		c.Storage = &ConfigStorage{}
	}
	if c.Notes == nil {
		c.Notes = &ConfigNotes{}
	}

	if c.Server.PortGRPC == 0 {
		c.Server.PortGRPC = DefaultPortGRPC
	}
	if c.Server.PortHTTP == 0 {
		c.Server.PortHTTP = DefaultPortHTTP
	}
	if c.Server.GracefulShutdownTimeout == 0 {
		c.Server.GracefulShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.HeartbeatInterval == 0 {
		c.Server.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DefaultStorageDriver
	}
	if c.Notes.Locale == "" {
		c.Notes.Locale = DefaultLocale
	}
}

// SlogLevel переводит строковый уровень логирования в slog.Level.
// Неизвестные значения трактуются как info.
func (c *ConfigLogger) SlogLevel() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
