package db

import (
	"path/filepath"

	"github.com/fiscalio/facturador/internal/config"
)

// Config is the database module's own view of the connection settings.
type Config struct {
	Type            string
	Path            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// NewConfig maps the application configuration into the database settings.
// The sqlite file lives inside the per-install data directory.
func NewConfig(cfg config.Config) Config {
	return Config{
		Type:            cfg.DBType,
		Path:            filepath.Join(cfg.DataDir, "facturador.db"),
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		SSLMode:         cfg.DBSSLMode,
		MaxIdleConn:     cfg.DBMaxIdleConn,
		MaxOpenConn:     cfg.DBMaxOpenConn,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}
}
