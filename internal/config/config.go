package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides the loaded configuration to the fx graph.
var Module = fx.Provide(Load)

const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string
	LogLevel   string
	ListenAddr string

	// DataDir is the per-install application data directory. The sqlite
	// database and rendered documents live under it.
	DataDir string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	AFIP AFIPConfig
}

// AFIPConfig carries the tax-authority credentials and environment selection.
// Certificate provisioning itself is out of scope; paths are resolved here and
// handed to the gateway per call.
type AFIPConfig struct {
	Environment     string
	CUIT            string
	CertificatePath string
	PrivateKeyPath  string
	BridgeURL       string
	TimeoutSeconds  int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getenv("FACTURADOR_DATA_DIR", defaultDataDir())

	cfg := Config{
		AppName:    getenv("APP_SERVICE", "facturador"),
		AppVersion: getenv("APP_VERSION", "0.1.0"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		ListenAddr: getenv("LISTEN_ADDR", "127.0.0.1:4600"),
		DataDir:    dataDir,

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "facturador"),
		DBUser:            getenv("DATABASE_USER", "facturador"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 5),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 600),

		AFIP: AFIPConfig{
			Environment:     normalizeEnvironment(getenv("AFIP_ENVIRONMENT", EnvSandbox)),
			CUIT:            strings.TrimSpace(getenv("AFIP_CUIT", "")),
			CertificatePath: strings.TrimSpace(getenv("AFIP_CERTIFICATE", filepath.Join(dataDir, "afip", "cert.pem"))),
			PrivateKeyPath:  strings.TrimSpace(getenv("AFIP_PRIVATE_KEY", filepath.Join(dataDir, "afip", "key.pem"))),
			BridgeURL:       getenv("AFIP_BRIDGE_URL", "http://127.0.0.1:4610"),
			TimeoutSeconds:  getenvInt("AFIP_TIMEOUT_SECONDS", 30),
		},
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.AFIP.Environment == EnvProduction
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "facturador")
	}
	return ".facturador"
}

func normalizeEnvironment(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case EnvProduction:
		return EnvProduction
	default:
		return EnvSandbox
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
