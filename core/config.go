package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage engines
const (
	EngineMemory   = "memory"
	EngineFile     = "file"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		SecretKey    string
		RollbarToken string
		Storage      StorageConfig
		Server       ServerConfig
		Session      SessionConfig
	}

	StorageConfig struct {
		Engine string // memory | file | sqlite | postgres
		Path   string // directory (file) or database file (sqlite)
		DSN    string // postgres connection string
	}

	ServerConfig struct {
		Host            string
		Address         string
		DisableReqLogs  bool
		ShutdownTimeout time.Duration
	}

	SessionConfig struct {
		TTL time.Duration
		Dir string // transient token directory used by the CLI
	}
)

// NewConfig reads the configuration from defaults, an optional `config/.env.<env>` file and the environment.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Attendance ERP")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "x1c&k!9nq0w$ehv-7r3t@m2(ps)zb8+la_fud4yoj5g6i")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("storage.engine", EngineSQLite)
	v.SetDefault("storage.path", filepath.Join("data", "attendance.db"))
	v.SetDefault("storage.dsn", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("session.dir", filepath.Join(os.TempDir(), "attendance-erp-session"))

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Storage: StorageConfig{
			Engine: strings.ToLower(v.GetString("storage.engine")),
			Path:   v.GetString("storage.path"),
			DSN:    v.GetString("storage.dsn"),
		},
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Session: SessionConfig{
			TTL: v.GetDuration("session.ttl"),
			Dir: v.GetString("session.dir"),
		},
	}
}

// NewTestConfig returns a Config backed by in-memory storage.
func NewTestConfig() *Config {
	return &Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "Attendance ERP",
		Build:     "test",
		SecretKey: "test-secret",
		Storage:   StorageConfig{Engine: EngineMemory},
		Server:    ServerConfig{Host: "localhost", DisableReqLogs: true, ShutdownTimeout: time.Second},
		Session:   SessionConfig{TTL: time.Hour},
	}
}
