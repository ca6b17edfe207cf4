package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Index    IndexConfig    `yaml:"index"`
	Import   ImportConfig   `yaml:"import"`
	Sync     SyncConfig     `yaml:"sync"`
}

type AppConfig struct {
	AppName     string `yaml:"name"`
	Environment string `yaml:"env"`
	HTTPPort    string `yaml:"http_port"`
	// MigrationsDir overrides the schema files compiled into the binary.
	MigrationsDir string `yaml:"migrations_dir"`
}

type DatabaseConfig struct {
	DBHost     string `yaml:"host"`
	DBPort     string `yaml:"port"`
	DBName     string `yaml:"name"`
	DBUser     string `yaml:"user"`
	DBPassword string `yaml:"password"`
	DBSSLMode  string `yaml:"ssl_mode"`

	ConnectTimeout        time.Duration `yaml:"connect_timeout"`
	PoolMaxConns          int32         `yaml:"pool_max_conns"`
	PoolMinConns          int32         `yaml:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `yaml:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `yaml:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `yaml:"pool_health_check_period"`
}

// RedisConfig selects the shared result cache. An empty Host keeps the
// cache in-process.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type IndexConfig struct {
	Path string `yaml:"path"`
}

type ImportConfig struct {
	BatchSize int `yaml:"batch_size"`
}

type SyncConfig struct {
	PageSize   int    `yaml:"page_size"`
	Schedule   string `yaml:"schedule"`
	OnStartup  bool   `yaml:"on_startup"`
	ClearCache bool   `yaml:"clear_cache"`
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Defaults() Config {
	return Config{
		App: AppConfig{},
		Database: DatabaseConfig{
			DBHost:         "localhost",
			DBPort:         "5432",
			DBSSLMode:      "disable",
			ConnectTimeout: 5 * time.Second,
		},
		Redis: RedisConfig{
			Port: "6379",
		},
		Index: IndexConfig{
			Path: "data/search-index.db",
		},
		Import: ImportConfig{
			BatchSize: 50,
		},
		Sync: SyncConfig{
			PageSize: 100,
			Schedule: "@every 1h",
		},
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (Config, error) {
	return LoadFile(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
}

// LoadFile is Load with an explicit YAML path. A missing file is not an
// error; a malformed one is.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	var missing []string
	var invalid []string
	str := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	req := func(dst *string, key string) {
		str(dst, key)
		if strings.TrimSpace(*dst) == "" {
			missing = append(missing, key)
		}
	}
	num := func(dst *int, key string) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, key)
			return
		}
		*dst = n
	}
	flag := func(dst *bool, key string) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return
		}
		*dst = b
	}
	dur := func(dst *time.Duration, key string) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			invalid = append(invalid, key)
			return
		}
		*dst = d
	}

	req(&cfg.App.AppName, "APP_NAME")
	req(&cfg.App.Environment, "APP_ENV")
	req(&cfg.App.HTTPPort, "HTTP_PORT")
	str(&cfg.App.MigrationsDir, "MIGRATIONS_DIR")

	str(&cfg.Database.DBHost, "DB_HOST")
	str(&cfg.Database.DBPort, "DB_PORT")
	str(&cfg.Database.DBName, "DB_NAME")
	str(&cfg.Database.DBUser, "DB_USER")
	str(&cfg.Database.DBPassword, "DB_PASSWORD")
	str(&cfg.Database.DBSSLMode, "DB_SSL_MODE")
	dur(&cfg.Database.ConnectTimeout, "DB_CONNECT_TIMEOUT")
	var maxConns int
	num(&maxConns, "DB_POOL_MAX_CONNS")
	if maxConns > 0 {
		cfg.Database.PoolMaxConns = int32(maxConns)
	}

	str(&cfg.Redis.Host, "REDIS_HOST")
	str(&cfg.Redis.Port, "REDIS_PORT")
	str(&cfg.Redis.Password, "REDIS_PASSWORD")
	num(&cfg.Redis.DB, "REDIS_DB")

	str(&cfg.Index.Path, "INDEX_PATH")

	num(&cfg.Import.BatchSize, "IMPORT_BATCH_SIZE")
	num(&cfg.Sync.PageSize, "SYNC_PAGE_SIZE")
	str(&cfg.Sync.Schedule, "SYNC_SCHEDULE")
	flag(&cfg.Sync.OnStartup, "SYNC_ON_STARTUP")
	flag(&cfg.Sync.ClearCache, "SYNC_CLEAR_CACHE")

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	if cfg.Import.BatchSize <= 0 {
		return Config{}, fmt.Errorf("import batch size must be positive, got %d", cfg.Import.BatchSize)
	}
	if cfg.Sync.PageSize <= 0 {
		return Config{}, fmt.Errorf("sync page size must be positive, got %d", cfg.Sync.PageSize)
	}

	return cfg, nil
}
