package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Engine   EngineConfig
	S3       S3Config
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
	StaticIndex  string
}

type DatasetConfig struct {
	Source    string
	Path      string
	Sheet     string
	Table     string
	LatColumn string
	LonColumn string
	IDColumn  string
	NameCol   string
}

type EngineConfig struct {
	Workers           int
	ParallelThreshold int
	DefaultK          int
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	NearestCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads configuration from an optional .env file in the working
// directory and from the environment. Environment variables win.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	// The dataset path has historically been set through LDP_2024_public
	if err := v.BindEnv("DATASET_PATH", "DATASET_PATH", "LDP_2024_public"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
			StaticIndex:  v.GetString("STATIC_INDEX"),
		},
		Dataset: DatasetConfig{
			Source:    strings.ToLower(strings.TrimSpace(v.GetString("DATASET_SOURCE"))),
			Path:      v.GetString("DATASET_PATH"),
			Sheet:     v.GetString("DATASET_SHEET"),
			Table:     v.GetString("DATASET_TABLE"),
			LatColumn: v.GetString("LAT_COL"),
			LonColumn: v.GetString("LON_COL"),
			IDColumn:  v.GetString("ID_COL"),
			NameCol:   v.GetString("NAME_COL"),
		},
		Engine: EngineConfig{
			Workers:           v.GetInt("ENGINE_WORKERS"),
			ParallelThreshold: v.GetInt("ENGINE_PARALLEL_THRESHOLD"),
			DefaultK:          v.GetInt("DEFAULT_K"),
		},
		S3: S3Config{
			Endpoint:  v.GetString("S3_ENDPOINT"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			Region:    v.GetString("S3_REGION"),
			UseSSL:    v.GetBool("S3_USE_SSL"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			NearestCacheTTL: time.Duration(v.GetInt("NEAREST_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8000)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("STATIC_INDEX", "index.html")

	v.SetDefault("DATASET_SOURCE", SourceFile)
	v.SetDefault("DATASET_PATH", "LPD_2024_public.csv")
	v.SetDefault("LAT_COL", "Latitude")
	v.SetDefault("LON_COL", "Longitude")
	v.SetDefault("ID_COL", "ID")
	v.SetDefault("NAME_COL", "Common_name")

	v.SetDefault("ENGINE_WORKERS", runtime.GOMAXPROCS(0))
	v.SetDefault("ENGINE_PARALLEL_THRESHOLD", 20000)
	v.SetDefault("DEFAULT_K", 5)

	v.SetDefault("S3_REGION", "us-east-1")

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 2)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("NEAREST_CACHE_TTL", 3600)

	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) validate() error {
	switch c.Dataset.Source {
	case SourceFile, SourceS3:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for %s source", c.Dataset.Source)
		}
	case SourcePostgres:
		if c.Dataset.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required for postgres source")
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q, expected one of %s, %s, %s",
			c.Dataset.Source, SourceFile, SourceS3, SourcePostgres)
	}
	if c.Dataset.LatColumn == "" || c.Dataset.LonColumn == "" {
		return fmt.Errorf("LAT_COL and LON_COL must not be empty")
	}
	if c.Engine.DefaultK <= 0 {
		return fmt.Errorf("DEFAULT_K must be positive, got %d", c.Engine.DefaultK)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
