package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	S3       S3Config       `mapstructure:"s3"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address        string        `mapstructure:"address"`
	Mode           string        `mapstructure:"mode"` // gin mode: debug, release, test
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Database drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
	// Startup retries while the store is not reachable yet.
	ConnectAttempts int           `mapstructure:"connect_attempts"`
	ConnectBackoff  time.Duration `mapstructure:"connect_backoff"`
}

// AdminConfig holds the one shared secret that gates every admin mutation
// and the workout read endpoint. Set either the secret or its bcrypt hash.
type AdminConfig struct {
	Secret            string `mapstructure:"secret"`
	SecretHash        string `mapstructure:"secret_hash"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	Burst             int    `mapstructure:"burst"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	UseSSL          bool   `mapstructure:"use_ssl"` // scheme for an endpoint given as host[:port]
}

// EndpointURL is Endpoint with a scheme. A bare host[:port] gets https when
// UseSSL is set and http otherwise; a full URL is returned as is.
func (c S3Config) EndpointURL() string {
	if c.Endpoint == "" || strings.Contains(c.Endpoint, "://") {
		return c.Endpoint
	}
	if c.UseSSL {
		return "https://" + c.Endpoint
	}
	return "http://" + c.Endpoint
}

// Enabled reports whether image uploads should be offered.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in path, if present, is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(strings.TrimRight(path, "/") + "/.env")

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, admin.secret -> ADMIN_SECRET
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("database.name", "region_site")
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("database.connect_backoff", "1s")
	// Keys must be known to viper for AutomaticEnv to reach them on Unmarshal.
	v.SetDefault("admin.secret", "")
	v.SetDefault("admin.secret_hash", "")
	v.SetDefault("admin.requests_per_minute", 30)
	v.SetDefault("admin.burst", 10)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate rejects configurations the server cannot run with. A missing
// admin secret is fatal.
func (c Config) Validate() error {
	if c.Admin.Secret == "" && c.Admin.SecretHash == "" {
		return errors.New("admin.secret or admin.secret_hash must be set")
	}
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.URI == "" || c.Database.Name == "" {
			return errors.New("database.uri and database.name are required for the mongo driver")
		}
		if c.Database.ConnectAttempts <= 0 || c.Database.ConnectBackoff <= 0 {
			return errors.New("database.connect_attempts and database.connect_backoff must be positive")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive")
	}
	if c.Admin.RequestsPerMinute <= 0 || c.Admin.Burst <= 0 {
		return errors.New("admin.requests_per_minute and admin.burst must be positive")
	}
	return nil
}
