package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	Env      string         `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HTTPConfig struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8000"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

// MongoDBConfig holds the document store and query engine settings.
// MasterURL addresses the query endpoint used for bulk reads; when it is not a
// MongoDB connection string the store URI is used for reads as well.
type MongoDBConfig struct {
	URI            string        `yaml:"uri" env:"MONGODB_URI"`
	MasterURL      string        `yaml:"master_url" env:"MONGODB_MASTER_URL"`
	DriverHostName string        `yaml:"driver_host_name" env:"MONGODB_DRIVER_HOST_NAME" env-default:"flight-booking-service"`
	DB             string        `yaml:"db" env:"MONGODB_DB"`
	Flight         string        `yaml:"flight" env:"MONGODB_FLIGHT_COLLECTION" env-default:"flights"`
	Booking        string        `yaml:"booking" env:"MONGODB_BOOKING_COLLECTION" env-default:"bookings"`
	Timeout        time.Duration `yaml:"timeout" env:"MONGODB_TIMEOUT" env-default:"30s"`
}

type RabbitMQConfig struct {
	URL string `yaml:"url" env:"RABBITMQ_URL"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// QueryURI returns the connection string for the query engine.
func (m MongoDBConfig) QueryURI() string {
	if strings.HasPrefix(m.MasterURL, "mongodb://") || strings.HasPrefix(m.MasterURL, "mongodb+srv://") {
		return m.MasterURL
	}
	return m.URI
}

// Load reads an optional .env file, then the YAML file at path with
// environment overrides. A missing YAML file falls back to environment only.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH and exits on failure.
func MustLoad() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.MongoDB.URI == "" {
		return errors.New("mongodb.uri is required")
	}
	if c.MongoDB.DB == "" {
		return errors.New("mongodb.db is required")
	}
	if c.MongoDB.Flight == "" || c.MongoDB.Booking == "" {
		return errors.New("mongodb.flight and mongodb.booking collection names are required")
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		return errors.New("http.allowed_origins must list at least one origin")
	}
	return nil
}
