// Package config loads rp service configuration from an optional YAML file, an optional .env file
// and RP_-prefixed environment variables, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "RP"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Log    LogConfig    `mapstructure:"log"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	AppName        string        `mapstructure:"app_name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
	// Stages selects the pipeline stage logger: console, structured or off.
	Stages string `mapstructure:"stages"`
}

type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

// Option is a functional option for Load.
type Option func(*loader)

type loader struct {
	configFile string
	envFile    string
}

// WithConfigFile reads a YAML file before the environment. A missing file is an error.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFile loads a .env file into the process environment. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(l *loader) { l.envFile = path }
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "app")
	v.SetDefault("mongo.app_name", "Demo")
	v.SetDefault("mongo.connect_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.stages", "console")
	v.SetDefault("auth.secret", "")
}

// Load builds a Config. Environment variables use the RP_ prefix and underscores for nesting,
// e.g. RP_MONGO_URI or RP_SERVER_ADDR.
func Load(opts ...Option) (*Config, error) {
	var l loader
	for _, opt := range opts {
		opt(&l)
	}

	if l.envFile != "" {
		if _, err := os.Stat(l.envFile); err == nil {
			if err := godotenv.Load(l.envFile); err != nil {
				return nil, fmt.Errorf("load env file %s: %w", l.envFile, err)
			}
		}
	}

	v := viper.New()
	setDefaults(v)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", l.configFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "pretty", "json":
	default:
		return fmt.Errorf("log.format must be one of [console, pretty, json] (got: %s)", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Stages) {
	case "console", "structured", "off":
	default:
		return fmt.Errorf("log.stages must be one of [console, structured, off] (got: %s)", c.Log.Stages)
	}
	return nil
}

// Logger builds the process logger. An unparsable level falls back to info.
func (c LogConfig) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.ToLower(c.Format) == "json" {
		zl = zerolog.New(os.Stdout)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return zl.Level(level).With().Timestamp().Logger()
}
