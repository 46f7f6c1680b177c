package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/motlib/library-service/pkg/gemini"
	"github.com/motlib/library-service/pkg/logger"
	"github.com/motlib/library-service/pkg/sqlite"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration
}

type Config struct {
	Server  HTTPServer    `yaml:"server"`
	Session sqlite.Config `yaml:"session"`
	Gemini  gemini.Config `yaml:"gemini"`
	Log     logger.Log    `yaml:"log"`
	Seed    bool          `yaml:"seed" envconfig:"SEED_DATA" default:"true"`
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
