package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Addr           string        `yaml:"addr" validate:"required"`
	BackendBaseURL string        `yaml:"backend_base_url" validate:"required,url"`
	AllowedOrigins []string      `yaml:"allowed_origins" validate:"required,min=1"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	SessionIdleTTL time.Duration `yaml:"session_idle_ttl"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	RetryMax       uint64        `yaml:"retry_max"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

type Private struct {
	// Service-to-service key the backend expects on every proxied request.
	// Empty disables the header.
	BackendApiKey string `yaml:"backend_api_key"`
}

func (c *Config) BackendApiKey() string {
	return c.private.BackendApiKey
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if err := validator.New().Struct(public); err != nil {
		panic("invalid config: " + err.Error())
	}

	return &Config{public, private}
}
