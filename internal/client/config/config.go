package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Atrox/homedir"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix prefixes every environment variable the client reads, except the
// API key which also honours the provider's conventional name.
const EnvPrefix = "WEATHERFACE"

const (
	keyDatabasePath   = "database_path"
	keyKeyFilePath    = "key_file_path"
	keyWeatherAPIURL  = "weather_api_url"
	keyWeatherAPIKey  = "weather_api_key"
	keyUnits          = "units"
	keyRequestTimeout = "request_timeout"
	keyHashCost       = "hash_cost"
	keyLogLevel       = "log_level"
	keyLogBackend     = "log_backend"
)

// Config holds runtime settings for the WeatherFace CLI.
//
// Units: RequestTimeout is a time.Duration; zero means the weather request
// has no deadline of its own.
type Config struct {
	DatabasePath   string
	KeyFilePath    string
	WeatherAPIURL  string
	WeatherAPIKey  string
	Units          string
	RequestTimeout time.Duration
	HashCost       int
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "weatherface.db"
	c.KeyFilePath = "weatherface.key"
	c.WeatherAPIURL = "https://api.openweathermap.org/data/2.5"
	c.WeatherAPIKey = ""
	c.Units = "metric"
	c.RequestTimeout = 0
	c.HashCost = bcrypt.DefaultCost
	c.LogLevel = "warn"
	c.LogBackend = "zap"
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if c.KeyFilePath == "" {
		errs = append(errs, errors.New("key file path is empty"))
	}
	if c.WeatherAPIURL == "" {
		errs = append(errs, errors.New("weather api url is empty"))
	}
	switch c.Units {
	case "metric", "imperial", "standard":
	default:
		errs = append(errs, fmt.Errorf("unknown units %q", c.Units))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("negative request timeout %s", c.RequestTimeout))
	}
	if c.HashCost < bcrypt.MinCost || c.HashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("hash cost %d outside [%d, %d]", c.HashCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}

// Load builds a Config from defaults, an optional config file, the
// environment (including a .env file) and the flags registered with
// RegisterFlags. Later sources take precedence over earlier ones. flags may be
// nil, in which case only defaults, the default .env file and the
// environment are used.
func Load(flags *pflag.FlagSet) (*Config, error) {
	var def Config
	def.LoadDefaults()

	envFile := DefaultEnvFile
	configFile := ""
	if flags != nil {
		if f := flags.Lookup(flagEnvFile); f != nil {
			envFile = f.Value.String()
		}
		if f := flags.Lookup(flagConfig); f != nil {
			configFile = f.Value.String()
		}
	}

	envFile, err := homedir.Expand(envFile)
	if err != nil {
		return nil, err
	}
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(keyDatabasePath, def.DatabasePath)
	v.SetDefault(keyKeyFilePath, def.KeyFilePath)
	v.SetDefault(keyWeatherAPIURL, def.WeatherAPIURL)
	v.SetDefault(keyWeatherAPIKey, def.WeatherAPIKey)
	v.SetDefault(keyUnits, def.Units)
	v.SetDefault(keyRequestTimeout, def.RequestTimeout)
	v.SetDefault(keyHashCost, def.HashCost)
	v.SetDefault(keyLogLevel, def.LogLevel)
	v.SetDefault(keyLogBackend, def.LogBackend)

	if configFile != "" {
		if configFile, err = homedir.Expand(configFile); err != nil {
			return nil, err
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(keyWeatherAPIKey, EnvPrefix+"_WEATHER_API_KEY", "OPENWEATHERMAP_API_KEY"); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		DatabasePath:   v.GetString(keyDatabasePath),
		KeyFilePath:    v.GetString(keyKeyFilePath),
		WeatherAPIURL:  strings.TrimRight(v.GetString(keyWeatherAPIURL), "/"),
		WeatherAPIKey:  v.GetString(keyWeatherAPIKey),
		Units:          strings.ToLower(v.GetString(keyUnits)),
		RequestTimeout: v.GetDuration(keyRequestTimeout),
		HashCost:       v.GetInt(keyHashCost),
		LogLevel:       v.GetString(keyLogLevel),
		LogBackend:     v.GetString(keyLogBackend),
	}
	if cfg.DatabasePath, err = homedir.Expand(cfg.DatabasePath); err != nil {
		return nil, err
	}
	if cfg.KeyFilePath, err = homedir.Expand(cfg.KeyFilePath); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotEnv exports the variables of path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
