package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read on start-up when present.
const DefaultEnvFile = ".env"

const (
	flagConfig  = "config"
	flagEnvFile = "env-file"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"database":        keyDatabasePath,
	"key-file":        keyKeyFilePath,
	"api-url":         keyWeatherAPIURL,
	"api-key":         keyWeatherAPIKey,
	"units":           keyUnits,
	"request-timeout": keyRequestTimeout,
	"hash-cost":       keyHashCost,
	"log-level":       keyLogLevel,
	"log-backend":     keyLogBackend,
}

// RegisterFlags defines the client's flags on fs. Flag defaults mirror
// LoadDefaults so help output shows the effective values.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(flagEnvFile, DefaultEnvFile, "path to a .env file")
	fs.String("database", d.DatabasePath, "path to the SQLite database")
	fs.String("key-file", d.KeyFilePath, "path to the device secret file")
	fs.String("api-url", d.WeatherAPIURL, "OpenWeatherMap API base URL")
	fs.String("api-key", d.WeatherAPIKey, "OpenWeatherMap API key")
	fs.String("units", d.Units, "measurement units: metric, imperial or standard")
	fs.Duration("request-timeout", d.RequestTimeout, "weather request timeout, 0 for none")
	fs.Int("hash-cost", d.HashCost, "bcrypt cost for new password hashes")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	fs.String("log-backend", d.LogBackend, "logger backend: zap or slog")
}

// bindFlags makes explicitly set flags override every other source.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
