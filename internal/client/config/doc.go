// Package config loads runtime configuration for the WeatherFace CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file, JSON or YAML, selected with -c or --config.
//  3. Environment variables prefixed with WEATHERFACE_ (for example
//     WEATHERFACE_DATABASE_PATH). The API key is also read from
//     OPENWEATHERMAP_API_KEY. A .env file is loaded first and never
//     overrides variables that are already set.
//  4. Command-line flags registered with RegisterFlags.
//
// Paths (database, key file, config and .env files) may start with "~",
// which expands to the user's home directory.
//
// # File schema
//
// Durations accept Go duration strings:
//
//	{
//	  "database_path": "weatherface.db",
//	  "key_file_path": "weatherface.key",
//	  "weather_api_url": "https://api.openweathermap.org/data/2.5",
//	  "weather_api_key": "...",
//	  "units": "metric",
//	  "request_timeout": "5s",
//	  "hash_cost": 10,
//	  "log_level": "info",
//	  "log_backend": "zap"
//	}
package config
