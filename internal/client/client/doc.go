// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. The weather API contract (see WeatherClient) and its HTTP implementation
//     (HTTPWeatherClient) for the OpenWeatherMap "current weather" endpoint:
//     GET {base}/weather?q={city}&units=metric&appid={key}. One request per
//     call, no retries, no caching.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations): opens the
//     SQLite database and applies the embedded goose migrations.
//
// # Error Handling
//
// Failures are reported with sentinel errors that callers match with
// errors.Is: ErrUnavailable (transport), ErrAPIKeyMissing, ErrLocationNotFound
// (HTTP 404) and ErrExternalAPI (any other non-2xx status).
//
// All network operations accept a context.Context and honor cancellation.
package client
