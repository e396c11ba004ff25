package models

import (
	"encoding/json"
	"errors"
)

// ErrEmptyWeather is returned by ParseWeatherResult for an empty body.
var ErrEmptyWeather = errors.New("empty weather payload")

// WeatherResult is the OpenWeatherMap "current weather" body. Raw keeps the
// response exactly as received; the typed fields only cover what gets
// rendered. Numbers stay json.Number so they print exactly as the API sent them.
type WeatherResult struct {
	Name    string           `json:"name"`
	Main    *WeatherMain     `json:"main,omitempty"`
	Weather []WeatherSummary `json:"weather,omitempty"`
	Wind    *WeatherWind     `json:"wind,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type WeatherMain struct {
	Temp     json.Number `json:"temp"`
	Humidity json.Number `json:"humidity"`
}

type WeatherSummary struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type WeatherWind struct {
	Speed json.Number `json:"speed"`
}

// ParseWeatherResult decodes body and keeps a copy of it in Raw.
func ParseWeatherResult(body []byte) (*WeatherResult, error) {
	if len(body) == 0 {
		return nil, ErrEmptyWeather
	}
	var w WeatherResult
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, err
	}
	w.Raw = append(json.RawMessage(nil), body...)
	return &w, nil
}

// Description returns weather[0].description, or "" when absent.
func (w *WeatherResult) Description() string {
	if w == nil || len(w.Weather) == 0 {
		return ""
	}
	return w.Weather[0].Description
}
