package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/weatherface/internal/client/client"
	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/logging"
)

// WeatherView is what the presentation layer renders: the last result, an
// in-flight flag and the last error message.
type WeatherView struct {
	Data    *models.WeatherResult
	Loading bool
	Error   string
}

// WeatherFetcher runs weather lookups and keeps the resulting view.
//
// Calls are not de-duplicated or cancelled: concurrent lookups all run and
// whichever finishes last decides Data/Error. Loading stays true while any
// lookup is pending.
type WeatherFetcher struct {
	client client.WeatherClient
	log    logging.Logger

	mu       sync.Mutex
	view     WeatherView
	inFlight int
}

func NewWeatherFetcher(c client.WeatherClient, log logging.Logger) *WeatherFetcher {
	return &WeatherFetcher{client: c, log: log}
}

// View returns the current view.
func (f *WeatherFetcher) View() WeatherView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Fetch looks up city and returns the view after the lookup completed.
// A failed lookup keeps the previous Data and sets Error.
func (f *WeatherFetcher) Fetch(ctx context.Context, city string) WeatherView {
	f.mu.Lock()
	f.inFlight++
	f.view.Loading = true
	f.view.Error = ""
	f.mu.Unlock()

	res, err := f.client.Fetch(ctx, city)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	f.view.Loading = f.inFlight > 0
	if err != nil {
		f.view.Error = fmt.Sprintf("Failed to load data (%v)", err)
		f.log.Warn(ctx, "weather lookup failed", "city", city, "error", err)
	} else {
		f.view.Data = res
		f.view.Error = ""
		f.log.Debug(ctx, "weather lookup done", "city", city)
	}
	return f.view
}
