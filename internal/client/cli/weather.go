package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/weatherface/internal/client/config"
	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/client/services"
	"github.com/dmitrijs2005/weatherface/internal/logging"
)

// Weather looks up the current weather. The city comes from args, then the
// selected roster city, then a prompt.
func (a *App) Weather(ctx context.Context, args []string) error {
	city := strings.TrimSpace(strings.Join(args, " "))
	if city == "" && a.isLoggedIn() {
		if c, ok := a.roster.Selected(); ok {
			city = c.Name
		}
	}
	if city == "" {
		var err error
		city, err = getSimpleText(a.reader, "Enter city name", a.out)
		if err != nil {
			return err
		}
	}

	if err := (models.WeatherSearch{Name: city}).Validate(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Loading...")
	view := a.weather.Fetch(ctx, city)
	RenderWeather(a.out, view, a.units())
	return nil
}

// LookupWeather runs a single lookup for city with the settings in c and
// renders the outcome to w. No account or local store is involved. The
// returned error is non-nil when the lookup failed.
func LookupWeather(ctx context.Context, c *config.Config, log logging.Logger, city string, w io.Writer) error {
	if err := (models.WeatherSearch{Name: city}).Validate(); err != nil {
		return err
	}
	view := newWeatherFetcher(c, log).Fetch(ctx, city)
	RenderWeather(w, view, c.Units)
	if view.Error != "" {
		return fmt.Errorf("weather lookup for %q failed", city)
	}
	return nil
}

// RenderWeather writes view to w: a loading line, the error line and the
// weather block, each only when present. Values are printed as the API
// returned them.
func RenderWeather(w io.Writer, view services.WeatherView, units string) {
	if view.Loading {
		fmt.Fprintln(w, "Loading...")
	}
	if view.Error != "" {
		fmt.Fprintln(w, view.Error)
	}

	d := view.Data
	if d == nil {
		return
	}

	temp, speed := unitLabels(units)
	fmt.Fprintf(w, "Weather in %s\n", d.Name)
	if d.Main != nil && d.Main.Temp != "" {
		fmt.Fprintf(w, "%s%s\n", d.Main.Temp, temp)
	}
	if desc := d.Description(); desc != "" {
		fmt.Fprintln(w, desc)
	}
	if d.Main != nil && d.Main.Humidity != "" {
		fmt.Fprintf(w, "Humidity: %s%%\n", d.Main.Humidity)
	}
	if d.Wind != nil && d.Wind.Speed != "" {
		fmt.Fprintf(w, "Wind speed: %s %s\n", d.Wind.Speed, speed)
	}
}

func unitLabels(units string) (temp, speed string) {
	switch units {
	case "imperial":
		return "°F", "mph"
	case "standard":
		return " K", "m/s"
	default:
		return "°C", "m/s"
	}
}
