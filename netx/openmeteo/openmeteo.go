// Package openmeteo decodes Open-Meteo current-conditions replies for
// the weather face. One query covers everything the face shows: current
// temperature, feel, humidity, wind, WMO code and the day's high/low.
package openmeteo

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Query pins the forecast request. Coordinates are WGS84 degrees.
type Query struct {
	Latitude   float64
	Longitude  float64
	Fahrenheit bool
}

// Conditions is one decoded payload. FetchedAt anchors staleness.
type Conditions struct {
	Temperature float64
	Apparent    float64
	Humidity    int
	WindSpeed   float64
	Code        int
	DailyHigh   float64
	DailyLow    float64
	FetchedAt   time.Time
}

// Stale reports whether the payload has outlived twice the refresh
// interval. The face shows it anyway, with an indicator.
func (c Conditions) Stale(now time.Time, refresh time.Duration) bool {
	if c.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(c.FetchedAt) > 2*refresh
}

// URL renders the forecast query. Field order is fixed so tests and
// cached replies stay byte-stable.
func URL(q Query) string {
	var b strings.Builder
	b.WriteString("https://api.open-meteo.com/v1/forecast?latitude=")
	b.WriteString(strconv.FormatFloat(q.Latitude, 'f', 4, 64))
	b.WriteString("&longitude=")
	b.WriteString(strconv.FormatFloat(q.Longitude, 'f', 4, 64))
	b.WriteString("&current=temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m")
	b.WriteString("&daily=temperature_2m_max,temperature_2m_min")
	b.WriteString("&temperature_unit=")
	if q.Fahrenheit {
		b.WriteString("fahrenheit")
	} else {
		b.WriteString("celsius")
	}
	b.WriteString("&wind_speed_unit=mph&forecast_days=1")
	return b.String()
}

type payload struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    int     `json:"relative_humidity_2m"`
		Apparent    float64 `json:"apparent_temperature"`
		Code        int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Max []float64 `json:"temperature_2m_max"`
		Min []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Decode parses a reply body. A missing daily block leaves the high/low
// at zero rather than failing the whole payload.
func Decode(body []byte, at time.Time) (Conditions, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Conditions{}, err
	}
	c := Conditions{
		Temperature: p.Current.Temperature,
		Apparent:    p.Current.Apparent,
		Humidity:    p.Current.Humidity,
		WindSpeed:   p.Current.WindSpeed,
		Code:        p.Current.Code,
		FetchedAt:   at,
	}
	if len(p.Daily.Max) > 0 {
		c.DailyHigh = p.Daily.Max[0]
	}
	if len(p.Daily.Min) > 0 {
		c.DailyLow = p.Daily.Min[0]
	}
	return c, nil
}

// Label maps a WMO weather code to face text.
func Label(code int) string {
	switch code {
	case 0:
		return "Clear"
	case 1:
		return "Mostly Clear"
	case 2:
		return "Partly Cloudy"
	case 3:
		return "Overcast"
	case 45:
		return "Fog"
	case 48:
		return "Rime Fog"
	case 51:
		return "Light Drizzle"
	case 53:
		return "Drizzle"
	case 55:
		return "Heavy Drizzle"
	case 61:
		return "Light Rain"
	case 63:
		return "Rain"
	case 65:
		return "Heavy Rain"
	case 71:
		return "Light Snow"
	case 73:
		return "Snow"
	case 75:
		return "Heavy Snow"
	case 80:
		return "Light Showers"
	case 81:
		return "Showers"
	case 82:
		return "Heavy Showers"
	case 95:
		return "Thunderstorm"
	}
	return "Unknown"
}
