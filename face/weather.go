package face

import (
	"tinygo.org/x/tinyfont/freemono"

	"wristcode-go/gfx"
	"wristcode-go/netx/openmeteo"
	"wristcode-go/x/strconvx"
)

func (f *Face) renderWeather(st State) error {
	unit := "C"
	if st.Fahrenheit {
		unit = "F"
	}

	temp, label, rng, met := "--", "No data", "", ""
	if !st.Weather.FetchedAt.IsZero() {
		temp = strconvx.Itoa(roundInt(st.Weather.Temperature)) + unit
		label = openmeteo.Label(st.Weather.Code)
		rng = "H " + strconvx.Itoa(roundInt(st.Weather.DailyHigh)) + unit +
			"  L " + strconvx.Itoa(roundInt(st.Weather.DailyLow)) + unit
		met = "W " + strconvx.Itoa(roundInt(st.Weather.WindSpeed)) + "mph" +
			"  H " + strconvx.Itoa(st.Weather.Humidity) + "%"
	}

	// Stale readings stay on screen but drop to gray.
	col := gfx.White
	if st.WeatherStale {
		col = gfx.Gray
	}
	repaint := f.full || st.WeatherStale != f.wxStale
	f.wxStale = st.WeatherStale

	if repaint || temp != f.wxTemp {
		if err := f.textTile(rectWxTemp, 4, &freemono.Bold9pt7b, temp, col, gfx.Black); err != nil {
			return err
		}
		f.wxTemp = temp
	}
	if repaint || label != f.wxLabel {
		if err := f.textTile(rectWxLabel, 2, &freemono.Regular9pt7b, label, col, gfx.Black); err != nil {
			return err
		}
		f.wxLabel = label
	}
	if repaint || rng != f.wxRange {
		if err := f.textTile(rectWxRange, 2, &freemono.Regular9pt7b, rng, gfx.Gray, gfx.Black); err != nil {
			return err
		}
		f.wxRange = rng
	}
	if repaint || met != f.wxMet {
		if err := f.textTile(rectWxMet, 2, &freemono.Regular9pt7b, met, gfx.Gray, gfx.Black); err != nil {
			return err
		}
		f.wxMet = met
	}
	return nil
}
