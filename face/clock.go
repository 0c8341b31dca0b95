package face

import (
	"time"

	"tinygo.org/x/tinyfont/freemono"

	"wristcode-go/gfx"
	"wristcode-go/x/strconvx"
)

func (f *Face) renderClock(st State) error {
	timeStr, secStr, dateStr := "--:--", "", "no time"
	if st.Valid {
		timeStr = hourMinute(st.Local, st.Use12h)
		secStr = pad2(st.Local.Second())
		dateStr = dayLine(st.Local)
	}

	if f.full || timeStr != f.timeStr {
		if err := f.textTile(rectTime, 5, &freemono.Bold9pt7b, timeStr, gfx.White, gfx.Black); err != nil {
			return err
		}
		f.timeStr = timeStr
	}
	if f.full || secStr != f.secStr {
		if err := f.textTile(rectSeconds, 2, &freemono.Regular9pt7b, secStr, gfx.Gray, gfx.Black); err != nil {
			return err
		}
		f.secStr = secStr
	}
	if f.full || dateStr != f.dateStr {
		if err := f.textTile(rectDate, 2, &freemono.Regular9pt7b, dateStr, gfx.Gray, gfx.Black); err != nil {
			return err
		}
		f.dateStr = dateStr
	}
	return nil
}

// hourMinute renders "07:45" or, in 12-hour mode, "7:45A" style with a
// single A/P marker to keep the large patch narrow.
func hourMinute(t time.Time, use12h bool) string {
	h := t.Hour()
	if !use12h {
		return pad2(h) + ":" + pad2(t.Minute())
	}
	marker := "A"
	if h >= 12 {
		marker = "P"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return strconvx.Itoa(h) + ":" + pad2(t.Minute()) + marker
}

// dayLine renders "Fri 21 Aug".
func dayLine(t time.Time) string {
	return t.Weekday().String()[:3] + " " + strconvx.Itoa(t.Day()) + " " + t.Month().String()[:3]
}
