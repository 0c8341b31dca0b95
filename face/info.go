package face

import (
	"time"

	"tinygo.org/x/tinyfont/freemono"

	"wristcode-go/gfx"
	"wristcode-go/x/strconvx"
)

func (f *Face) renderInfo(st State) error {
	link := "LINK ok"
	if st.Degraded {
		link = "LINK degraded"
	}
	bat := "BAT n/a"
	if st.HaveBattery {
		bat = "BAT " + strconvx.Itoa(int(st.Battery.MilliV)) + "mV"
		if st.Battery.Charging {
			bat += " chg"
		}
	}
	lines := [4]string{
		"UP " + uptimeString(st.Uptime),
		"TIME " + st.Confidence.String(),
		link,
		bat,
	}

	if f.full {
		if err := f.textTile(rectInfoTitle, 2, &freemono.Bold9pt7b, "SYSTEM", gfx.White, gfx.Black); err != nil {
			return err
		}
	}
	for i, line := range lines {
		if !f.full && line == f.infoLines[i] {
			continue
		}
		col := gfx.Gray
		if i == 2 && st.Degraded {
			col = gfx.Red
		}
		if err := f.textTile(rectInfoLines[i], 2, &freemono.Regular9pt7b, line, col, gfx.Black); err != nil {
			return err
		}
		f.infoLines[i] = line
	}
	return nil
}

// uptimeString keeps the two most significant units: "3d04h", "4h07m",
// "12m05s" or plain seconds.
func uptimeString(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	switch {
	case s >= 86400:
		return strconvx.Itoa(int(s/86400)) + "d" + pad2(int(s%86400/3600)) + "h"
	case s >= 3600:
		return strconvx.Itoa(int(s/3600)) + "h" + pad2(int(s%3600/60)) + "m"
	case s >= 60:
		return strconvx.Itoa(int(s/60)) + "m" + pad2(int(s%60)) + "s"
	}
	return strconvx.Itoa(int(s)) + "s"
}
