package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// One TOML document per device ID. Adjust at build time; the watch never
// reads configuration after boot.
// -----------------------------------------------------------------------------

const cfgWatch = `
[net]
ssid = ""
password = ""
ntp_host = "pool.ntp.org"
sync_interval = "1h"

[location]
latitude = 51.5072
longitude = -0.1276

[time]
utc_offset_minutes = 0
skew_bound = "10m"
stale_after = "24h"
use_12h = false

[power]
dim_after = "20s"
sleep_after = "60s"
wake_on_minute = false

[display]
tick_period = "250ms"
dimmed_period = "1s"
sleep_poll = "3s"
merge_threshold_pct = 150
max_regions = 8
brightness = 255
dim_brightness = 60

[input]
debounce_window = "300ms"
drag_threshold = 20
sleep_drag = 120

[weather]
refresh = "10m"
fahrenheit = false
`

var embeddedConfigs = map[string][]byte{
	"watch": []byte(cfgWatch),
}
