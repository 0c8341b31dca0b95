// Package config parses the embedded startup TOML once at boot,
// validates it, and republishes each section as a retained bus message.
// Nothing re-reads configuration at runtime.
package config

import (
	"time"

	"wristcode-go/bus"
	"wristcode-go/errcode"
	"wristcode-go/framebuf"
	"wristcode-go/inputroute"
	"wristcode-go/powerctl"
	"wristcode-go/timekeep"

	"github.com/BurntSushi/toml"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	configPrefix = "config"
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Duration wraps time.Duration so TOML can carry "250ms", "20s", "1h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// -----------------------------------------------------------------------------
// Sections
// -----------------------------------------------------------------------------

type Config struct {
	Net      NetSection      `toml:"net"`
	Location LocationSection `toml:"location"`
	Time     TimeSection     `toml:"time"`
	Power    PowerSection    `toml:"power"`
	Display  DisplaySection  `toml:"display"`
	Input    InputSection    `toml:"input"`
	Weather  WeatherSection  `toml:"weather"`
}

type NetSection struct {
	SSID         string   `toml:"ssid"`
	Password     string   `toml:"password"`
	NTPHost      string   `toml:"ntp_host"`
	SyncInterval Duration `toml:"sync_interval"`
}

type LocationSection struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

type TimeSection struct {
	UTCOffsetMinutes int      `toml:"utc_offset_minutes"`
	SkewBound        Duration `toml:"skew_bound"`
	StaleAfter       Duration `toml:"stale_after"`
	Use12h           bool     `toml:"use_12h"`
}

type PowerSection struct {
	DimAfter     Duration `toml:"dim_after"`
	SleepAfter   Duration `toml:"sleep_after"`
	WakeOnMinute bool     `toml:"wake_on_minute"`
}

type DisplaySection struct {
	TickPeriod        Duration `toml:"tick_period"`
	DimmedPeriod      Duration `toml:"dimmed_period"`
	SleepPoll         Duration `toml:"sleep_poll"`
	MergeThresholdPct int      `toml:"merge_threshold_pct"`
	MaxRegions        int      `toml:"max_regions"`
	Brightness        uint8    `toml:"brightness"`
	DimBrightness     uint8    `toml:"dim_brightness"`
}

type InputSection struct {
	DebounceWindow Duration `toml:"debounce_window"`
	DragThreshold  int      `toml:"drag_threshold"`
	SleepDrag      int      `toml:"sleep_drag"`
}

type WeatherSection struct {
	Refresh    Duration `toml:"refresh"`
	Fahrenheit bool     `toml:"fahrenheit"`
}

// Defaults is the complete baseline an embedded config overlays. Every
// field here is a sane watch out of the box.
func Defaults() Config {
	return Config{
		Net: NetSection{
			NTPHost:      "pool.ntp.org",
			SyncInterval: Duration{time.Hour},
		},
		Time: TimeSection{
			SkewBound:  Duration{10 * time.Minute},
			StaleAfter: Duration{24 * time.Hour},
		},
		Power: PowerSection{
			DimAfter:   Duration{20 * time.Second},
			SleepAfter: Duration{60 * time.Second},
		},
		Display: DisplaySection{
			TickPeriod:        Duration{250 * time.Millisecond},
			DimmedPeriod:      Duration{time.Second},
			SleepPoll:         Duration{3 * time.Second},
			MergeThresholdPct: 150,
			MaxRegions:        8,
			Brightness:        0xFF,
			DimBrightness:     0x3C,
		},
		Input: InputSection{
			DebounceWindow: Duration{300 * time.Millisecond},
			DragThreshold:  20,
			SleepDrag:      120,
		},
		Weather: WeatherSection{
			Refresh: Duration{10 * time.Minute},
		},
	}
}

// Load resolves, parses and validates the embedded config for a device.
func Load(device string) (Config, error) {
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.Load",
			Msg: "no embedded config for device: " + device}
	}
	cfg := Defaults()
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.Load", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configs the loop cannot run on. Checked once at boot;
// after this every component trusts its numbers.
func (c Config) Validate() error {
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.Validate", Msg: msg}
	}
	if c.Power.DimAfter.Duration <= 0 {
		return bad("power.dim_after must be positive")
	}
	if c.Power.SleepAfter.Duration <= c.Power.DimAfter.Duration {
		return bad("power.dim_after must be shorter than power.sleep_after")
	}
	if c.Display.TickPeriod.Duration <= 0 {
		return bad("display.tick_period must be positive")
	}
	if c.Display.MergeThresholdPct < 100 || c.Display.MergeThresholdPct > 500 {
		return bad("display.merge_threshold_pct outside 100..500")
	}
	if c.Display.MaxRegions < 1 || c.Display.MaxRegions > 64 {
		return bad("display.max_regions outside 1..64")
	}
	if c.Time.SkewBound.Duration <= 0 {
		return bad("time.skew_bound must be positive")
	}
	if c.Time.StaleAfter.Duration <= 0 {
		return bad("time.stale_after must be positive")
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return bad("location.latitude outside -90..90")
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return bad("location.longitude outside -180..180")
	}
	if c.Input.DragThreshold <= 0 || c.Input.DragThreshold > 1<<14 {
		return bad("input.drag_threshold outside 1..16384")
	}
	if c.Input.SleepDrag <= c.Input.DragThreshold {
		return bad("input.sleep_drag must exceed input.drag_threshold")
	}
	if c.Weather.Refresh.Duration <= 0 {
		return bad("weather.refresh must be positive")
	}
	if c.Net.SyncInterval.Duration <= 0 {
		return bad("net.sync_interval must be positive")
	}
	return nil
}

// Publish emits each section as a retained message under config/<name>.
// Synchronous: by the time it returns, late subscribers see everything.
func Publish(conn *bus.Connection, c Config) {
	sections := []struct {
		name    string
		payload any
	}{
		{"net", c.Net},
		{"location", c.Location},
		{"time", c.Time},
		{"power", c.Power},
		{"display", c.Display},
		{"input", c.Input},
		{"weather", c.Weather},
	}
	for _, s := range sections {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, s.name), s.payload, true))
	}
}

// -----------------------------------------------------------------------------
// Component bindings
// -----------------------------------------------------------------------------

func (c Config) FrameOptions() framebuf.Options {
	return framebuf.Options{
		MergeThresholdPct: uint16(c.Display.MergeThresholdPct),
		MaxRegions:        c.Display.MaxRegions,
	}
}

func (c Config) TimeConfig() timekeep.Config {
	return timekeep.Config{
		SkewBound:        c.Time.SkewBound.Duration,
		StaleAfter:       c.Time.StaleAfter.Duration,
		UTCOffsetMinutes: c.Time.UTCOffsetMinutes,
	}
}

func (c Config) PowerConfig() powerctl.Config {
	return powerctl.Config{
		DimAfter:     c.Power.DimAfter.Duration,
		SleepAfter:   c.Power.SleepAfter.Duration,
		WakeOnMinute: c.Power.WakeOnMinute,
	}
}

func (c Config) InputConfig() inputroute.Config {
	return inputroute.Config{
		DebounceWindow: c.Input.DebounceWindow.Duration,
		DragThreshold:  int16(c.Input.DragThreshold),
		SleepDrag:      int16(c.Input.SleepDrag),
	}
}
