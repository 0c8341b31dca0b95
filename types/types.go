// Package types holds the payloads the loop publishes on the bus, kept
// separate so tools and tests can subscribe without importing services.
package types

// ------------------------
// Loop telemetry (retained)
// ------------------------

// Retained value: telemetry/power
type PowerStatus struct {
	State  string `json:"state"` // "active" | "dimmed" | "sleeping"
	IdleMs int64  `json:"idle_ms"`
}

// Retained value: telemetry/time
type TimeStatus struct {
	Unix          int64  `json:"unix"`
	Confidence    string `json:"confidence"` // "unsynced" | "rtc" | "synced" | "stale"
	OffsetMinutes int    `json:"offset_minutes"`
}

// Retained value: telemetry/battery
type BatteryStatus struct {
	Percent     uint8 `json:"percent"`
	MilliV      int32 `json:"mV"`
	Charging    bool  `json:"charging"`
	VBusPresent bool  `json:"vbus_present"`
}

// Retained value: telemetry/display
type DisplayStatus struct {
	Degraded bool   `json:"degraded"`
	View     string `json:"view"`
	Frames   uint32 `json:"frames"`  // flushes since boot
	Regions  uint32 `json:"regions"` // window writes since boot
}

// Retained value: telemetry/weather
type WeatherStatus struct {
	Temperature float64 `json:"temp"`
	Code        int     `json:"wmo_code"`
	Label       string  `json:"label"`
	AgeMs       int64   `json:"age_ms"`
	Stale       bool    `json:"stale"`
}
