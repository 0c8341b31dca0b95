package orchestrator

import (
	"time"

	"wristcode-go/bus"
	"wristcode-go/netx/openmeteo"
	"wristcode-go/types"
)

var (
	topicTelemetryPower   = bus.Topic{"telemetry", "power"}
	topicTelemetryTime    = bus.Topic{"telemetry", "time"}
	topicTelemetryBattery = bus.Topic{"telemetry", "battery"}
	topicTelemetryDisplay = bus.Topic{"telemetry", "display"}
	topicTelemetryWeather = bus.Topic{"telemetry", "weather"}
)

// publishTelemetry refreshes the retained telemetry topics every tick,
// so a late subscriber reads current state instead of waiting out a
// sleep poll.
func (s *Service) publishTelemetry(now time.Time) {
	if s.conn == nil {
		return
	}
	s.conn.Publish(s.conn.NewMessage(topicTelemetryPower, types.PowerStatus{
		State:  s.power.State().String(),
		IdleMs: s.power.IdleFor(now).Milliseconds(),
	}, true))

	est := s.rec.Estimate()
	ts := types.TimeStatus{
		Confidence:    est.Confidence.String(),
		OffsetMinutes: s.cfg.Time.UTCOffsetMinutes,
	}
	if est.Valid() {
		ts.Unix = est.Wall.Unix()
	}
	s.conn.Publish(s.conn.NewMessage(topicTelemetryTime, ts, true))

	if s.haveBat {
		s.conn.Publish(s.conn.NewMessage(topicTelemetryBattery, s.bat, true))
	}

	s.conn.Publish(s.conn.NewMessage(topicTelemetryDisplay, types.DisplayStatus{
		Degraded: s.dev.Flusher.Degraded(),
		View:     s.face.View().String(),
		Frames:   s.frames,
		Regions:  s.regions,
	}, true))

	if !s.wx.FetchedAt.IsZero() {
		s.conn.Publish(s.conn.NewMessage(topicTelemetryWeather, types.WeatherStatus{
			Temperature: s.wx.Temperature,
			Code:        s.wx.Code,
			Label:       openmeteo.Label(s.wx.Code),
			AgeMs:       now.Sub(s.wx.FetchedAt).Milliseconds(),
			Stale:       s.wx.Stale(now, s.cfg.Weather.Refresh.Duration),
		}, true))
	}
}
