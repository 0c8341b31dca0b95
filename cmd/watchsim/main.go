// cmd/watchsim/main.go
//go:build !tinygo

// Runs the whole firmware loop against the simulated board, scripts a
// wearer session (view taps, idle to dim and sleep, a wake tap, a bus
// fault) and dumps the retained telemetry after each step.
package main

import (
	"context"
	"fmt"
	"time"

	"wristcode-go/bus"
	"wristcode-go/framebuf"
	"wristcode-go/platform"
	"wristcode-go/services/config"
	"wristcode-go/services/orchestrator"
	"wristcode-go/x/logring"
	"wristcode-go/x/logx"
)

// ---------- Configuration ----------

// Sim timing: compressed so one run shows the full dim/sleep/wake cycle
// in seconds instead of minutes.
const (
	simTickPeriod = 100 * time.Millisecond
	simDimAfter   = 2 * time.Second
	simSleepAfter = 5 * time.Second
	simSleepPoll  = 500 * time.Millisecond

	settle = 600 * time.Millisecond
)

func simConfig() config.Config {
	cfg := config.Defaults()
	cfg.Display.TickPeriod = config.Duration{Duration: simTickPeriod}
	cfg.Display.SleepPoll = config.Duration{Duration: simSleepPoll}
	cfg.Power.DimAfter = config.Duration{Duration: simDimAfter}
	cfg.Power.SleepAfter = config.Duration{Duration: simSleepAfter}
	cfg.Location.Latitude = 51.5072
	cfg.Location.Longitude = -0.1276
	return cfg
}

// ---------- Telemetry dump ----------

func topicString(t bus.Topic) string {
	s := ""
	for i, p := range t {
		if i > 0 {
			s += "/"
		}
		s += fmt.Sprint(p)
	}
	return s
}

// dumpTelemetry subscribes fresh so the retained slots replay, then
// drains whatever arrives promptly.
func dumpTelemetry(ui *bus.Connection) {
	sub := ui.Subscribe(bus.T("telemetry", bus.Hash))
	defer ui.Unsubscribe(sub)

	dead := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(dead) {
		select {
		case m := <-sub.Channel():
			fmt.Printf("  %-20s %+v\n", topicString(m.Topic), m.Payload)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func step(name string) {
	fmt.Println("=== watchsim:", name, "===")
}

// ---------- Main ----------

func main() {
	cfg := simConfig()
	ring := logring.New(4096)
	log := logx.New(logx.LevelInfo, ring)

	dev, sim := platform.OpenSim(cfg, log)
	fb := framebuf.New(platform.PanelWidth, platform.PanelHeight, cfg.FrameOptions())

	b := bus.NewBus(16)
	config.Publish(b.NewConnection("config"), cfg)
	ui := b.NewConnection("watchsim")

	svc := orchestrator.New(cfg, dev, fb, b.NewConnection("loop"), log)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(settle)
	step("boot")
	dumpTelemetry(ui)

	step("tap to weather view")
	sim.Touch.Tap(200, 250)
	time.Sleep(settle)
	dumpTelemetry(ui)

	step("tap to info view")
	sim.Touch.Tap(200, 250)
	time.Sleep(settle)
	dumpTelemetry(ui)

	step("idle through dim into sleep")
	time.Sleep(simSleepAfter + time.Second)
	st := sim.Panel.Stats()
	fmt.Printf("  panel: asleep=%v brightness=%#x\n", st.Asleep, st.Brightness)
	dumpTelemetry(ui)

	step("tap to wake")
	sim.Touch.Tap(200, 250)
	time.Sleep(simSleepPoll + settle)
	st = sim.Panel.Stats()
	fmt.Printf("  panel: asleep=%v brightness=%#x\n", st.Asleep, st.Brightness)
	dumpTelemetry(ui)

	step("panel bus fault")
	sim.Panel.FailNextWrites(2)
	time.Sleep(2 * time.Second) // seconds patch keeps the flusher busy
	dumpTelemetry(ui)

	cancel()
	<-done

	st = sim.Panel.Stats()
	fmt.Println("=== watchsim: summary ===")
	fmt.Printf("  window writes: %d (%d full frame), %d bytes\n", st.Writes, st.FullWrites, st.Bytes)
	fmt.Printf("  rtc offset vs host: %v\n", sim.RTC.Offset().Round(time.Millisecond))
	fmt.Println("done")
}
