// bus/cmd/selftest/main.go
package main

import (
	"time"

	"wristcode-go/bus"
	"wristcode-go/types"
	"wristcode-go/x/fmtx"
)

// Exercises the message bus the way the watch uses it: retained
// telemetry, wildcard taps, overflow under a slow consumer. Runs on
// device over the serial console or directly on a host.

func logf(format string, a ...any) { println(fmtx.Sprintf(format, a...)) }

// Delivery is synchronous, so after Publish returns the message is in
// the queue or was dropped; no waiting needed.
func tryRecv(sub *bus.Subscription) (*bus.Message, bool) {
	select {
	case m := <-sub.Channel():
		return m, true
	default:
		return nil, false
	}
}

func expectNone(sub *bus.Subscription, name string) bool {
	if m, ok := tryRecv(sub); ok {
		logf("%s: unexpected message on %v", name, m.Topic)
		return false
	}
	return true
}

// --- individual tests (return bool pass/fail) --------------------------------

func TestBasicPubSub() bool {
	b := bus.NewBus(4)
	c := b.NewConnection("selftest")
	sub := c.Subscribe(bus.T("telemetry", "power"))

	c.Publish(c.NewMessage(bus.T("telemetry", "power"), types.PowerStatus{State: "active"}, false))

	m, ok := tryRecv(sub)
	if !ok {
		logf("TestBasicPubSub: no delivery")
		return false
	}
	st, ok := m.Payload.(types.PowerStatus)
	if !ok || st.State != "active" {
		logf("TestBasicPubSub: bad payload")
		return false
	}
	return true
}

func TestRetainedReplay() bool {
	b := bus.NewBus(4)
	c := b.NewConnection("selftest")

	c.Publish(c.NewMessage(bus.T("telemetry", "battery"), types.BatteryStatus{Percent: 80}, true))

	sub := c.Subscribe(bus.T("telemetry", "battery"))
	m, ok := tryRecv(sub)
	if !ok {
		logf("TestRetainedReplay: no replay to late subscriber")
		return false
	}
	st, ok := m.Payload.(types.BatteryStatus)
	if !ok || st.Percent != 80 {
		logf("TestRetainedReplay: bad payload")
		return false
	}
	return true
}

func TestRetainedClear() bool {
	b := bus.NewBus(4)
	c := b.NewConnection("selftest")

	c.Publish(c.NewMessage(bus.T("telemetry", "weather"), "payload", true))
	c.Publish(c.NewMessage(bus.T("telemetry", "weather"), nil, true))

	sub := c.Subscribe(bus.T("telemetry", "weather"))
	return expectNone(sub, "TestRetainedClear")
}

func TestSingleLevelWildcard() bool {
	b := bus.NewBus(8)
	c := b.NewConnection("selftest")

	sAny := c.Subscribe(bus.T("telemetry", bus.Plus))
	sOther := c.Subscribe(bus.T("config", bus.Plus))

	c.Publish(c.NewMessage(bus.T("telemetry", "time"), "fix", false))

	m, ok := tryRecv(sAny)
	if !ok {
		logf("TestSingleLevelWildcard: telemetry/+ missed")
		return false
	}
	if s, _ := m.Payload.(string); s != "fix" {
		logf("TestSingleLevelWildcard: bad payload")
		return false
	}
	if !expectNone(sOther, "TestSingleLevelWildcard") {
		return false
	}

	// Plus matches exactly one token, not two.
	c.Publish(c.NewMessage(bus.T("telemetry", "time", "detail"), "deep", false))
	return expectNone(sAny, "TestSingleLevelWildcard deep")
}

func TestMultiLevelWildcard() bool {
	b := bus.NewBus(8)
	c := b.NewConnection("selftest")

	s := c.Subscribe(bus.T("telemetry", bus.Hash))

	for _, topic := range []bus.Topic{
		bus.T("telemetry"),
		bus.T("telemetry", "power"),
		bus.T("telemetry", "display", "frames"),
	} {
		c.Publish(c.NewMessage(topic, "x", false))
		if _, ok := tryRecv(s); !ok {
			logf("TestMultiLevelWildcard: missed %v", topic)
			return false
		}
	}

	c.Publish(c.NewMessage(bus.T("config", "power"), "y", false))
	return expectNone(s, "TestMultiLevelWildcard")
}

func TestRetainedWildcardReplay() bool {
	b := bus.NewBus(8)
	c := b.NewConnection("selftest")

	c.Publish(c.NewMessage(bus.T("config", "power"), "p", true))
	c.Publish(c.NewMessage(bus.T("config", "input"), "i", true))
	c.Publish(c.NewMessage(bus.T("telemetry", "power"), "t", true))

	sub := c.Subscribe(bus.T("config", bus.Hash))
	got := 0
	for {
		m, ok := tryRecv(sub)
		if !ok {
			break
		}
		if s, _ := m.Payload.(string); s == "t" {
			logf("TestRetainedWildcardReplay: replayed foreign branch")
			return false
		}
		got++
	}
	if got != 2 {
		logf("TestRetainedWildcardReplay: replayed %d retained, want 2", got)
		return false
	}
	return true
}

func TestOverflowDropsOldest() bool {
	b := bus.NewBus(2)
	c := b.NewConnection("selftest")
	sub := c.Subscribe(bus.T("telemetry", "display"))

	for i := 1; i <= 3; i++ {
		c.Publish(c.NewMessage(bus.T("telemetry", "display"), i, false))
	}

	m1, ok1 := tryRecv(sub)
	m2, ok2 := tryRecv(sub)
	if !ok1 || !ok2 {
		logf("TestOverflowDropsOldest: queue drained early")
		return false
	}
	v1, _ := m1.Payload.(int)
	v2, _ := m2.Payload.(int)
	if v1 != 2 || v2 != 3 {
		logf("TestOverflowDropsOldest: kept %v, %v, want 2, 3", m1.Payload, m2.Payload)
		return false
	}
	return expectNone(sub, "TestOverflowDropsOldest")
}

func TestIntTokenTopics() bool {
	b := bus.NewBus(4)
	c := b.NewConnection("selftest")
	sub := c.Subscribe(bus.T("view", 2))

	c.Publish(c.NewMessage(bus.T("view", 2), "info", false))
	c.Publish(c.NewMessage(bus.T("view", 1), "weather", false))

	m, ok := tryRecv(sub)
	if !ok {
		logf("TestIntTokenTopics: int token did not match")
		return false
	}
	if s, _ := m.Payload.(string); s != "info" {
		logf("TestIntTokenTopics: wrong view payload")
		return false
	}
	return expectNone(sub, "TestIntTokenTopics")
}

func TestInvalidTokenPanics() (ok bool) {
	defer func() {
		if recover() == nil {
			logf("TestInvalidTokenPanics: expected panic, got none")
			ok = false
		} else {
			ok = true
		}
	}()
	_ = bus.T([]byte{1, 2, 3}) // not comparable; must panic in T
	return false
}

// --- main: run all tests and report -------------------------------------------

type testFn struct {
	name string
	fn   func() bool
}

func main() {
	// Give the USB CDC time to enumerate so logs show up reliably.
	time.Sleep(250 * time.Millisecond)

	tests := []testFn{
		{"TestBasicPubSub", TestBasicPubSub},
		{"TestRetainedReplay", TestRetainedReplay},
		{"TestRetainedClear", TestRetainedClear},
		{"TestSingleLevelWildcard", TestSingleLevelWildcard},
		{"TestMultiLevelWildcard", TestMultiLevelWildcard},
		{"TestRetainedWildcardReplay", TestRetainedWildcardReplay},
		{"TestOverflowDropsOldest", TestOverflowDropsOldest},
		{"TestIntTokenTopics", TestIntTokenTopics},
		{"TestInvalidTokenPanics", TestInvalidTokenPanics},
	}

	passed, failed := 0, 0
	println("== bus self-test starting ==")
	for _, tc := range tests {
		if tc.fn() {
			logf("[PASS] %s", tc.name)
			passed++
		} else {
			logf("[FAIL] %s", tc.name)
			failed++
		}
	}
	logf("== done: %d passed, %d failed ==", passed, failed)
}
