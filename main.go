package main

import (
	"context"
	"time"

	"wristcode-go/bus"
	"wristcode-go/face"
	"wristcode-go/framebuf"
	"wristcode-go/platform"
	"wristcode-go/services/config"
	"wristcode-go/services/orchestrator"
	"wristcode-go/x/fmtx"
	"wristcode-go/x/logring"
	"wristcode-go/x/logx"
)

const device = "watch"

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	ring := logring.New(4096)
	log := logx.New(logx.LevelInfo, ring)
	log.Infof("boot: %s", device)

	cfg, err := config.Load(device)
	if err != nil {
		// The embedded document is wrong; the watch still has to run.
		log.Errorf("config: %v, running on defaults", err)
		cfg = config.Defaults()
	}

	fb := framebuf.New(platform.PanelWidth, platform.PanelHeight, cfg.FrameOptions())
	console := face.NewConsole(fb)

	dev, err := platform.Open(cfg, log)
	if err != nil {
		log.Errorf("platform: %v", err)
		return
	}
	console.Printf("wristcode")
	console.Printf("display %dx%d ok", platform.PanelWidth, platform.PanelHeight)
	console.Printf("config %s ok", device)

	b := bus.NewBus(16)
	config.Publish(b.NewConnection("config"), cfg)

	console.Printf("starting loop")
	flushConsole(dev, fb, log)

	// The crash screen is the last thing a fault outside the loop shows;
	// tick faults are recovered inside the loop and never reach here.
	defer func() {
		if r := recover(); r != nil {
			console.CrashReport(fmtx.Sprintf("%v", r), ring)
			flushConsole(dev, fb, log)
			panic(r)
		}
	}()

	// Leave the boot text up long enough to read.
	time.Sleep(time.Second)

	svc := orchestrator.New(cfg, dev, fb, b.NewConnection("loop"), log)
	if err := svc.Run(context.Background()); err != nil {
		log.Infof("loop: %v", err)
	}
}

func flushConsole(dev orchestrator.Devices, fb *framebuf.FrameBuffer, log *logx.Logger) {
	if err := dev.Flusher.Flush(fb, fb.TakeDirty(nil)); err != nil {
		log.Warnf("console flush: %v", err)
	}
}
