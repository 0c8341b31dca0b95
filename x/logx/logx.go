// Package logx is a small leveled logger for the firmware loop. Lines go
// to the console via println and, when a ring is attached, into it so the
// crash path can replay the tail. Each line carries milliseconds since
// the logger was built, so the tail stays ordered across a fault.
package logx

import (
	"time"

	"wristcode-go/x/conv"
	"wristcode-go/x/fmtx"
	"wristcode-go/x/logring"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	levelOff
)

func (l Level) tag() string {
	switch l {
	case LevelDebug:
		return "Debug:"
	case LevelInfo:
		return "Info:"
	case LevelWarn:
		return "Warn:"
	case LevelError:
		return "Error:"
	}
	return "?:"
}

func ParseLevel(s string) (Level, bool) {
	switch s {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// Logger is nil-safe: calls on a nil *Logger are dropped.
type Logger struct {
	min     Level
	ring    *logring.Ring
	console bool
	epoch   time.Time
}

// New returns a logger emitting at or above min. ring may be nil.
func New(min Level, ring *logring.Ring) *Logger {
	return &Logger{min: min, ring: ring, console: true, epoch: time.Now()}
}

// NewRingOnly logs into ring without console output. Used by tests and
// by builds where the console shares the panel.
func NewRingOnly(min Level, ring *logring.Ring) *Logger {
	return &Logger{min: min, ring: ring, epoch: time.Now()}
}

func (l *Logger) Debugf(format string, a ...any) { l.emit(LevelDebug, format, a...) }
func (l *Logger) Infof(format string, a ...any)  { l.emit(LevelInfo, format, a...) }
func (l *Logger) Warnf(format string, a ...any)  { l.emit(LevelWarn, format, a...) }
func (l *Logger) Errorf(format string, a ...any) { l.emit(LevelError, format, a...) }

func (l *Logger) emit(lv Level, format string, a ...any) {
	if l == nil || lv < l.min {
		return
	}
	var tb [20]byte
	stamp := conv.Itoa(tb[:], time.Since(l.epoch).Milliseconds())
	msg := fmtx.Sprintf(format, a...)
	if l.console {
		println(lv.tag(), string(stamp), msg)
	}
	if l.ring != nil {
		line := make([]byte, 0, len(lv.tag())+1+len(stamp)+1+len(msg)+1)
		line = append(line, lv.tag()...)
		line = append(line, ' ')
		line = append(line, stamp...)
		line = append(line, ' ')
		line = append(line, msg...)
		line = append(line, '\n')
		l.ring.Write(line)
	}
}
