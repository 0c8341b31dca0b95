package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"bare code", BusTimeout, BusTimeout},
		{"wrapped", &E{C: OutOfBounds, Op: "framebuf.Write"}, OutOfBounds},
		{"foreign", errors.New("boom"), Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.err); got != tt.want {
				t.Fatalf("Of(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestEMessage(t *testing.T) {
	e := &E{C: Nack, Msg: "reg 0x51"}
	if got, want := e.Error(), "nack: reg 0x51"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	cause := errors.New("io fail")
	e2 := &E{C: BusTimeout, Err: cause}
	if !errors.Is(e2, cause) {
		t.Fatalf("Unwrap chain lost the cause")
	}
}

func TestFromBus(t *testing.T) {
	if got := FromBus(nil); got != OK {
		t.Fatalf("FromBus(nil) = %v, want %v", got, OK)
	}
	if got := FromBus(errors.New("i2c timeout waiting for ack")); got != BusTimeout {
		t.Fatalf("timeout error mapped to %v, want %v", got, BusTimeout)
	}
	if got := FromBus(errors.New("device did not respond")); got != Nack {
		t.Fatalf("generic error mapped to %v, want %v", got, Nack)
	}
	if got := FromBus(&E{C: Busy}); got != Busy {
		t.Fatalf("coded error remapped to %v, want %v", got, Busy)
	}
}
