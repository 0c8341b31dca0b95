package logring

import (
	"bytes"
	"testing"
)

func TestWriteBelowCapacity(t *testing.T) {
	r := New(16)
	n, err := r.Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Fatalf("Write = (%d, %v), want (3, nil)", n, err)
	}
	if got := r.Snapshot(nil); !bytes.Equal(got, []byte("abc")) {
		t.Fatalf("Snapshot = %q, want %q", got, "abc")
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
}

func TestOverwriteKeepsNewest(t *testing.T) {
	r := New(8)
	r.Write([]byte("0123456"))
	r.Write([]byte("789"))
	// 10 bytes through an 8-byte ring: newest 8 survive.
	want := []byte("23456789")
	if got := r.Snapshot(nil); !bytes.Equal(got, want) {
		t.Fatalf("Snapshot = %q, want %q", got, want)
	}
	if r.Len() != 8 {
		t.Fatalf("Len = %d, want 8", r.Len())
	}
}

func TestOversizeWriteKeepsTailWindow(t *testing.T) {
	r := New(4)
	r.Write([]byte("abcdefgh"))
	if got := r.Snapshot(nil); !bytes.Equal(got, []byte("efgh")) {
		t.Fatalf("Snapshot = %q, want %q", got, "efgh")
	}
}

func TestWrapAcrossBoundaryManyTimes(t *testing.T) {
	r := New(8)
	var want []byte
	for i := 0; i < 40; i++ {
		p := []byte{byte('a' + i%26), byte('0' + i%10)}
		r.Write(p)
		want = append(want, p...)
	}
	want = want[len(want)-8:]
	if got := r.Snapshot(nil); !bytes.Equal(got, want) {
		t.Fatalf("Snapshot = %q, want %q", got, want)
	}
}

func TestTail(t *testing.T) {
	r := New(16)
	r.Write([]byte("hello world"))
	if got := r.Tail(nil, 5); !bytes.Equal(got, []byte("world")) {
		t.Fatalf("Tail(5) = %q, want %q", got, "world")
	}
	if got := r.Tail(nil, 64); !bytes.Equal(got, []byte("hello world")) {
		t.Fatalf("Tail(64) = %q, want %q", got, "hello world")
	}
}

func TestReset(t *testing.T) {
	r := New(8)
	r.Write([]byte("abc"))
	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", r.Len())
	}
	if got := r.Snapshot(nil); len(got) != 0 {
		t.Fatalf("Snapshot after Reset = %q, want empty", got)
	}
}

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("New(12) did not panic")
		}
	}()
	New(12)
}
