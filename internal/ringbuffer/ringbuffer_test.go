package ringbuffer

import (
	"math/rand"
	"testing"
	"time"
)

func TestReadWriteFIFO(t *testing.T) {
	b := New(16)
	src := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	if err := b.Write(src, time.Second); err != nil {
		t.Fatalf("write: %v", err)
	}
	dst := make([]float32, len(src))
	if err := b.Read(dst, time.Second); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("fifo order broken at %d: got %v want %v", i, dst[i], src[i])
		}
	}
}

func TestWriteBlocksUntilSpace(t *testing.T) {
	b := New(4)
	if err := b.Write([]float32{1, 2, 3, 4}, time.Second); err != nil {
		t.Fatalf("fill: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- b.Write([]float32{5}, time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	out := make([]float32, 1)
	if err := b.Read(out, time.Second); err != nil {
		t.Fatalf("drain: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("blocked write failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("write never unblocked after space freed")
	}
}

func TestReadTimesOutOnStarvation(t *testing.T) {
	b := New(8)
	dst := make([]float32, 4)
	err := b.Read(dst, 10*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if _, ok := err.(*ErrTimeout); !ok {
		t.Fatalf("expected *ErrTimeout, got %T", err)
	}
}

func TestRandomizedInterleaving(t *testing.T) {
	const total = 20000
	b := New(64)
	src := make([]float32, total)
	for i := range src {
		src[i] = float32(i)
	}

	errc := make(chan error, 2)
	go func() {
		r := rand.New(rand.NewSource(1))
		pos := 0
		for pos < total {
			n := 1 + r.Intn(31)
			if pos+n > total {
				n = total - pos
			}
			if err := b.Write(src[pos:pos+n], 5*time.Second); err != nil {
				errc <- err
				return
			}
			pos += n
		}
		errc <- nil
	}()

	go func() {
		r := rand.New(rand.NewSource(2))
		pos := 0
		dst := make([]float32, total)
		for pos < total {
			n := 1 + r.Intn(31)
			if pos+n > total {
				n = total - pos
			}
			if err := b.Read(dst[pos:pos+n], 5*time.Second); err != nil {
				errc <- err
				return
			}
			pos += n
		}
		for i := range dst {
			if dst[i] != src[i] {
				errc <- errTamper(i)
				return
			}
		}
		errc <- nil
	}()

	for i := 0; i < 2; i++ {
		if err := <-errc; err != nil {
			t.Fatalf("interleaving failed: %v", err)
		}
	}
}

type errTamper int

func (e errTamper) Error() string { return "mismatch at index" }
