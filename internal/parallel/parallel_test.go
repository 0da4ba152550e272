package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 1000
	visits := make([]int32, n)

	For(n, func(i int) {
		atomic.AddInt32(&visits[i], 1)
	}, cfg)

	for i, v := range visits {
		if v != 1 {
			t.Errorf("index %d visited %d times, want 1", i, v)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Sequential())

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
	if len(order) != 5 {
		t.Errorf("Expected 5 calls, got %d", len(order))
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Work below MinChunkSize stays on the calling goroutine.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Zero(t *testing.T) {
	called := false
	For(0, func(_ int) { called = true }, DefaultConfig())
	if called {
		t.Error("f should not be called for n = 0")
	}
}

func TestWorkers(t *testing.T) {
	if Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", Workers())
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, Sequential())
		}
	})
}
