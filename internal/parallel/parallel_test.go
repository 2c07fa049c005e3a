package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_EachIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	hits := make([]int32, 37)
	For(len(hits), func(i int) {
		atomic.AddInt32(&hits[i], 1)
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d visited %d times", i, h)
		}
	}
}

func TestForGrid(t *testing.T) {
	cfg := DefaultConfig()

	rows, cols := 4, 8
	results := make([][]bool, rows)
	for r := range results {
		results[r] = make([]bool, cols)
	}

	ForGrid(rows, cols, func(r, c int) {
		results[r][c] = true
	}, cfg)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !results[r][c] {
				t.Errorf("Missing result at [%d][%d]", r, c)
			}
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Sequential()

	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, cfg)

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential order broken: %v", order)
		}
	}
}

func TestForEach_IsolatesErrors(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}

	var done int64
	errs := ForEach(10, func(i int) error {
		atomic.AddInt64(&done, 1)
		if i%4 == 1 {
			return fmt.Errorf("item %d failed", i)
		}
		return nil
	}, cfg)

	if done != 10 {
		t.Fatalf("expected all 10 items to run, got %d", done)
	}
	for i, err := range errs {
		wantErr := i%4 == 1
		if (err != nil) != wantErr {
			t.Errorf("item %d: err=%v, wantErr=%v", i, err, wantErr)
		}
	}
}

func TestForEach_Sequential(t *testing.T) {
	sentinel := errors.New("boom")
	errs := ForEach(2, func(i int) error {
		if i == 0 {
			return sentinel
		}
		return nil
	}, Sequential())

	if !errors.Is(errs[0], sentinel) || errs[1] != nil {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestWithWorkers(t *testing.T) {
	cfg := Sequential().WithWorkers(4)
	if !cfg.Enabled || cfg.NumWorkers != 4 {
		t.Errorf("WithWorkers(4) = %+v", cfg)
	}
	if got := cfg.WithWorkers(0); got != cfg {
		t.Errorf("WithWorkers(0) changed config: %+v", got)
	}
	if got := cfg.WithWorkers(1); got.Enabled {
		t.Errorf("WithWorkers(1) should disable parallelism: %+v", got)
	}
}
