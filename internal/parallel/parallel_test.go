package parallel

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFor(t *testing.T) {
	cfg := DefaultConfig().WithWorkers(4)

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestFor_EachIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3}

	seen := make([]int32, 50)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, c := range seen {
		assert.Equal(t, int32(1), c, "index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false, NumWorkers: 8}

	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, cfg)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, func(_ int) { called = true }, DefaultConfig().WithWorkers(4))
	assert.False(t, called)
}

func TestConfig_WithWorkers(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8}

	assert.Equal(t, Config{Enabled: false, NumWorkers: 1}, cfg.WithWorkers(1))
	assert.Equal(t, Config{Enabled: true, NumWorkers: 2}, cfg.WithWorkers(2))
	assert.Equal(t, cfg, cfg.WithWorkers(0))
}

func TestMap_KeepsOrder(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4}

	results := Map(20, func(i int) (string, error) {
		if i%7 == 3 {
			return "", fmt.Errorf("job %d failed", i)
		}
		return fmt.Sprintf("job-%d", i), nil
	}, cfg)

	require.Len(t, results, 20)
	for i, r := range results {
		if i%7 == 3 {
			assert.EqualError(t, r.Err, fmt.Sprintf("job %d failed", i))
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, fmt.Sprintf("job-%d", i), r.Value)
	}
}

func BenchmarkFor(b *testing.B) {
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfg := Config{Enabled: false}
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, cfg)
		}
	})
}
