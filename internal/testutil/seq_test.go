package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqCounter_StartsAtZero(t *testing.T) {
	c := NewSeqCounter()
	assert.Equal(t, int64(0), c.Current())
}

func TestSeqCounter_NextIncrementsMonotonically(t *testing.T) {
	c := NewSeqCounter()

	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Next())
	assert.Equal(t, int64(3), c.Current())
}

func TestSeqCounter_Reset(t *testing.T) {
	c := NewSeqCounter()
	c.Next()
	c.Next()

	c.Reset()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
}

func TestSeqCounter_ThreadSafe(t *testing.T) {
	c := NewSeqCounter()
	const goroutines = 50
	const callsEach = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)

	results := make([][]int64, goroutines)
	for i := 0; i < goroutines; i++ {
		results[i] = make([]int64, callsEach)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				results[idx][j] = c.Next()
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i := 0; i < goroutines; i++ {
		for j := 0; j < callsEach; j++ {
			v := results[i][j]
			require.False(t, seen[v], "duplicate value %d", v)
			seen[v] = true
		}
	}
	assert.Len(t, seen, goroutines*callsEach)
}
