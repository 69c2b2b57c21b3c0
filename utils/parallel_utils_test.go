package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		// degree is clamped to the index count, so no bucket is ever empty
		assert.Equal(t, map[int]int{1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 10000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Buckets tile [0,MaxIndex) exactly, in order
		for maxIndex := 1; maxIndex < 500; maxIndex++ {
			pm := NewPartitionMap(7, maxIndex)
			next := 0
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				assert.Equal(t, next, kMin)
				assert.True(t, kMax > kMin)
				next = kMax
			}
			assert.Equal(t, maxIndex, next)
		}
	}
}

func TestArray5D(t *testing.T) {
	a := NewArray5D(2, 3, 4, 5, 6)
	assert.Equal(t, 2*3*4*5*6, len(a.D))
	// i is the fastest index, block the slowest
	assert.Equal(t, 1, a.Index(0, 0, 0, 0, 1)-a.Index(0, 0, 0, 0, 0))
	assert.Equal(t, 6, a.Index(0, 0, 0, 1, 0))
	assert.Equal(t, 6*5, a.Index(0, 0, 1, 0, 0))
	assert.Equal(t, 6*5*4, a.Index(0, 1, 0, 0, 0))
	assert.Equal(t, 6*5*4*3, a.Index(1, 0, 0, 0, 0))

	a.Set(1, 2, 3, 4, 5, 42.)
	assert.Equal(t, 42., a.At(1, 2, 3, 4, 5))

	// Block aliases the backing store
	b := a.Block(1, 2)
	assert.Equal(t, 42., b[a.Index(0, 0, 3, 4, 5)])
	b[0] = -1.
	assert.Equal(t, -1., a.At(1, 2, 0, 0, 0))

	// Copy does not
	c := a.Copy()
	c.Set(0, 0, 0, 0, 0, 7.)
	assert.NotEqual(t, a.At(0, 0, 0, 0, 0), c.At(0, 0, 0, 0, 0))
}

func TestDualView(t *testing.T) {
	dv := NewDualView[int](4)
	assert.True(t, dv.InSync())
	dv.Host[0] = 10
	dv.Modify()
	assert.False(t, dv.InSync())
	// exec view unchanged until the explicit sync
	assert.Equal(t, 0, dv.Exec[0])
	dv.Sync()
	assert.True(t, dv.InSync())
	assert.Equal(t, 10, dv.Exec[0])
}
