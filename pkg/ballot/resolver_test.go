package ballot

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danl5/govote/pkg/log"
)

func TestNewResolver(t *testing.T) {
	_, err := NewResolver(Ballot{}, 1, 1, log.Discard())
	assert.Error(t, err)

	_, err = NewResolver(Default(), 1, 0, log.Discard())
	assert.Error(t, err)

	_, err = NewResolver(Default(), 1, 1, nil)
	assert.Error(t, err)

	r, err := NewResolver(Default(), 0, 1, log.Discard())
	require.NoError(t, err)
	r.Release()
}

func TestResolver_ConcurrentDraws(t *testing.T) {
	const (
		workers = 4
		draws   = 20000
	)
	r, err := NewResolver(Default(), 11, workers, log.Discard())
	require.NoError(t, err)
	defer r.Release()

	var (
		mu     sync.Mutex
		counts = make(map[string]int)
		wg     sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make(map[string]int)
			for i := 0; i < draws; i++ {
				c, err := r.Resolve()
				if !assert.NoError(t, err) {
					return
				}
				local[c]++
			}
			mu.Lock()
			defer mu.Unlock()
			for c, n := range local {
				counts[c] += n
			}
		}()
	}
	wg.Wait()

	samples := workers * draws
	tolerance := 4 * math.Sqrt(0.25/float64(samples))
	for _, rg := range r.Ballot() {
		got := float64(counts[rg.Candidate]) / float64(samples)
		assert.InDelta(t, rg.Width(), got, tolerance, "candidate %s", rg.Candidate)
	}
}

func TestResolver_Released(t *testing.T) {
	r, err := NewResolver(Default(), 3, 1, log.Discard())
	require.NoError(t, err)

	_, err = r.Resolve()
	require.NoError(t, err)

	r.Release()
	_, err = r.Resolve()
	assert.Error(t, err)
}
