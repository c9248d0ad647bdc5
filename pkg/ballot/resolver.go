package ballot

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/silenceper/pool"
)

const (
	// initial number of random sources in the pool
	poolInitCap = 0
	// maximum time a random source can stay idle before it is dropped, zero keeps it forever
	poolMaxIdleTime = 0
)

// NewResolver creates a vote resolver for ballot.
// size is the number of callers drawing at the same time, one source is kept per caller.
// A zero seed seeds the sources from the clock.
func NewResolver(b Ballot, seed int64, size int, logger *slog.Logger) (*Resolver, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("new resolver, %w", err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("new resolver, size must be positive")
	}
	if logger == nil {
		return nil, fmt.Errorf("new resolver, logger is nil")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Resolver{
		ballot: b,
		logger: logger.With("component", "resolver"),
	}
	r.seed.Store(seed)

	poolConfig := &pool.Config{
		InitialCap:  poolInitCap,
		MaxIdle:     size,
		MaxCap:      size,
		IdleTimeout: poolMaxIdleTime * time.Second,
		Factory: func() (interface{}, error) {
			s := r.seed.Add(1)
			r.logger.Debug("new random source", "seed", s)
			return rand.New(rand.NewSource(s)), nil
		},
		Close: func(interface{}) error { return nil },
	}
	p, err := pool.NewChannelPool(poolConfig)
	if err != nil {
		return nil, fmt.Errorf("new resolver, %w", err)
	}
	r.sources = p

	return r, nil
}

// Resolver draws votes. It is safe for concurrent use, each draw borrows a
// random source from a pool so callers never share one.
type Resolver struct {
	ballot Ballot
	// sources holds *rand.Rand
	sources pool.Pool
	// seed is the seed of the last source created
	seed   atomic.Int64
	logger *slog.Logger
}

// Ballot returns the ballot the resolver maps draws onto.
func (r *Resolver) Ballot() Ballot {
	return r.ballot
}

// Resolve draws a uniform value in [0,1) and returns the candidate it maps to.
func (r *Resolver) Resolve() (string, error) {
	src, err := r.sources.Get()
	if err != nil {
		return "", fmt.Errorf("resolve vote, can not get random source: %w", err)
	}
	draw := src.(*rand.Rand).Float64()

	if err := r.sources.Put(src); err != nil {
		r.logger.Warn("failed to put random source back to pool", "error", err.Error())
	}

	return r.ballot.Candidate(draw), nil
}

// Release closes the pool, later calls to Resolve fail.
func (r *Resolver) Release() {
	r.sources.Release()
}
