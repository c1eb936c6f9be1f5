package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Purger removes every asset owned by an identity.
type Purger interface {
	PurgeOwner(ctx context.Context, identity string) (int, error)
}

// Dispatcher routes asset cleanup jobs to a fixed set of workers using
// consistent hashing on the identity, so cleanup for one identity never runs
// concurrently with itself.
type Dispatcher struct {
	workers []chan ports.AssetCleanup
	purger  Purger
	log     zerolog.Logger
	wg      sync.WaitGroup
	quit    chan struct{}
	once    sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, purger Purger, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AssetCleanup, numWorkers),
		purger:  purger,
		log:     log,
		quit:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AssetCleanup, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Jobs run with ctx; workers stop when
// ctx is cancelled or Shutdown is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Shutdown tells the workers to stop taking jobs and waits for the ones in
// flight to finish, or for ctx to expire. Jobs still buffered are dropped.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.once.Do(func() { close(d.quit) })
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue sends a job to the worker responsible for its identity. When that
// worker's buffer is full the job is dropped and logged rather than blocking
// the request that scheduled it.
func (d *Dispatcher) Enqueue(job ports.AssetCleanup) {
	select {
	case d.workers[d.shardIndex(job.Identity)] <- job:
	default:
		d.log.Warn().Str("username", job.Identity).Msg("cleanup queue full, job dropped")
	}
}

// shardIndex maps an identity deterministically to a worker index.
func (d *Dispatcher) shardIndex(identity string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identity))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AssetCleanup) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.quit:
			return
		case job := <-ch:
			removed, err := d.purger.PurgeOwner(ctx, job.Identity)
			if err != nil {
				d.log.Error().Err(err).
					Str("username", job.Identity).
					Int("worker_id", id).
					Msg("asset cleanup failed")
				continue
			}
			d.log.Info().
				Str("username", job.Identity).
				Int("removed", removed).
				Int("worker_id", id).
				Msg("asset cleanup done")
		}
	}
}
