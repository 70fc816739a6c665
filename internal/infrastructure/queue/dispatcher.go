package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storelinker/marketplace/internal/pkg/metrics"
	"github.com/storelinker/marketplace/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	persistTimeout = 5 * time.Second
)

// Recorder persists a single activity event.
type Recorder interface {
	Record(ctx context.Context, ev domain.ActivityEvent) error
}

// Dispatcher fans activity events out to a fixed set of workers, sharded by
// actor so that one account's events are written in publish order.
type Dispatcher struct {
	workers  []chan domain.ActivityEvent
	recorder Recorder
	log      zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder Recorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.ActivityEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. Writes inherit ctx values but not its
// cancellation, so queued events still drain during Shutdown.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Publish queues ev without blocking. When the actor's worker is full, or
// the dispatcher is shut down, the event is dropped and counted.
func (d *Dispatcher) Publish(ev domain.ActivityEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.ActivityDroppedTotal.Inc()
		return
	}

	idx := d.shardIndex(ev.ActorID)
	select {
	case d.workers[idx] <- ev:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("actor_id", ev.ActorID).
			Str("action", string(ev.Action)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// Shutdown stops intake and waits for queued events to be written, or for
// ctx to expire. It is safe to call more than once.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

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

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))

	for ev := range ch {
		depth.Set(float64(len(ch)))
		d.persist(ctx, id, ev)
	}
	depth.Set(0)
}

func (d *Dispatcher) persist(ctx context.Context, workerID int, ev domain.ActivityEvent) {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	start := time.Now()
	err := d.recorder.Record(ctx, ev)
	result := "ok"
	if err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("actor_id", ev.ActorID).
			Str("action", string(ev.Action)).
			Int("worker_id", workerID).
			Msg("activity persistence failed")
	}
	metrics.ActivityPersistDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
