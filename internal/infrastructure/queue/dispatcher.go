package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fullstacklabs/identity-api/internal/api/metrics"
	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the subject key, so events for one account are recorded in the
// order they happened. Submit never blocks: when a worker channel is full
// the event is dropped and counted.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Submit satisfies ports.AuditSink.
func (d *Dispatcher) Submit(event domain.AuthEvent) {
	idx := d.shardIndex(event.SubjectKey)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("subject_key", event.SubjectKey).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a subject key deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectKey))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			insertCtx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			err := d.repo.Insert(insertCtx, event)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("subject_key", event.SubjectKey).
					Int("worker_id", id).
					Msg("audit event persistence failed")
			}
		}
	}
}
