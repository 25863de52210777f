package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/api/metrics"
	"github.com/communityos/eventhub/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes door scans to a fixed set of workers using consistent
// hashing on the event id, guaranteeing per-event scan ordering.
type Dispatcher struct {
	workers []chan ports.CheckinScanInput
	service ports.CheckinService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.CheckinService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.CheckinScanInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.CheckinScanInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a scan to the worker responsible for its event.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(scan ports.CheckinScanInput) {
	i := d.shardIndex(scan.EventID)
	d.workers[i] <- scan
	metrics.CheckinQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple scans preserving per-event ordering.
func (d *Dispatcher) EnqueueBatch(scans []ports.CheckinScanInput) {
	for _, s := range scans {
		d.Enqueue(s)
	}
}

// shardIndex maps an event id deterministically to a worker index.
func (d *Dispatcher) shardIndex(eventID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.CheckinScanInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case scan, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := d.service.Process(ctx, scan)
			metrics.CheckinQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err != nil {
				metrics.CheckinErrorsTotal.WithLabelValues("process_failed").Inc()
				metrics.CheckinProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Str("event_id", scan.EventID).
					Str("user_id", scan.UserID).
					Int("worker_id", id).
					Msg("scan processing failed")
				continue
			}
			metrics.CheckinsProcessedTotal.WithLabelValues(scan.Source).Inc()
			metrics.CheckinProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
		}
	}
}
