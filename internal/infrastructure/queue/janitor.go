package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cardly/business-card-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	deleteTimeout  = 15 * time.Second
)

// Janitor deletes replaced profile photos on a small pool of background
// workers so uploads never wait on, or fail because of, the old file.
type Janitor struct {
	refs    chan string
	store   ports.PhotoStore
	workers int
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewJanitor creates a Janitor with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewJanitor(numWorkers int, store ports.PhotoStore, log zerolog.Logger) *Janitor {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Janitor{
		refs:    make(chan string, channelBuffer),
		store:   store,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the workers. They drain pending deletions and exit once ctx
// is cancelled; Wait blocks until they have.
func (j *Janitor) Start(ctx context.Context) {
	for i := 0; i < j.workers; i++ {
		j.wg.Add(1)
		go j.runWorker(ctx, i)
	}
}

// Wait blocks until every worker has stopped.
func (j *Janitor) Wait() {
	j.wg.Wait()
}

// Discard queues ref for deletion. When the queue is full the file is left
// behind and a warning is logged.
func (j *Janitor) Discard(ref string) {
	if ref == "" {
		return
	}
	select {
	case j.refs <- ref:
	default:
		j.log.Warn().Str("photo", ref).Msg("photo janitor queue full, leaving file behind")
	}
}

func (j *Janitor) runWorker(ctx context.Context, id int) {
	defer j.wg.Done()
	for {
		select {
		case <-ctx.Done():
			j.drain(id)
			return
		case ref := <-j.refs:
			j.remove(context.Background(), id, ref)
		}
	}
}

// drain removes whatever is still buffered at shutdown.
func (j *Janitor) drain(id int) {
	for {
		select {
		case ref := <-j.refs:
			j.remove(context.Background(), id, ref)
		default:
			return
		}
	}
}

func (j *Janitor) remove(ctx context.Context, id int, ref string) {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if err := j.store.Delete(ctx, ref); err != nil {
		j.log.Warn().Err(err).
			Str("photo", ref).
			Int("worker_id", id).
			Msg("failed to delete replaced photo")
		return
	}
	j.log.Debug().Str("photo", ref).Int("worker_id", id).Msg("replaced photo deleted")
}
