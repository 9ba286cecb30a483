package services

import (
	"context"
	"log"
	"sync"
	"time"

	"ecoTrackAPI/internal/kv"
	"ecoTrackAPI/middleware"
)

// stateWriter mirrors serialized slices into the kv store without ever
// blocking a store operation. A single worker keeps writes in program order,
// so last-writer-wins per key matches the order mutations were committed.
type stateWriter struct {
	store kv.Store
	jobs  chan map[string]string
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func newStateWriter(store kv.Store) *stateWriter {
	w := &stateWriter{
		store: store,
		jobs:  make(chan map[string]string, 64),
	}

	w.wg.Add(1)
	go w.worker()

	return w
}

func (w *stateWriter) worker() {
	defer w.wg.Done()
	for batch := range w.jobs {
		w.write(batch)
	}
}

func (w *stateWriter) write(batch map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for key, value := range batch {
		if value == "" {
			continue
		}
		if err := w.store.Set(ctx, key, value); err != nil {
			middleware.RecordPersistenceFailure()
			log.Printf("Persist failed for %s: %v", key, err)
		}
	}
}

// Enqueue never blocks the caller. When the queue is full the snapshot is
// dropped; the next mutation mirrors the full state again anyway.
func (w *stateWriter) Enqueue(batch map[string]string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	select {
	case w.jobs <- batch:
	default:
		log.Println("Persist queue full, dropping snapshot")
	}
}

// Close drains queued snapshots and stops the worker.
func (w *stateWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()

	w.wg.Wait()
}
