package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	// writeQueueSize is the buffer size for pending writes.
	// If full, writes are dropped (non-blocking).
	writeQueueSize = 256

	// batchFlushSize is the number of queued writes that triggers a flush.
	batchFlushSize = 16

	// flushInterval is how often pending writes are flushed.
	flushInterval = 50 * time.Millisecond

	// writeTimeout bounds a single backend write.
	writeTimeout = 5 * time.Second
)

type write struct {
	key   string
	value []byte
}

// Persister writes blobs to a KV in the background. Enqueue never blocks the
// caller, failed writes are logged and not retried, and within one flush only
// the latest value per key is written.
type Persister struct {
	kv       KV
	queue    chan write
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	stopped  atomic.Bool
	logger   *zap.Logger
}

// NewPersister starts a background writer for kv.
func NewPersister(kv KV, logger *zap.Logger) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Persister{
		kv:       kv,
		queue:    make(chan write, writeQueueSize),
		stopChan: make(chan struct{}),
		logger:   logger.Named("persister"),
	}

	p.wg.Add(1)
	go p.run()

	return p
}

// Enqueue schedules value to be written under key. It reports false when the
// write was dropped because the queue is full or the persister stopped.
func (p *Persister) Enqueue(key string, value []byte) bool {
	if p.stopped.Load() {
		p.logger.Warn("persister stopped, dropping write", zap.String("key", key))
		persistWritesTotal.WithLabelValues("dropped").Inc()
		return false
	}

	select {
	case p.queue <- write{key: key, value: value}:
		return true
	default:
		p.logger.Warn("persist queue full, dropping write", zap.String("key", key))
		persistWritesTotal.WithLabelValues("dropped").Inc()
		return false
	}
}

// Stop flushes everything queued so far and stops the writer.
func (p *Persister) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		close(p.stopChan)
		p.wg.Wait()
	})
}

// Pending returns the number of queued writes.
func (p *Persister) Pending() int {
	return len(p.queue)
}

func (p *Persister) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]write, 0, batchFlushSize)

	for {
		select {
		case w := <-p.queue:
			batch = append(batch, w)
			if len(batch) >= batchFlushSize {
				p.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				p.flush(batch)
				batch = batch[:0]
			}

		case <-p.stopChan:
			for {
				select {
				case w := <-p.queue:
					batch = append(batch, w)
				default:
					p.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes the latest value of each key in batch, in first-seen key order.
func (p *Persister) flush(batch []write) {
	if len(batch) == 0 {
		return
	}

	latest := make(map[string][]byte, len(batch))
	order := make([]string, 0, len(batch))
	for _, w := range batch {
		if _, seen := latest[w.key]; !seen {
			order = append(order, w.key)
		}
		latest[w.key] = w.value
	}
	if coalesced := len(batch) - len(order); coalesced > 0 {
		persistWritesTotal.WithLabelValues("coalesced").Add(float64(coalesced))
	}

	for _, key := range order {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := p.kv.Set(ctx, key, latest[key])
		cancel()
		if err != nil {
			p.logger.Warn("failed to persist", zap.String("key", key), zap.Error(err))
			persistWritesTotal.WithLabelValues("error").Inc()
			continue
		}
		persistWritesTotal.WithLabelValues("ok").Inc()
	}
}
