package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PageFox/internal/pkg/lifecycle"
	metrics "github.com/ManuelReschke/PageFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/PageFox/internal/pkg/tracking"
)

const (
	sweepInterval        = time.Minute
	lifecycleInterval    = time.Hour
	counterFlushInterval = 5 * time.Second
)

// Manager runs the recurring background tasks: the liveness sweep, the
// lifecycle expiration evaluation and the Redis counter flush. Ingestion and
// dashboard requests never wait on any of these.
type Manager struct {
	tracker            *tracking.Tracker
	notifier           *lifecycle.Notifier
	sweepTicker        *time.Ticker
	lifecycleTicker    *time.Ticker
	counterFlushTicker *time.Ticker
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	running            bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// Initialize sets up the global scheduler manager (singleton)
func Initialize(tracker *tracking.Tracker, notifier *lifecycle.Notifier) *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			tracker:  tracker,
			notifier: notifier,
			stopCh:   make(chan struct{}),
		}
	})
	return globalManager
}

// GetManager returns the global scheduler manager
func GetManager() *Manager {
	if globalManager == nil {
		panic("Scheduler manager not initialized. Call Initialize first.")
	}
	return globalManager
}

// Start starts the background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[Scheduler] Starting background tasks")

	m.sweepTicker = time.NewTicker(sweepInterval)
	m.wg.Add(1)
	go m.sweepWorker()

	m.lifecycleTicker = time.NewTicker(lifecycleInterval)
	m.wg.Add(1)
	go m.lifecycleWorker()

	m.counterFlushTicker = time.NewTicker(counterFlushInterval)
	m.wg.Add(1)
	go m.counterFlushWorker()

	log.Info("[Scheduler] Started successfully")
}

// Stop stops the background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[Scheduler] Stopping background tasks...")

	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}
	if m.lifecycleTicker != nil {
		m.lifecycleTicker.Stop()
	}
	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}

	// Signal workers to stop
	close(m.stopCh)
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	log.Info("[Scheduler] Stopped successfully")
}

// sweepWorker periodically demotes stale visits so liveness converges even
// when no events arrive to trigger the inline sweep.
func (m *Manager) sweepWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Sweep worker stopping")
			return
		case <-m.sweepTicker.C:
			if count, err := m.tracker.SweepStale(context.Background(), time.Now()); err != nil {
				log.Errorf("[Scheduler] Liveness sweep error: %v", err)
			} else if count > 0 {
				log.Debugf("[Scheduler] Liveness sweep demoted %d visits", count)
			}
		}
	}
}

// lifecycleWorker periodically evaluates hosted projects for expiration
func (m *Manager) lifecycleWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Lifecycle worker stopping")
			return
		case <-m.lifecycleTicker.C:
			result, err := m.notifier.EvaluateExpirations(context.Background(), time.Now())
			if err != nil {
				log.Errorf("[Scheduler] Lifecycle evaluation error: %v", err)
				continue
			}
			if result.Expiring > 0 || result.Expired > 0 {
				log.Infof("[Scheduler] Lifecycle evaluation created %d expiring and %d expired notifications", result.Expiring, result.Expired)
			}
		}
	}
}

// counterFlushWorker periodically flushes pending view counters from Redis to DB
func (m *Manager) counterFlushWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[Scheduler] Counter flush worker stopping")
			return
		case <-m.counterFlushTicker.C:
			if err := metrics.FlushAll(); err != nil {
				log.Errorf("[Scheduler] Counter flush error: %v", err)
			}
		}
	}
}
