package tracking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PageFox/app/models"
	"github.com/ManuelReschke/PageFox/app/repository"
)

const (
	// StoreTimeout bounds store access on the public ingestion path. The
	// endpoint is reachable by anonymous traffic and must never hang on a
	// slow database. Exported so HTTP handlers on the same path can apply
	// the same bound to their own lookups.
	StoreTimeout = 2 * time.Second

	// maxMergeRetries bounds retries when a concurrent insert for the same
	// (project, IP) pair wins the race.
	maxMergeRetries = 3

	lockStripes = 64
)

// ErrProjectNotFound is returned when an event references a project that no
// longer exists. No partial visit state is written in that case.
var ErrProjectNotFound = errors.New("tracking: project not found")

// Tracker merges incoming engagement events into per-(project, IP) visit
// state. Events for the same pair are serialized through a striped lock so
// the max(time_spent) and page_views invariants hold under concurrent
// delivery; events for different pairs proceed independently.
type Tracker struct {
	visits   repository.VisitRepository
	projects repository.ProjectRepository
	locks    [lockStripes]sync.Mutex
	now      func() time.Time
}

// NewTracker creates a tracker backed by the given repositories.
func NewTracker(visits repository.VisitRepository, projects repository.ProjectRepository) *Tracker {
	return &Tracker{
		visits:   visits,
		projects: projects,
		now:      time.Now,
	}
}

func (t *Tracker) lockFor(projectID uint, ip string) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%s", projectID, ip)
	return &t.locks[h.Sum32()%lockStripes]
}

// RecordEvent ingests one engagement event for a (project, IP) pair.
//
// A visit row is only ever established by an initial-visit event; stray
// heartbeats for unknown visitors are dropped. For an existing row the merge
// is: page_views increments only on initial events, time_spent takes the
// maximum of old and reported value (tabs and retries race, last-writer-wins
// would lose time), last_activity and is_live always refresh.
func (t *Tracker) RecordEvent(ctx context.Context, projectID uint, clientIP, userAgent, city, country string, timeSpentSeconds int, isInitialVisit bool) error {
	if projectID == 0 || clientIP == "" {
		return fmt.Errorf("tracking: project id and client ip are required")
	}

	// The timeout covers every store round-trip on this path, including the
	// project existence check.
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	if _, err := t.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	mu := t.lockFor(projectID, clientIP)
	mu.Lock()
	err := t.recordLocked(ctx, projectID, clientIP, userAgent, city, country, timeSpentSeconds, isInitialVisit)
	mu.Unlock()
	if err != nil {
		return err
	}

	// Opportunistic sweep: every ingestion demotes whatever went stale since
	// the last one. Failures only cost flag freshness, not event data.
	if _, err := t.SweepStale(ctx, t.now()); err != nil {
		log.Warnf("[Tracking] liveness sweep failed: %v", err)
	}

	return nil
}

func (t *Tracker) recordLocked(ctx context.Context, projectID uint, clientIP, userAgent, city, country string, timeSpentSeconds int, isInitialVisit bool) error {
	for attempt := 0; attempt < maxMergeRetries; attempt++ {
		visit, err := t.visits.GetByProjectAndIP(ctx, projectID, clientIP)
		switch {
		case err == nil:
			return t.merge(ctx, visit, timeSpentSeconds, isInitialVisit)
		case errors.Is(err, gorm.ErrRecordNotFound):
			if !isInitialVisit {
				// Only a confirmed initial load establishes a visitor.
				return nil
			}
			now := t.now()
			visit := &models.Visit{
				ProjectID:    projectID,
				IPAddress:    clientIP,
				UserAgent:    userAgent,
				DeviceType:   DetectDevice(userAgent),
				Browser:      DetectBrowser(userAgent),
				City:         city,
				Country:      country,
				TimeSpent:    timeSpentSeconds,
				PageViews:    1,
				IsLive:       true,
				LastActivity: now,
			}
			err = t.visits.Create(ctx, visit)
			if err == nil {
				return nil
			}
			if isDuplicateKeyErr(err) {
				// Another writer created the row first; retry as a merge.
				continue
			}
			return err
		default:
			return err
		}
	}
	return fmt.Errorf("tracking: gave up merging visit for project %d after %d attempts", projectID, maxMergeRetries)
}

func (t *Tracker) merge(ctx context.Context, visit *models.Visit, timeSpentSeconds int, isInitialVisit bool) error {
	if isInitialVisit {
		visit.PageViews++
	}
	if timeSpentSeconds > visit.TimeSpent {
		visit.TimeSpent = timeSpentSeconds
	}
	visit.LastActivity = t.now()
	visit.IsLive = true
	return t.visits.Update(ctx, visit)
}

// SweepStale demotes visits that fell out of the liveness window before now.
// It is idempotent and safe to run inline with ingestion or from a timer.
func (t *Tracker) SweepStale(ctx context.Context, now time.Time) (int64, error) {
	return t.visits.MarkStale(ctx, now.Add(-models.LivenessWindow))
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
