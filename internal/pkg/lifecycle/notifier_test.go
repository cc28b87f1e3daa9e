package lifecycle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PageFox/app/models"
)

type fakeProjectRepo struct {
	hosted []models.Project
}

func (f *fakeProjectRepo) Create(project *models.Project) error { return nil }
func (f *fakeProjectRepo) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProjectRepo) GetByUUID(ctx context.Context, uuid string) (*models.Project, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProjectRepo) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProjectRepo) GetByUserID(userID uint) ([]models.Project, error) { return nil, nil }
func (f *fakeProjectRepo) GetHosted() ([]models.Project, error)              { return f.hosted, nil }
func (f *fakeProjectRepo) Update(project *models.Project) error              { return nil }
func (f *fakeProjectRepo) Delete(id uint) error                              { return nil }
func (f *fakeProjectRepo) Count() (int64, error)                             { return 0, nil }

// fakeNotificationRepo enforces uniqueness on (user, type, related) the same
// way the MySQL unique index does.
type fakeNotificationRepo struct {
	created map[string]models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{created: make(map[string]models.Notification)}
}

func notificationKey(n *models.Notification) string {
	return fmt.Sprintf("%d:%s:%d", n.UserID, n.Type, n.RelatedID)
}

func (f *fakeNotificationRepo) CreateIfAbsent(ctx context.Context, n *models.Notification) (bool, error) {
	key := notificationKey(n)
	if _, exists := f.created[key]; exists {
		return false, nil
	}
	f.created[key] = *n
	return true, nil
}

func (f *fakeNotificationRepo) GetByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uint) error { return nil }
func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uint) error  { return nil }

func hostedProject(id, userID uint, name string, ageDays, durationDays int, now time.Time) models.Project {
	return models.Project{
		ID:           id,
		UserID:       userID,
		Name:         name,
		IsHosted:     true,
		DurationDays: durationDays,
		CreatedAt:    now.AddDate(0, 0, -ageDays),
	}
}

func TestEvaluateExpirations_ExpiringSoon(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	projects := &fakeProjectRepo{hosted: []models.Project{
		hostedProject(1, 10, "spring-sale", 28, 30, now), // 2 days left
	}}
	notifications := newFakeNotificationRepo()
	notifier := NewNotifier(projects, notifications)

	result, err := notifier.EvaluateExpirations(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expiring)
	assert.Zero(t, result.Expired)

	n := notifications.created["10:expiring:1"]
	assert.Equal(t, models.NotificationTypeExpiring, n.Type)
	assert.Contains(t, n.Message, `"spring-sale"`)
	assert.Contains(t, n.Message, "2 day(s)")

	// A second run right after creates nothing new.
	result, err = notifier.EvaluateExpirations(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, result.Expiring)
	assert.Zero(t, result.Expired)
}

func TestEvaluateExpirations_Expired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	projects := &fakeProjectRepo{hosted: []models.Project{
		hostedProject(2, 11, "popup-store", 31, 30, now), // 1 day past
	}}
	notifications := newFakeNotificationRepo()
	notifier := NewNotifier(projects, notifications)

	result, err := notifier.EvaluateExpirations(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, result.Expiring)
	assert.Equal(t, 1, result.Expired)

	n := notifications.created["11:expired:2"]
	assert.Equal(t, models.NotificationTypeExpired, n.Type)
	assert.Contains(t, n.Message, `"popup-store"`)
}

func TestEvaluateExpirations_HealthyProjectUntouched(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	projects := &fakeProjectRepo{hosted: []models.Project{
		hostedProject(3, 12, "fresh", 2, 30, now), // 28 days left
	}}
	notifications := newFakeNotificationRepo()
	notifier := NewNotifier(projects, notifications)

	result, err := notifier.EvaluateExpirations(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, result.Expiring)
	assert.Zero(t, result.Expired)
	assert.Empty(t, notifications.created)
}

func TestEvaluateExpirations_ExpiredKeepsEarlierExpiring(t *testing.T) {
	projects := &fakeProjectRepo{hosted: []models.Project{}}
	notifications := newFakeNotificationRepo()
	notifier := NewNotifier(projects, notifications)

	// First pass while the page is about to expire.
	day1 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	projects.hosted = []models.Project{hostedProject(4, 13, "promo", 28, 30, day1)}
	result, err := notifier.EvaluateExpirations(context.Background(), day1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expiring)

	// Days later the same page has expired; both notices now exist.
	day2 := day1.AddDate(0, 0, 4)
	result, err = notifier.EvaluateExpirations(context.Background(), day2)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expired)

	assert.Len(t, notifications.created, 2)
	assert.Contains(t, notifications.created, "13:expiring:4")
	assert.Contains(t, notifications.created, "13:expired:4")
}

func TestEvaluateExpirations_BoundaryDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		ageDays      int
		wantExpiring int
		wantExpired  int
	}{
		{name: "six days left is healthy", ageDays: 24, wantExpiring: 0, wantExpired: 0},
		{name: "five days left warns", ageDays: 25, wantExpiring: 1, wantExpired: 0},
		{name: "last day warns", ageDays: 29, wantExpiring: 1, wantExpired: 0},
		{name: "day of expiry expires", ageDays: 30, wantExpiring: 0, wantExpired: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := &fakeProjectRepo{hosted: []models.Project{
				hostedProject(5, 14, "p", tt.ageDays, 30, now),
			}}
			notifier := NewNotifier(projects, newFakeNotificationRepo())

			result, err := notifier.EvaluateExpirations(context.Background(), now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExpiring, result.Expiring)
			assert.Equal(t, tt.wantExpired, result.Expired)
		})
	}
}
