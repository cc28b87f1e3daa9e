package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PageFox/app/models"
)

// stubVisitRepo serves canned analytics reads.
type stubVisitRepo struct {
	pageViews    int64
	avgTimeSpent float64
	liveCount    int64
	byDay        map[string]int
	cities       []models.CityStats
	byDevice     map[string]int
}

func (s *stubVisitRepo) GetByProjectAndIP(ctx context.Context, projectID uint, ip string) (*models.Visit, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubVisitRepo) Create(ctx context.Context, visit *models.Visit) error { return nil }
func (s *stubVisitRepo) Update(ctx context.Context, visit *models.Visit) error { return nil }
func (s *stubVisitRepo) MarkStale(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}
func (s *stubVisitRepo) SumPageViews(ctx context.Context, projectIDs []uint) (int64, error) {
	return s.pageViews, nil
}
func (s *stubVisitRepo) AvgTimeSpent(ctx context.Context, projectIDs []uint) (float64, error) {
	return s.avgTimeSpent, nil
}
func (s *stubVisitRepo) CountLiveSince(ctx context.Context, projectIDs []uint, since time.Time) (int64, error) {
	return s.liveCount, nil
}
func (s *stubVisitRepo) CountCreatedByDay(ctx context.Context, projectIDs []uint, from time.Time) (map[string]int, error) {
	return s.byDay, nil
}
func (s *stubVisitRepo) TopCities(ctx context.Context, projectIDs []uint, limit int) ([]models.CityStats, error) {
	if len(s.cities) > limit {
		return s.cities[:limit], nil
	}
	return s.cities, nil
}
func (s *stubVisitRepo) CountByDevice(ctx context.Context, projectIDs []uint) (map[string]int, error) {
	return s.byDevice, nil
}

type stubConversionRepo struct {
	count int64
}

func (s *stubConversionRepo) Create(ctx context.Context, conversion *models.Conversion) error {
	return nil
}
func (s *stubConversionRepo) CountByProjectIDs(ctx context.Context, projectIDs []uint) (int64, error) {
	return s.count, nil
}

type stubOrderRepo struct {
	count  int64
	prices []string
	orders []models.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error { return nil }
func (s *stubOrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubOrderRepo) GetByProjectIDs(ctx context.Context, projectIDs []uint) ([]models.Order, error) {
	return s.orders, nil
}
func (s *stubOrderRepo) CountByProjectIDs(ctx context.Context, projectIDs []uint) (int64, error) {
	return s.count, nil
}
func (s *stubOrderRepo) ListProductPrices(ctx context.Context, projectIDs []uint) ([]string, error) {
	return s.prices, nil
}
func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return nil
}
func (s *stubOrderRepo) Delete(ctx context.Context, id uint) error { return nil }

func TestAggregate_EmptyProjectSet(t *testing.T) {
	agg := NewAggregator(&stubVisitRepo{}, &stubConversionRepo{}, &stubOrderRepo{})

	snapshot, err := agg.Aggregate(context.Background(), nil, time.Now())
	require.NoError(t, err)

	assert.Zero(t, snapshot.TotalViews)
	assert.Zero(t, snapshot.TotalOrders)
	assert.Zero(t, snapshot.ConversionRate)
	assert.Zero(t, snapshot.Revenue)
	assert.NotNil(t, snapshot.VisitorsByDay)
	assert.Empty(t, snapshot.VisitorsByDay)
	assert.NotNil(t, snapshot.VisitorsByCity)
	assert.Empty(t, snapshot.VisitorsByCity)
}

func TestAggregate_DerivedMetrics(t *testing.T) {
	visits := &stubVisitRepo{
		pageViews:    200,
		avgTimeSpent: 37.5,
		liveCount:    4,
		byDevice:     map[string]int{"desktop": 10, "mobile": 6, "tablet": 2, "bot": 99},
		cities: []models.CityStats{
			{City: "Casablanca", Count: 6},
			{City: "Rabat", Count: 3},
			{City: "Fes", Count: 1},
		},
	}
	orders := &stubOrderRepo{count: 5, prices: []string{"$10.50", "20 MAD", "free"}}
	agg := NewAggregator(visits, &stubConversionRepo{count: 9}, orders)

	snapshot, err := agg.Aggregate(context.Background(), []uint{1, 2}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(200), snapshot.TotalViews)
	assert.Equal(t, int64(5), snapshot.TotalOrders)
	assert.Equal(t, int64(9), snapshot.TotalConversions)
	assert.InDelta(t, 2.5, snapshot.ConversionRate, 1e-9, "5 orders over 200 views")
	assert.InDelta(t, 30.50, snapshot.Revenue, 1e-9)
	assert.Equal(t, int64(4), snapshot.LiveVisitors)
	assert.InDelta(t, 37.5, snapshot.AvgTimeSpent, 1e-9)

	// Device buckets are fixed; unknown labels are dropped.
	assert.Equal(t, models.DeviceStats{Desktop: 10, Mobile: 6, Tablet: 2}, snapshot.VisitorsByDevice)
	assert.Len(t, snapshot.VisitorsByCity, 3)
	assert.Equal(t, "Casablanca", snapshot.VisitorsByCity[0].City)
}

func TestAggregate_ZeroViewsZeroRate(t *testing.T) {
	agg := NewAggregator(&stubVisitRepo{}, &stubConversionRepo{}, &stubOrderRepo{count: 3})

	snapshot, err := agg.Aggregate(context.Background(), []uint{1}, time.Now())
	require.NoError(t, err)

	assert.Zero(t, snapshot.ConversionRate, "no views must not divide by zero")
}

func TestAggregate_VisitorsByDaySeries(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC) // a Sunday
	visits := &stubVisitRepo{
		byDay: map[string]int{
			"2026-03-09": 2, // Monday, start of the window
			"2026-03-12": 7,
			"2026-03-15": 1, // today
		},
	}
	agg := NewAggregator(visits, &stubConversionRepo{}, &stubOrderRepo{})

	snapshot, err := agg.Aggregate(context.Background(), []uint{1}, asOf)
	require.NoError(t, err)

	require.Len(t, snapshot.VisitorsByDay, 7)
	assert.Equal(t, "2026-03-09", snapshot.VisitorsByDay[0].Date)
	assert.Equal(t, "Mon", snapshot.VisitorsByDay[0].Label)
	assert.Equal(t, 2, snapshot.VisitorsByDay[0].Count)

	// Days without visits stay in the series with a zero count.
	assert.Equal(t, "2026-03-10", snapshot.VisitorsByDay[1].Date)
	assert.Zero(t, snapshot.VisitorsByDay[1].Count)

	assert.Equal(t, 7, snapshot.VisitorsByDay[3].Count)
	assert.Equal(t, "2026-03-15", snapshot.VisitorsByDay[6].Date)
	assert.Equal(t, "Sun", snapshot.VisitorsByDay[6].Label)
	assert.Equal(t, 1, snapshot.VisitorsByDay[6].Count)
}
