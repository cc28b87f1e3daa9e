package analytics

import (
	"context"
	"time"

	"github.com/ManuelReschke/PageFox/app/models"
	"github.com/ManuelReschke/PageFox/app/repository"
)

// trailingDays is the window of the visitors-by-day series, today included.
const trailingDays = 7

// Snapshot holds the derived metrics a dashboard request renders.
type Snapshot struct {
	TotalViews       int64               `json:"total_views"`
	TotalOrders      int64               `json:"total_orders"`
	TotalConversions int64               `json:"total_conversions"`
	ConversionRate   float64             `json:"conversion_rate"`
	Revenue          float64             `json:"revenue"`
	LiveVisitors     int64               `json:"live_visitors"`
	AvgTimeSpent     float64             `json:"avg_time_spent"`
	VisitorsByDay    []models.DailyStats `json:"visitors_by_day"`
	VisitorsByCity   []models.CityStats  `json:"visitors_by_city"`
	VisitorsByDevice models.DeviceStats  `json:"visitors_by_device"`
}

// Aggregator computes analytics snapshots from accumulated visit, conversion
// and order state. All reads are snapshot reads; no locking is required.
type Aggregator struct {
	visits      repository.VisitRepository
	conversions repository.ConversionRepository
	orders      repository.OrderRepository
}

// NewAggregator creates an aggregator backed by the given repositories.
func NewAggregator(visits repository.VisitRepository, conversions repository.ConversionRepository, orders repository.OrderRepository) *Aggregator {
	return &Aggregator{
		visits:      visits,
		conversions: conversions,
		orders:      orders,
	}
}

// Aggregate derives a snapshot over the given project set as of the given
// instant. An empty project set yields an all-zero snapshot with empty
// breakdowns; store errors propagate.
func (a *Aggregator) Aggregate(ctx context.Context, projectIDs []uint, asOf time.Time) (*Snapshot, error) {
	snapshot := &Snapshot{
		VisitorsByDay:  []models.DailyStats{},
		VisitorsByCity: []models.CityStats{},
	}
	if len(projectIDs) == 0 {
		return snapshot, nil
	}

	var err error
	if snapshot.TotalViews, err = a.visits.SumPageViews(ctx, projectIDs); err != nil {
		return nil, err
	}
	if snapshot.TotalOrders, err = a.orders.CountByProjectIDs(ctx, projectIDs); err != nil {
		return nil, err
	}
	if snapshot.TotalConversions, err = a.conversions.CountByProjectIDs(ctx, projectIDs); err != nil {
		return nil, err
	}
	if snapshot.TotalViews > 0 {
		snapshot.ConversionRate = float64(snapshot.TotalOrders) / float64(snapshot.TotalViews) * 100
	}

	prices, err := a.orders.ListProductPrices(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	for _, price := range prices {
		snapshot.Revenue += ParsePrice(price)
	}

	if snapshot.LiveVisitors, err = a.visits.CountLiveSince(ctx, projectIDs, asOf.Add(-models.LivenessWindow)); err != nil {
		return nil, err
	}
	if snapshot.AvgTimeSpent, err = a.visits.AvgTimeSpent(ctx, projectIDs); err != nil {
		return nil, err
	}

	if snapshot.VisitorsByDay, err = a.visitorsByDay(ctx, projectIDs, asOf); err != nil {
		return nil, err
	}
	if snapshot.VisitorsByCity, err = a.visits.TopCities(ctx, projectIDs, 5); err != nil {
		return nil, err
	}
	if snapshot.VisitorsByDevice, err = a.visitorsByDevice(ctx, projectIDs); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// visitorsByDay builds the trailing seven day series in chronological order.
// Days without visits appear with a zero count so charts stay contiguous.
func (a *Aggregator) visitorsByDay(ctx context.Context, projectIDs []uint, asOf time.Time) ([]models.DailyStats, error) {
	start := asOf.AddDate(0, 0, -(trailingDays - 1))
	startOfDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, asOf.Location())

	counts, err := a.visits.CountCreatedByDay(ctx, projectIDs, startOfDay)
	if err != nil {
		return nil, err
	}

	series := make([]models.DailyStats, 0, trailingDays)
	for i := 0; i < trailingDays; i++ {
		day := startOfDay.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		series = append(series, models.DailyStats{
			Date:  date,
			Label: day.Format("Mon"),
			Count: counts[date],
		})
	}
	return series, nil
}

// visitorsByDevice folds the raw device counts into the fixed three buckets.
// Values outside the known set are dropped, never an error.
func (a *Aggregator) visitorsByDevice(ctx context.Context, projectIDs []uint) (models.DeviceStats, error) {
	counts, err := a.visits.CountByDevice(ctx, projectIDs)
	if err != nil {
		return models.DeviceStats{}, err
	}
	return models.DeviceStats{
		Desktop: counts[models.DEVICE_DESKTOP],
		Mobile:  counts[models.DEVICE_MOBILE],
		Tablet:  counts[models.DEVICE_TABLET],
	}, nil
}
