package analytics

import (
	"context"
	"sort"

	"github.com/ManuelReschke/PageFox/app/models"
)

// Customers folds the order history of the given project set into one row per
// customer, keyed on the phone number. Name and city come from the customer's
// first order in the set; total spent sums the snapshotted price of every
// order with the same forgiving parse the revenue metric uses. Rows come back
// sorted by total spent, biggest customer first.
func (a *Aggregator) Customers(ctx context.Context, projectIDs []uint) ([]models.CustomerStats, error) {
	customers := []models.CustomerStats{}
	if len(projectIDs) == 0 {
		return customers, nil
	}

	orders, err := a.orders.GetByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	for _, order := range orders {
		i, seen := index[order.CustomerPhone]
		if !seen {
			i = len(customers)
			index[order.CustomerPhone] = i
			customers = append(customers, models.CustomerStats{
				Name:  order.CustomerName,
				Phone: order.CustomerPhone,
				City:  order.CustomerCity,
			})
		}
		customers[i].TotalSpent += ParsePrice(order.ProductPrice)
		customers[i].OrderCount++
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].TotalSpent > customers[j].TotalSpent
	})
	return customers, nil
}
