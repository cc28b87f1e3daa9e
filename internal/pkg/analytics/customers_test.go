package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/PageFox/app/models"
)

func TestCustomers_GroupsByPhone(t *testing.T) {
	orders := &stubOrderRepo{orders: []models.Order{
		{CustomerName: "Amina", CustomerPhone: "0600000001", CustomerCity: "Casablanca", ProductPrice: "$10.00"},
		{CustomerName: "Omar", CustomerPhone: "0600000002", CustomerCity: "Rabat", ProductPrice: "250 MAD"},
		{CustomerName: "A. Benali", CustomerPhone: "0600000001", CustomerCity: "Fes", ProductPrice: "$15.50"},
	}}
	agg := NewAggregator(&stubVisitRepo{}, &stubConversionRepo{}, orders)

	customers, err := agg.Customers(context.Background(), []uint{1})
	require.NoError(t, err)
	require.Len(t, customers, 2)

	// Biggest spender first; name and city stick to the first seen order.
	assert.Equal(t, "Omar", customers[0].Name)
	assert.Equal(t, 250.0, customers[0].TotalSpent)
	assert.Equal(t, 1, customers[0].OrderCount)

	assert.Equal(t, "Amina", customers[1].Name)
	assert.Equal(t, "Casablanca", customers[1].City)
	assert.Equal(t, 25.5, customers[1].TotalSpent)
	assert.Equal(t, 2, customers[1].OrderCount)
}

func TestCustomers_UnparsablePricesCountAsZero(t *testing.T) {
	orders := &stubOrderRepo{orders: []models.Order{
		{CustomerName: "Amina", CustomerPhone: "0600000001", ProductPrice: "free"},
		{CustomerName: "Amina", CustomerPhone: "0600000001", ProductPrice: "$5"},
	}}
	agg := NewAggregator(&stubVisitRepo{}, &stubConversionRepo{}, orders)

	customers, err := agg.Customers(context.Background(), []uint{1})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, 5.0, customers[0].TotalSpent)
	assert.Equal(t, 2, customers[0].OrderCount)
}

func TestCustomers_EmptyProjectSet(t *testing.T) {
	agg := NewAggregator(&stubVisitRepo{}, &stubConversionRepo{}, &stubOrderRepo{})

	customers, err := agg.Customers(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}
