package models

// DailyStats is the visitor count for a single calendar day.
type DailyStats struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CityStats is the visitor count for a single city.
type CityStats struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// DeviceStats is the fixed three-bucket device breakdown.
type DeviceStats struct {
	Desktop int `json:"desktop"`
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
}

// CustomerStats is one customer as derived from the order history, grouped by
// phone number.
type CustomerStats struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	City       string  `json:"city"`
	TotalSpent float64 `json:"total_spent"`
	OrderCount int     `json:"order_count"`
}
