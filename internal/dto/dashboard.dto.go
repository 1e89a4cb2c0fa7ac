package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ActivityDTO struct {
	Name      string    `json:"name"`
	Action    string    `json:"action"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardDTO is the admin overview. Fields prefixed with estimated_ are
// heuristics, not accounting figures; EstimateBasis says how they are derived.
type DashboardDTO struct {
	TotalUsers     int64 `json:"total_users"`
	TotalAdmins    int64 `json:"total_admin"`
	TotalCustomers int64 `json:"total_customer"`
	TotalProducts  int64 `json:"total_products"`

	EstimatedRevenue        decimal.Decimal   `json:"estimated_total_revenue"`
	EstimatedOrders         int64             `json:"estimated_total_orders"`
	EstimatedRevenueByMonth []decimal.Decimal `json:"estimated_revenue_by_month"`
	RevenueMonthLabels      []string          `json:"revenue_month_labels"`
	EstimatedOrdersByDay    []int64           `json:"estimated_orders_by_week"`
	OrderDayLabels          []string          `json:"orders_day_labels"`

	RecentActivities []ActivityDTO `json:"recent_activities"`
	EstimateBasis    string        `json:"estimate_basis"`
}

type UserDTO struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Phone        *string   `json:"phone"`
	Role         string    `json:"role"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}
