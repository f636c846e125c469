package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard runs the totals, breakdown, series and balances queries in parallel
	GetDashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}
