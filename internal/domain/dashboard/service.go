package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// Overview gathers today's figures concurrently for the session in ctx.
	Overview(ctx context.Context) (OverviewResponse, error)
}
