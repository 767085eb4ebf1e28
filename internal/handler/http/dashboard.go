package http

import (
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// Overview returns the sections of today's figures the caller may see
	Overview(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Overview handles GET /dashboard
func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
