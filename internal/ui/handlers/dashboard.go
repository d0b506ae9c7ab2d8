// dashboard.go — главная страница консоли.
package handlers

import (
	"log/slog"
	"net/http"

	uimiddleware "github.com/bigkaa/goconsole/internal/ui/middleware"
	"github.com/bigkaa/goconsole/internal/ui/pages"
)

// DashboardHandler — обработчик страницы Dashboard.
type DashboardHandler struct {
	menuApplication string
	logger          *slog.Logger
}

// NewDashboardHandler создаёт новый DashboardHandler.
func NewDashboardHandler(menuApplication string, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		menuApplication: menuApplication,
		logger:          logger.With(slog.String("component", "ui.dashboard")),
	}
}

// HandleDashboard — GET /admin: страница Dashboard.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	st := uimiddleware.StateFromContext(r.Context())
	if st == nil {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}

	render(w, r, h.logger, pages.Dashboard(pages.DashboardData{
		Layout: buildLayout(r.Context(), st, h.menuApplication, "/admin", h.logger),
	}))
}
