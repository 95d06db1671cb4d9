package web

import (
	"log/slog"
	"net/http"

	"github.com/topi314/academy-dashboard/internal/xquery"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

// GetDashboard loads every resource and returns the resulting state. Failing resources are
// reported in the state's errors and do not fail the request.
func (h *handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := h.dashboard(r)

	if xquery.ParseBool(r.URL.Query(), "load", true) {
		if err := d.Load(ctx); err != nil {
			slog.WarnContext(ctx, "Dashboard loaded with errors", slog.String("session", d.SessionID()))
		}
	}

	respond(w, r, d, nil)
}

func (h *handler) RefreshResource(w http.ResponseWriter, r *http.Request) {
	resource := dashboard.Resource(r.PathValue("resource"))
	if !resource.Valid() {
		badRequest(w, r, "Unknown resource: "+string(resource))
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.Refresh(r.Context(), resource))
}
