package web

import (
	"net/http"

	"github.com/topi314/academy-dashboard/server/backend"
)

func (h *handler) CancelMembership(w http.ResponseWriter, r *http.Request) {
	academyID, ok := pathID(w, r, "academy_id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.CancelMembership(r.Context(), academyID))
}

type UpdatePlanRequest struct {
	Plan backend.SubscriptionPlan `json:"subscription_plan"`
}

func (h *handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	academyID, ok := pathID(w, r, "academy_id")
	if !ok {
		return
	}
	var rq UpdatePlanRequest
	if !decodeBody(w, r, &rq) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.UpdatePlan(r.Context(), academyID, rq.Plan))
}
