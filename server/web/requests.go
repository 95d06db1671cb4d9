package web

import (
	"net/http"

	"github.com/topi314/academy-dashboard/internal/xquery"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

func (h *handler) PlayerRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	d := h.dashboard(r)
	err := d.FilterRequests(r.Context(), dashboard.RequestFilter{
		Page:   xquery.ParsePage(query, "page"),
		Status: xquery.ParseString(query, "status", ""),
		Search: xquery.ParseString(query, "search", ""),
	})
	respond(w, r, d, err)
}

func (h *handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var form dashboard.RequestForm
	if !decodeBody(w, r, &form) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.CreateRequest(r.Context(), form))
}

func (h *handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.AcceptRequest(r.Context(), id))
}

func (h *handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.RejectRequest(r.Context(), id))
}

func (h *handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.CancelRequest(r.Context(), id))
}

func (h *handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.DeleteRequest(r.Context(), id))
}
