package web

import (
	"net/http"

	"github.com/topi314/academy-dashboard/server/dashboard"
)

func (h *handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var form dashboard.PlayerForm
	if !decodeBody(w, r, &form) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.CreatePlayer(r.Context(), form))
}

func (h *handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var form dashboard.PlayerForm
	if !decodeBody(w, r, &form) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.UpdatePlayer(r.Context(), form))
}

func (h *handler) RequestPlayerDeletion(w http.ResponseWriter, r *http.Request) {
	d := h.dashboard(r)
	respond(w, r, d, d.RequestPlayerDeletion())
}

func (h *handler) ConfirmPlayerDeletion(w http.ResponseWriter, r *http.Request) {
	d := h.dashboard(r)
	respond(w, r, d, d.ConfirmPlayerDeletion(r.Context()))
}

func (h *handler) CancelConfirmation(w http.ResponseWriter, r *http.Request) {
	d := h.dashboard(r)
	d.CancelConfirmation()
	respond(w, r, d, nil)
}
