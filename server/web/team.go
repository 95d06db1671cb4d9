package web

import (
	"net/http"

	"github.com/topi314/academy-dashboard/server/backend"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

func (h *handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var form dashboard.TeamForm
	if !decodeBody(w, r, &form) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.UpdateTeam(r.Context(), form))
}

func (h *handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	d := h.dashboard(r)
	respond(w, r, d, d.DeleteTeam(r.Context()))
}

type InviteRequest struct {
	PlayerID backend.ID `json:"player_id"`
}

func (h *handler) InviteToTeam(w http.ResponseWriter, r *http.Request) {
	var rq InviteRequest
	if !decodeBody(w, r, &rq) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.InviteToTeam(r.Context(), rq.PlayerID))
}

func (h *handler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "player_id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.RemoveTeamMember(r.Context(), playerID, r.URL.Query().Get("reason")))
}

func (h *handler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r, "team_id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.JoinTeam(r.Context(), teamID))
}

func (h *handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.AcceptInvitation(r.Context(), id))
}

func (h *handler) RefuseInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.RefuseInvitation(r.Context(), id))
}

type JoinRequestDecision struct {
	Status backend.JoinRequestStatus `json:"status"`
}

func (h *handler) ProcessJoinRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var rq JoinRequestDecision
	if !decodeBody(w, r, &rq) {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.ProcessJoinRequest(r.Context(), id, rq.Status))
}
