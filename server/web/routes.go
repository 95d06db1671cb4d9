package web

import (
	"net/http"
	"path"

	"github.com/topi314/academy-dashboard/internal/middlewares"
	"github.com/topi314/academy-dashboard/server"
)

type handler struct {
	*server.Server
}

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server: srv,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET  /api/dashboard", h.GetDashboard)
	mux.HandleFunc("POST /api/dashboard/refresh/{resource}", h.RefreshResource)

	mux.HandleFunc("PUT    /api/profile", h.UpdateProfile)
	mux.HandleFunc("PUT    /api/password", h.ChangePassword)
	mux.HandleFunc("POST   /api/password/check", h.CheckPassword)
	mux.HandleFunc("DELETE /api/account", h.DeleteAccount)

	mux.HandleFunc("GET    /api/reservations/history", h.ReservationHistory)
	mux.HandleFunc("POST   /api/reservations/{id}/cancel", h.CancelReservation)
	mux.HandleFunc("DELETE /api/reservations/{id}", h.DeleteReservation)
	mux.HandleFunc("GET    /api/reservations/{id}/qr", h.ReservationQR)

	mux.HandleFunc("POST /api/memberships/{academy_id}/cancel", h.CancelMembership)
	mux.HandleFunc("PUT  /api/memberships/{academy_id}/plan", h.UpdatePlan)

	mux.HandleFunc("POST /api/player", h.CreatePlayer)
	mux.HandleFunc("PUT  /api/player", h.UpdatePlayer)
	mux.HandleFunc("POST /api/player/delete", h.RequestPlayerDeletion)
	mux.HandleFunc("POST /api/player/delete/confirm", h.ConfirmPlayerDeletion)
	mux.HandleFunc("POST /api/player/delete/cancel", h.CancelConfirmation)

	mux.HandleFunc("PUT    /api/team", h.UpdateTeam)
	mux.HandleFunc("DELETE /api/team", h.DeleteTeam)
	mux.HandleFunc("POST   /api/team/invite", h.InviteToTeam)
	mux.HandleFunc("DELETE /api/team/members/{player_id}", h.RemoveTeamMember)
	mux.HandleFunc("POST   /api/teams/{team_id}/join", h.JoinTeam)

	mux.HandleFunc("POST /api/invitations/{id}/accept", h.AcceptInvitation)
	mux.HandleFunc("POST /api/invitations/{id}/refuse", h.RefuseInvitation)
	mux.HandleFunc("POST /api/join-requests/{id}", h.ProcessJoinRequest)

	mux.HandleFunc("GET    /api/requests", h.PlayerRequests)
	mux.HandleFunc("POST   /api/requests", h.CreateRequest)
	mux.HandleFunc("POST   /api/requests/{id}/accept", h.AcceptRequest)
	mux.HandleFunc("POST   /api/requests/{id}/reject", h.RejectRequest)
	mux.HandleFunc("POST   /api/requests/{id}/cancel", h.CancelRequest)
	mux.HandleFunc("DELETE /api/requests/{id}", h.DeleteRequest)

	mux.HandleFunc("/", h.NotFound)

	return cleanPath(middlewares.NoStore(h.auth(mux)))
}

func (h *handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusNotFound, Response{
		Error: &ErrorResponse{Message: "Not found"},
	})
}

func cleanPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = path.Clean(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
