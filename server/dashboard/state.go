package dashboard

import (
	"github.com/topi314/academy-dashboard/server/backend"
)

type State struct {
	Profile      *backend.User         `json:"profile"`
	Activities   []backend.Activity    `json:"activities"`
	Upcoming     []backend.Reservation `json:"upcoming_reservations"`
	History      HistoryView           `json:"reservation_history"`
	Memberships  []backend.Membership  `json:"memberships"`
	Player       *backend.Player       `json:"player"`
	Teams        []backend.Team        `json:"teams"`
	Team         *backend.Team         `json:"team"`
	IsCaptain    bool                  `json:"is_captain"`
	Invitations  []backend.PlayerTeam  `json:"invitations"`
	JoinRequests []backend.PlayerTeam  `json:"join_requests"`
	Requests     RequestsView          `json:"requests"`
	Loading      map[Resource]bool     `json:"loading"`
	Errors       map[Resource]string   `json:"errors"`
	Confirmation Confirmation          `json:"confirmation,omitempty"`
}

type HistoryView struct {
	Items   []backend.Reservation `json:"items"`
	Page    int                   `json:"page"`
	Pages   int                   `json:"pages"`
	PerPage int                   `json:"per_page"`
	Status  string                `json:"status"`
	Search  string                `json:"search"`
}

type RequestsView struct {
	Sent     []backend.PlayerRequest `json:"sent"`
	Received []backend.PlayerRequest `json:"received"`
	Page     int                     `json:"page"`
	Pages    int                     `json:"pages"`
	PerPage  int                     `json:"per_page"`
	Status   string                  `json:"status"`
	Search   string                  `json:"search"`
}

// Confirmation is a destructive action waiting for the user to confirm it.
type Confirmation string

const (
	ConfirmationNone         Confirmation = ""
	ConfirmationDeletePlayer Confirmation = "delete_player"
)

func (s *State) clearTeam() {
	s.Team = nil
	s.Teams = nil
	s.IsCaptain = false
	s.JoinRequests = nil
}

func (s *State) clearPlayer() {
	s.Player = nil
	s.Invitations = nil
	s.Requests.Sent = nil
	s.Requests.Received = nil
	s.clearTeam()
}
