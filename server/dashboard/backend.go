package dashboard

import (
	"context"
	"net/url"

	"github.com/topi314/academy-dashboard/server/backend"
)

var _ Backend = (*backend.Client)(nil)

// Backend is the part of the platform API the dashboard needs.
type Backend interface {
	GetProfile(ctx context.Context) (*backend.User, error)
	UpdateProfile(ctx context.Context, update backend.ProfileUpdate) error
	ChangePassword(ctx context.Context, change backend.PasswordChange) error
	GetActivityHistory(ctx context.Context) ([]backend.Activity, error)
	DeleteAccount(ctx context.Context, accountID backend.ID, password string) error

	GetUpcomingReservations(ctx context.Context) ([]backend.Reservation, error)
	GetReservationHistory(ctx context.Context, q backend.HistoryQuery) (backend.Page[backend.Reservation], error)
	CancelReservation(ctx context.Context, reservationID backend.ID) error
	DeleteReservation(ctx context.Context, reservationID backend.ID) error

	GetMyMemberships(ctx context.Context) ([]backend.Membership, error)
	CancelMembership(ctx context.Context, academyID backend.ID) error
	CancelSubscription(ctx context.Context, academyID backend.ID) error
	UpdatePlan(ctx context.Context, academyID backend.ID, plan backend.SubscriptionPlan) error

	GetAllPlayers(ctx context.Context, query url.Values) ([]backend.Player, error)
	GetPlayer(ctx context.Context, playerID backend.ID) (*backend.Player, error)
	CreatePlayer(ctx context.Context, input backend.PlayerInput) (*backend.Player, error)
	UpdatePlayer(ctx context.Context, playerID backend.ID, input backend.PlayerInput) (*backend.Player, error)
	DeletePlayer(ctx context.Context, playerID backend.ID) error

	GetMyTeam(ctx context.Context, playerID backend.ID, include string) ([]backend.Team, error)
	UpdateTeam(ctx context.Context, teamID backend.ID, update backend.TeamUpdate) error
	DeleteTeam(ctx context.Context, teamID backend.ID) error
	JoinTeam(ctx context.Context, teamID backend.ID) error
	RemoveTeamMember(ctx context.Context, teamID backend.ID, playerID backend.ID, body backend.RemoveMember) error

	GetPendingInvitations(ctx context.Context) ([]backend.PlayerTeam, error)
	GetPendingJoinRequests(ctx context.Context, teamID backend.ID) ([]backend.PlayerTeam, error)
	AcceptInvitation(ctx context.Context, invitationID backend.ID) error
	RefuseInvitation(ctx context.Context, invitationID backend.ID) error
	ProcessJoinRequest(ctx context.Context, requestID backend.ID, status backend.JoinRequestStatus) error
	InviteRoutes() []backend.InviteRoute

	GetPlayerRequests(ctx context.Context, q backend.RequestQuery) (backend.Page[backend.PlayerRequest], error)
	CreateRequest(ctx context.Context, input backend.RequestInput) error
	AcceptRequest(ctx context.Context, requestID backend.ID) error
	RejectRequest(ctx context.Context, requestID backend.ID) error
	CancelRequest(ctx context.Context, requestID backend.ID) error
	DeletePlayerRequest(ctx context.Context, requestID backend.ID) error
}

// Notifier forwards noteworthy events to the operators.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) {}
