package backend

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/topi314/academy-dashboard/internal/omit"
	"github.com/topi314/academy-dashboard/internal/xstrconv"
)

// ID is an identifier that the backend sends either as a number or as a string.
// Objects are accepted too, in which case their id_player or id field is used.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Valid reports whether id can be placed in a request path as a single segment.
func (id ID) Valid() bool {
	return idPattern.MatchString(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*id = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(xstrconv.NormalizeID(s))
	case data[0] == '{':
		var obj struct {
			PlayerID *ID `json:"id_player"`
			ID       *ID `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*id = ""
		if obj.PlayerID != nil {
			*id = *obj.PlayerID
		} else if obj.ID != nil {
			*id = *obj.ID
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = ID(xstrconv.NormalizeID(n))
	}
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// Int tolerates numbers, numeric strings and null.
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	f, err := parseNumber(data)
	if err != nil {
		return err
	}
	*i = Int(f)
	return nil
}

// Float tolerates numbers, numeric strings and null.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	v, err := parseNumber(data)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

func parseNumber(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return 0, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// Text is a message that may arrive as a string or as any other json value.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

type User struct {
	ID        ID     `json:"id_compte"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
	BirthDate string `json:"date_naissance"`
	Age       Int    `json:"age"`
	AvatarURL string `json:"photo_url"`
	Role      string `json:"role"`
	PlayerID  ID     `json:"id_player,omitempty"`
}

type ProfileUpdate struct {
	LastName  omit.Omit[string] `json:"nom,omitzero"`
	FirstName omit.Omit[string] `json:"prenom,omitzero"`
	Email     omit.Omit[string] `json:"email,omitzero"`
	Phone     omit.Omit[string] `json:"telephone,omitzero"`
	BirthDate omit.Omit[string] `json:"date_naissance,omitzero"`
	Age       omit.Omit[int]    `json:"age,omitzero"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"new_password_confirmation"`
}

type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "reserver"
	ReservationStatusPending   ReservationStatus = "en attente"
	ReservationStatusCancelled ReservationStatus = "annuler"
)

type Reservation struct {
	ID        ID                `json:"id_reservation"`
	FieldID   ID                `json:"id_terrain"`
	FieldName string            `json:"nom_terrain"`
	Date      string            `json:"date_reservation"`
	StartTime string            `json:"heure_debut"`
	EndTime   string            `json:"heure_fin"`
	Status    ReservationStatus `json:"etat"`
	UserID    ID                `json:"id_client"`
}

type HistoryQuery struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}

type SubscriptionPlan string

const (
	PlanBase    SubscriptionPlan = "base"
	PlanPremium SubscriptionPlan = "premium"
)

func (p SubscriptionPlan) Valid() bool {
	return p == PlanBase || p == PlanPremium
}

type Membership struct {
	ID          ID               `json:"id_member"`
	AcademyID   ID               `json:"id_academie"`
	AcademyName string           `json:"nom_academie"`
	Plan        SubscriptionPlan `json:"subscription_plan"`
	Status      string           `json:"status"`
	JoinedAt    string           `json:"date_adhesion"`
}

type Activity struct {
	ID         ID     `json:"id_activite_member"`
	MemberID   ID     `json:"id_member"`
	ActivityID ID     `json:"id_activite"`
	Title      string `json:"titre"`
	Date       string `json:"date_activite"`
	Status     string `json:"status"`
}

type Player struct {
	ID              ID     `json:"id_player"`
	AccountID       ID     `json:"id_compte"`
	Position        string `json:"position"`
	Rating          Float  `json:"rating"`
	StartTime       string `json:"starting_time"`
	FinishTime      string `json:"finishing_time"`
	Misses          Int    `json:"misses"`
	InvitesAccepted Int    `json:"invites_accepted"`
	InvitesRefused  Int    `json:"invites_refused"`
	TotalInvites    Int    `json:"total_invites"`
}

type PlayerInput struct {
	AccountID  ID     `json:"id_compte,omitempty"`
	Position   string `json:"position"`
	StartTime  string `json:"starting_time"`
	FinishTime string `json:"finishing_time"`
}

type Team struct {
	ID              ID       `json:"id_teams"`
	Captain         ID       `json:"capitaine"`
	Rating          Float    `json:"rating"`
	StartTime       string   `json:"starting_time"`
	FinishTime      string   `json:"finishing_time"`
	TotalMatches    Int      `json:"total_matches"`
	Misses          Int      `json:"misses"`
	InvitesAccepted Int      `json:"invites_accepted"`
	InvitesRefused  Int      `json:"invites_refused"`
	TotalInvites    Int      `json:"total_invites"`
	Members         []Player `json:"members"`
}

// TeamUpdate carries the whole team record, counters included, because the backend replaces it.
type TeamUpdate struct {
	Captain         ID      `json:"capitaine"`
	StartTime       string  `json:"starting_time"`
	FinishTime      string  `json:"finishing_time"`
	Rating          float64 `json:"rating"`
	TotalMatches    int     `json:"total_matches"`
	Misses          int     `json:"misses"`
	InvitesAccepted int     `json:"invites_accepted"`
	InvitesRefused  int     `json:"invites_refused"`
	TotalInvites    int     `json:"total_invites"`
}

type RemoveMember struct {
	Captain ID     `json:"capitaine"`
	Reason  string `json:"reason,omitempty"`
}

// PlayerTeam is a pending team invitation or join request.
type PlayerTeam struct {
	ID        ID      `json:"id"`
	PlayerID  ID      `json:"player_id"`
	TeamID    ID      `json:"team_id"`
	Status    string  `json:"status"`
	Type      string  `json:"type"`
	CreatedAt string  `json:"created_at"`
	Player    *Player `json:"player,omitempty"`
	Team      *Team   `json:"team,omitempty"`
}

type JoinRequestStatus string

const (
	JoinRequestAccepted JoinRequestStatus = "accepted"
	JoinRequestRefused  JoinRequestStatus = "refused"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusExpired   RequestStatus = "expired"
)

type PlayerRequest struct {
	ID           ID            `json:"id"`
	Sender       ID            `json:"sender"`
	SenderID     ID            `json:"id_sender"`
	Receiver     ID            `json:"receiver"`
	ReceiverID   ID            `json:"id_receiver"`
	MatchDate    string        `json:"match_date"`
	StartingTime string        `json:"starting_time"`
	Message      string        `json:"message"`
	Status       RequestStatus `json:"status"`
	CreatedAt    string        `json:"created_at"`
}

type RequestInput struct {
	Receiver     ID     `json:"receiver"`
	MatchDate    string `json:"match_date"`
	StartingTime string `json:"starting_time"`
	Message      string `json:"message,omitempty"`
}

type RequestQuery struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}
