package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/topi314/academy-dashboard/server/backend"
)

type RequestFilter struct {
	Page   int
	Status string
	Search string
}

type RequestForm struct {
	Receiver     backend.ID `json:"receiver"`
	MatchDate    string     `json:"match_date"`
	StartingTime string     `json:"starting_time"`
	Message      string     `json:"message"`
}

// SplitRequests sorts every request into exactly one of sent or received. A request is sent if
// playerID is its sender.
func SplitRequests(playerID backend.ID, requests []backend.PlayerRequest) (sent []backend.PlayerRequest, received []backend.PlayerRequest) {
	for _, r := range requests {
		if !playerID.IsZero() && (r.Sender == playerID || r.SenderID == playerID) {
			sent = append(sent, r)
			continue
		}
		received = append(received, r)
	}
	return sent, received
}

func (d *Dashboard) fetchRequests(ctx context.Context) error {
	gen := d.begin(ResourceRequests)

	var (
		playerID backend.ID
		q        backend.RequestQuery
	)
	d.view(func(s State) {
		if s.Player != nil {
			playerID = s.Player.ID
		}
		q = backend.RequestQuery{
			Page:    s.Requests.Page,
			PerPage: s.Requests.PerPage,
			Status:  s.Requests.Status,
			Search:  s.Requests.Search,
		}
	})
	if playerID.IsZero() {
		d.commit(ctx, ResourceRequests, gen, func(s *State) {
			s.Requests.Sent = nil
			s.Requests.Received = nil
			s.Requests.Pages = 1
			delete(s.Errors, ResourceRequests)
		}, nil)
		return nil
	}

	page, err := d.backend.GetPlayerRequests(ctx, q)
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		d.commit(ctx, ResourceRequests, gen, func(s *State) {
			s.Errors[ResourceRequests] = "Could not load your match requests: " + backend.Message(err)
		}, nil)
		return fmt.Errorf("failed to fetch player requests: %w", err)
	}

	sent, received := SplitRequests(playerID, page.Items)
	d.commit(ctx, ResourceRequests, gen, func(s *State) {
		s.Requests.Sent = sent
		s.Requests.Received = received
		s.Requests.Pages = max(page.Pages, 1)
		delete(s.Errors, ResourceRequests)
	}, nil)
	return nil
}

// FilterRequests changes the request filter and loads the matching page.
func (d *Dashboard) FilterRequests(ctx context.Context, filter RequestFilter) error {
	d.update(func(s *State) {
		s.Requests.Page = max(filter.Page, 1)
		s.Requests.Status = strings.TrimSpace(filter.Status)
		s.Requests.Search = strings.TrimSpace(filter.Search)
	})
	return d.fetchRequests(ctx)
}

func (d *Dashboard) CreateRequest(ctx context.Context, form RequestForm) error {
	if err := validID("receiver", form.Receiver); err != nil {
		return err
	}
	if err := required("match_date", form.MatchDate); err != nil {
		return err
	}
	if err := required("starting_time", form.StartingTime); err != nil {
		return err
	}
	startingTime, err := normalizeClock("starting_time", form.StartingTime)
	if err != nil {
		return err
	}
	playerID := d.playerID()
	if playerID.IsZero() {
		return ErrNoPlayer
	}
	if form.Receiver == playerID {
		return invalid("receiver", "you cannot send a request to yourself")
	}

	err = d.backend.CreateRequest(ctx, backend.RequestInput{
		Receiver:     form.Receiver,
		MatchDate:    strings.TrimSpace(form.MatchDate),
		StartingTime: startingTime,
		Message:      strings.TrimSpace(form.Message),
	})
	if err != nil {
		d.failed("Could not send the match request", err)
		return fmt.Errorf("failed to create player request: %w", err)
	}

	d.notice(NoticeSuccess, "Match request sent")
	d.refreshRequests(ctx)
	return nil
}

func (d *Dashboard) AcceptRequest(ctx context.Context, requestID backend.ID) error {
	return d.answerRequest(ctx, requestID, d.backend.AcceptRequest, "accept", "Match request accepted")
}

func (d *Dashboard) RejectRequest(ctx context.Context, requestID backend.ID) error {
	return d.answerRequest(ctx, requestID, d.backend.RejectRequest, "reject", "Match request rejected")
}

func (d *Dashboard) CancelRequest(ctx context.Context, requestID backend.ID) error {
	return d.answerRequest(ctx, requestID, d.backend.CancelRequest, "cancel", "Match request cancelled")
}

func (d *Dashboard) answerRequest(ctx context.Context, requestID backend.ID, call func(context.Context, backend.ID) error, verb string, success string) error {
	if err := validID("id", requestID); err != nil {
		return err
	}
	if err := call(ctx, requestID); err != nil {
		d.failed("Could not "+verb+" the match request", err)
		return fmt.Errorf("failed to %s player request: %w", verb, err)
	}

	d.notice(NoticeSuccess, "%s", success)
	d.refreshRequests(ctx)
	return nil
}

// DeleteRequest removes the request right away and refetches the list if the backend refuses.
func (d *Dashboard) DeleteRequest(ctx context.Context, requestID backend.ID) error {
	if err := validID("id", requestID); err != nil {
		return err
	}

	idOf := func(r backend.PlayerRequest) backend.ID {
		return r.ID
	}
	d.supersede(ResourceRequests, func(s *State) {
		s.Requests.Sent = removeByID(s.Requests.Sent, requestID, idOf)
		s.Requests.Received = removeByID(s.Requests.Received, requestID, idOf)
	})

	if err := d.backend.DeletePlayerRequest(ctx, requestID); err != nil {
		d.failed("Could not delete the match request", err)
		d.refreshRequests(ctx)
		return fmt.Errorf("failed to delete player request: %w", err)
	}

	d.notice(NoticeSuccess, "Match request deleted")
	return nil
}

func (d *Dashboard) refreshRequests(ctx context.Context) {
	if err := d.fetchRequests(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh player requests", slog.Any("err", err))
	}
}
