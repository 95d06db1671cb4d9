package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/topi314/academy-dashboard/internal/xio"
	"github.com/topi314/academy-dashboard/internal/xquery"
	"github.com/topi314/academy-dashboard/server/dashboard"
)

func (h *handler) ReservationHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	d := h.dashboard(r)
	err := d.FilterHistory(r.Context(), dashboard.HistoryFilter{
		Page:    xquery.ParsePage(query, "page"),
		PerPage: xquery.ParseInt(query, "per_page", 0),
		Status:  xquery.ParseString(query, "etat", ""),
		Search:  xquery.ParseString(query, "search", ""),
	})
	respond(w, r, d, err)
}

func (h *handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.CancelReservation(r.Context(), id))
}

func (h *handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	respond(w, r, d, d.DeleteReservation(r.Context(), id))
}

// ReservationQR renders the check-in code of an upcoming reservation as PNG.
func (h *handler) ReservationQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d := h.dashboard(r)
	reservation, ok := d.UpcomingReservation(id)
	if !ok {
		h.NotFound(w, r)
		return
	}

	qr, err := qrcode.New(fmt.Sprintf("reservation:%s:%s:%s", reservation.ID, reservation.Date, reservation.StartTime))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create qrcode", slog.Any("err", err))
		http.Error(w, "Failed to create qrcode", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	wc := xio.NewResponseWriteCloser(w)
	qrW := standard.NewWithWriter(wc,
		standard.WithBgTransparent(),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)

	defer func() {
		_ = qrW.Close()
	}()
	if err = qr.Save(qrW); err != nil {
		slog.ErrorContext(ctx, "Failed to save qrcode", slog.Any("err", err))
		return
	}
	slog.DebugContext(ctx, "Rendered reservation qrcode", slog.String("reservation_id", id.String()), slog.Int64("bytes", wc.Written()))
}
