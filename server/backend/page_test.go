package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	historyItemA = `{"id_reservation": 1, "date_reservation": "2026-01-10", "etat": "reserver"}`
	historyItemB = `{"id_reservation": "2", "date_reservation": "2026-01-11", "etat": "annuler"}`
	historyItemC = `{"id_reservation": 3, "date_reservation": "2026-01-12", "etat": "reserver"}`
)

func TestParsePageShapesAgree(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		meta  string
		shape Shape
		pages int
	}{
		{
			name:  "flat",
			data:  `[` + historyItemA + `,` + historyItemB + `,` + historyItemC + `]`,
			shape: ShapeFlat,
			pages: 1,
		},
		{
			name:  "flat with meta",
			data:  `[` + historyItemA + `,` + historyItemB + `,` + historyItemC + `]`,
			meta:  `{"last_page": 4, "total": 12}`,
			shape: ShapeFlat,
			pages: 4,
		},
		{
			name:  "wrapped",
			data:  `{"current_page": 1, "data": [` + historyItemA + `,` + historyItemB + `,` + historyItemC + `], "last_page": "2", "total": 6}`,
			shape: ShapeWrapped,
			pages: 2,
		},
		{
			name:  "wrapped without pagination",
			data:  `{"data": [` + historyItemA + `,` + historyItemB + `,` + historyItemC + `]}`,
			shape: ShapeWrapped,
			pages: 1,
		},
		{
			name:  "grouped",
			data:  `{"zeta": [` + historyItemA + `], "count": 3, "alpha": [` + historyItemB + `,` + historyItemC + `]}`,
			shape: ShapeGrouped,
			pages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta json.RawMessage
			if tt.meta != "" {
				meta = json.RawMessage(tt.meta)
			}

			page, err := ParsePage[Reservation](json.RawMessage(tt.data), meta)
			require.NoError(t, err)

			assert.Equal(t, tt.shape, page.Shape)
			assert.Equal(t, tt.pages, page.Pages)
			require.Len(t, page.Items, 3)
			assert.Equal(t, []ID{"1", "2", "3"}, []ID{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID})
			assert.Equal(t, ReservationStatusCancelled, page.Items[1].Status)
		})
	}
}

func TestParsePageDegrades(t *testing.T) {
	for _, data := range []string{``, `null`, `"nope"`, `{"message": "nothing"}`, `42`} {
		page, err := ParsePage[Reservation](json.RawMessage(data), nil)
		require.NoError(t, err, data)
		assert.Empty(t, page.Items, data)
		assert.Equal(t, 1, page.Pages, data)
		assert.Equal(t, ShapeUnknown, page.Shape, data)
	}
}

func TestParsePageNeverBelowOnePage(t *testing.T) {
	page, err := ParsePage[Reservation](json.RawMessage(`{"data": [], "last_page": 0}`), json.RawMessage(`{"total_pages": -3}`))
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pages)
}

func TestParsePageNestedPagination(t *testing.T) {
	page, err := ParsePage[Reservation](json.RawMessage(`{"data": [`+historyItemA+`], "pagination": {"total_pages": 5, "total": 41}}`), nil)
	require.NoError(t, err)
	assert.Equal(t, ShapeWrapped, page.Shape)
	assert.Equal(t, 5, page.Pages)
	assert.Equal(t, 41, page.Total)
}
