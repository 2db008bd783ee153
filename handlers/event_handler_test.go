package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar-system/services"
)

func makeEventRecords(n int) []*core.Record {
	collection := core.NewBaseCollection("events")
	records := make([]*core.Record, 0, n)
	for i := 0; i < n; i++ {
		record := core.NewRecord(collection)
		record.Set("name", fmt.Sprintf("event-%d", i))
		records = append(records, record)
	}
	return records
}

func TestPageRecords(t *testing.T) {
	records := makeEventRecords(5)

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantNames []string
	}{
		{"First page", 2, 0, []string{"event-0", "event-1"}},
		{"Middle page", 2, 2, []string{"event-2", "event-3"}},
		{"Short last page", 2, 4, []string{"event-4"}},
		{"Offset past the end", 2, 10, nil},
		{"Limit beyond the set", 10, 0, []string{"event-0", "event-1", "event-2", "event-3", "event-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := pageRecords(records, tt.limit, tt.offset)

			names := make([]string, 0, len(page))
			for _, record := range page {
				names = append(names, record.GetString("name"))
			}
			if tt.wantNames == nil {
				assert.Empty(t, page)
				return
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func formRequestEvent(t *testing.T, form string) *core.RequestEvent {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/bazaar/events", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	e := &core.RequestEvent{}
	e.Request = req
	e.Response = httptest.NewRecorder()
	return e
}

func TestEventInputFromForm(t *testing.T) {
	e := formRequestEvent(t, "name=Night+Market&price=15000&booth_slot=20&contact=081234567890")

	in, err := eventInputFromForm(e)
	require.NoError(t, err)

	require.NotNil(t, in.Name)
	assert.Equal(t, "Night Market", *in.Name)
	require.NotNil(t, in.Price)
	assert.Equal(t, 15000, *in.Price)
	require.NotNil(t, in.BoothSlot)
	assert.Equal(t, 20, *in.BoothSlot)
	assert.Nil(t, in.Description)
}

func TestEventInputFromForm_UnparseableNumberIsAnError(t *testing.T) {
	e := formRequestEvent(t, "name=Night+Market&price=abc&booth_slot=many")

	in, err := eventInputFromForm(e)
	require.Error(t, err)
	assert.Nil(t, in)

	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "price must be an integer")
	assert.Contains(t, vErr.Fields, "booth_slot must be an integer")
}
