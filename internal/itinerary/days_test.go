package itinerary

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/wanderlust/internal/models"
)

func TestDays(t *testing.T) {
	seq, err := Days("2024-03-01", "2024-03-03")
	require.NoError(t, err)

	want := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	assert.Equal(t, want, slices.Collect(seq))
	// последовательность можно пройти повторно
	assert.Equal(t, want, slices.Collect(seq))
}

func TestDays_AcrossMonthAndLeapDay(t *testing.T) {
	seq, err := Days("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, slices.Collect(seq))
}

func TestDays_EarlyBreak(t *testing.T) {
	seq, err := Days("2024-01-01", "2024-12-31")
	require.NoError(t, err)

	var got []string
	for d := range seq {
		got = append(got, d)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, got)
}

func TestDays_Errors(t *testing.T) {
	_, err := Days("2024-03-03", "2024-03-01")
	assert.Error(t, err)

	_, err = Days("bad", "2024-03-01")
	assert.Error(t, err)
}

func TestDayList(t *testing.T) {
	trip := models.Trip{ID: "t", StartDate: "2024-03-01", EndDate: "2024-03-01"}
	days, err := DayList(&trip)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01"}, days)

	trip.EndDate = "2024-02-01"
	_, err = DayList(&trip)
	assert.Error(t, err)
}

func TestPositionAndFlightFor(t *testing.T) {
	departure := &models.FlightInfo{Code: "OUT1"}
	ret := &models.FlightInfo{Code: "IN1"}
	trip := models.Trip{
		StartDate:       "2024-03-01",
		EndDate:         "2024-03-03",
		DepartureFlight: departure,
		ReturnFlight:    ret,
	}

	tests := []struct {
		date       string
		wantPos    DayPosition
		wantFlight *models.FlightInfo
	}{
		{date: "2024-03-01", wantPos: First, wantFlight: departure},
		{date: "2024-03-02", wantPos: Interior, wantFlight: nil},
		{date: "2024-03-03", wantPos: Last, wantFlight: ret},
		{date: "2024-02-29", wantPos: Outside, wantFlight: nil},
		{date: "2024-03-04", wantPos: Outside, wantFlight: nil},
		{date: "garbage", wantPos: Outside, wantFlight: nil},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.wantPos, Position(&trip, tt.date))
			assert.Equal(t, tt.wantFlight, FlightFor(&trip, tt.date))
		})
	}
}

func TestPosition_OneDayTripIsFirst(t *testing.T) {
	trip := models.Trip{
		StartDate:       "2024-03-01",
		EndDate:         "2024-03-01",
		DepartureFlight: &models.FlightInfo{Code: "OUT"},
		ReturnFlight:    &models.FlightInfo{Code: "IN"},
	}
	assert.Equal(t, First, Position(&trip, "2024-03-01"))
	assert.Equal(t, "OUT", FlightFor(&trip, "2024-03-01").Code)
}

func TestDayPosition_String(t *testing.T) {
	assert.Equal(t, "first", First.String())
	assert.Equal(t, "outside", Outside.String())
}
