package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TabSeparated(t *testing.T) {
	data := "Booking_ID\tSeats\n101\tA1,B1\n120\tA20,C2"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 2)
	assert.Equal(t, "101", bookings[0].BookingID)
	assert.Equal(t, []string{"A1", "B1"}, bookings[0].Seats)
	assert.Equal(t, "120", bookings[1].BookingID)
	assert.Equal(t, []string{"A20", "C2"}, bookings[1].Seats)
}

func TestParse_QuotedCSV(t *testing.T) {
	data := "Booking_ID,Seats\n101,\"A1, B1\"\n120,\"A20, C2\""

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 2)
	assert.Equal(t, []string{"A1", "B1"}, bookings[0].Seats)
	assert.Equal(t, []string{"A20", "C2"}, bookings[1].Seats)
}

func TestParse_SpaceSeparated(t *testing.T) {
	data := "Booking_ID Seats\n101 A1 B1\n120 A20 C2"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 2)
	assert.Equal(t, []string{"A1", "B1"}, bookings[0].Seats)
	assert.Equal(t, []string{"A20", "C2"}, bookings[1].Seats)
}

func TestParse_MixedFormats(t *testing.T) {
	data := "Booking_ID,Seats\n101\tA1,B1\n120,\"A20, C2\"\n150 D15 C15"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 3)
	assert.Equal(t, []string{"A1", "B1"}, bookings[0].Seats)
	assert.Equal(t, []string{"A20", "C2"}, bookings[1].Seats)
	assert.Equal(t, []string{"D15", "C15"}, bookings[2].Seats)
}

func TestParse_MalformedQuoting(t *testing.T) {
	// Quote shows up late in the line: plain comma split with quotes stripped
	data := "Booking_ID,Seats\n101, A1, \"B2\""

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 1)
	assert.Equal(t, "101", bookings[0].BookingID)
	assert.Equal(t, []string{"A1", "B2"}, bookings[0].Seats)
}

func TestParse_InvalidSeatsDropped(t *testing.T) {
	data := "Booking_ID,Seats\n101,A1 X9 B1\n102,E5 Z0"

	bookings := ParseBookingData(data)

	// 101 keeps its valid seats; 102 has none left and is dropped
	require.Len(t, bookings, 1)
	assert.Equal(t, "101", bookings[0].BookingID)
	assert.Equal(t, []string{"A1", "B1"}, bookings[0].Seats)
}

func TestParse_LowercaseRejected(t *testing.T) {
	data := "Booking_ID,Seats\n101,a1 A2"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 1)
	assert.Equal(t, []string{"A2"}, bookings[0].Seats)
}

func TestParse_DuplicateIDKeepsFirst(t *testing.T) {
	data := "Booking_ID,Seats\n101,A1\n101,B9\n120,C2"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 2)
	assert.Equal(t, "101", bookings[0].BookingID)
	assert.Equal(t, []string{"A1"}, bookings[0].Seats)
	assert.Equal(t, "120", bookings[1].BookingID)
}

func TestParse_AllInvalidDoesNotClaimID(t *testing.T) {
	// The first 101 line carries no valid seats, so the second one counts
	data := "Booking_ID,Seats\n101,E9\n101,B9"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 1)
	assert.Equal(t, []string{"B9"}, bookings[0].Seats)
}

func TestParse_HeaderAlwaysSkipped(t *testing.T) {
	// Even a data-looking first line is treated as the header
	data := "101,A1\n120,C2"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 1)
	assert.Equal(t, "120", bookings[0].BookingID)
}

func TestParse_BlankAndShortLines(t *testing.T) {
	data := "Booking_ID,Seats\n\n101,A1\n\njustoneword\n120,C2\n"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 2)
	assert.Equal(t, "101", bookings[0].BookingID)
	assert.Equal(t, "120", bookings[1].BookingID)
}

func TestParse_TrailingSeparators(t *testing.T) {
	data := "Booking_ID,Seats\n101,A1,"

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 1)
	assert.Equal(t, []string{"A1"}, bookings[0].Seats)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, ParseBookingData(""))
	assert.Empty(t, ParseBookingData("Booking_ID,Seats"))
	assert.Empty(t, ParseBookingData("   \n  "))
}

func TestParse_QuotedFieldSplitsOnSpacesToo(t *testing.T) {
	data := "Booking_ID,Seats\n101,\"A1 B1, C1\""

	bookings := ParseBookingData(data)

	require.Len(t, bookings, 1)
	assert.Equal(t, []string{"A1", "B1", "C1"}, bookings[0].Seats)
}
