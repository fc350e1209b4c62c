package domain

import "time"

// Booking is a single reservation: an opaque, caller-supplied ID and the seat
// labels it holds. Seats keep their input order and may repeat; every
// occurrence counts as one passenger.
type Booking struct {
	BookingID string   `json:"bookingId"`
	Seats     []string `json:"seats"`
}

// SequencedEntry is one row of a produced boarding order. Sequence numbers
// are dense and 1-based in emit order.
type SequencedEntry struct {
	Sequence    int      `json:"sequence"`
	BookingID   string   `json:"bookingId"`
	Seats       []string `json:"seats"`
	MaxDistance float64  `json:"maxDistance"`
	MinDistance float64  `json:"minDistance"`
}

// BoardingResult bundles the ordered sequence with batch totals.
// TotalPassengers is the sum of seat counts over all bookings, counting a
// repeated seat label once per occurrence.
type BoardingResult struct {
	BoardingSequence []SequencedEntry `json:"boardingSequence"`
	TotalBookings    int              `json:"totalBookings"`
	TotalPassengers  int              `json:"totalPassengers"`
}

// EfficiencyReport summarizes how close a produced sequence is to the ideal
// farthest-first order. All three metrics are zero for an empty sequence.
type EfficiencyReport struct {
	AverageDistance   float64 `json:"averageDistance"`
	BlockingPotential float64 `json:"blockingPotential"`
	OptimalityScore   float64 `json:"optimalityScore"`
}

// SequenceComputedEvent is fanned out to downstream consumers (gate displays,
// ops dashboards) after a boarding sequence has been produced.
type SequenceComputedEvent struct {
	EventID          string           `json:"eventId"`
	Filename         string           `json:"filename,omitempty"`
	ComputedAt       time.Time        `json:"computedAt"`
	TotalBookings    int              `json:"totalBookings"`
	TotalPassengers  int              `json:"totalPassengers"`
	BoardingSequence []SequencedEntry `json:"boardingSequence"`
}
