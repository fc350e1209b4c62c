package sequencer

import "github.com/nathanyu/boarding-optimizer/internal/domain"

// bookingBand is a booking queued for ordering together with its resolved
// distance band.
type bookingBand struct {
	booking     domain.Booking
	maxDistance float64
	minDistance float64
}

// bookingHeap pops the farthest booking first. Equal max distances pop in
// ascending bookingID order so repeated runs over the same batch produce
// identical sequences.
type bookingHeap []*bookingBand

func (h bookingHeap) Len() int { return len(h) }

func (h bookingHeap) Less(i, j int) bool {
	if h[i].maxDistance != h[j].maxDistance {
		return h[i].maxDistance > h[j].maxDistance
	}
	return h[i].booking.BookingID < h[j].booking.BookingID
}

func (h bookingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *bookingHeap) Push(x any) { *h = append(*h, x.(*bookingBand)) }

func (h *bookingHeap) Pop() any {
	old := *h
	n := len(old)
	band := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return band
}
