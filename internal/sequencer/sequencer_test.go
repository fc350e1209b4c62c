package sequencer

import (
	"context"
	"fmt"
	"testing"

	"github.com/nathanyu/boarding-optimizer/internal/domain"
	"github.com/nathanyu/boarding-optimizer/internal/seatmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(id string, seats ...string) domain.Booking {
	return domain.Booking{BookingID: id, Seats: seats}
}

func newSequencer() (*Sequencer, *seatmap.Resolver) {
	r := seatmap.NewResolver()
	return NewSequencer(r), r
}

func TestSequence_FarthestFirst(t *testing.T) {
	s, _ := newSequencer()

	result, _, err := s.Sequence(context.Background(), []domain.Booking{
		newBooking("101", "A1", "B1"),
		newBooking("120", "A20", "C2"),
		newBooking("150", "D15", "C15"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalBookings)
	assert.Equal(t, 6, result.TotalPassengers)

	require.Len(t, result.BoardingSequence, 3)
	// 120 boards first (A20 = 20.3), then 150 (C15 = 15.1), then 101 (A1 = 1.3)
	assert.Equal(t, "120", result.BoardingSequence[0].BookingID)
	assert.Equal(t, "150", result.BoardingSequence[1].BookingID)
	assert.Equal(t, "101", result.BoardingSequence[2].BookingID)

	for i, entry := range result.BoardingSequence {
		assert.Equal(t, i+1, entry.Sequence)
	}
}

func TestSequence_DistanceBand(t *testing.T) {
	s, _ := newSequencer()

	result, _, err := s.Sequence(context.Background(), []domain.Booking{
		newBooking("BOOK1", "A10", "B10"),
	})
	require.NoError(t, err)

	require.Len(t, result.BoardingSequence, 1)
	entry := result.BoardingSequence[0]
	assert.Equal(t, 10.3, entry.MaxDistance)
	assert.Equal(t, 10.2, entry.MinDistance)
	assert.Equal(t, []string{"A10", "B10"}, entry.Seats) // input order kept
}

func TestSequence_TieBreakByBookingID(t *testing.T) {
	s, _ := newSequencer()

	// Same max distance (12.3); alphabetical IDs decide
	result, _, err := s.Sequence(context.Background(), []domain.Booking{
		newBooking("gamma", "A12"),
		newBooking("alpha", "A12", "D1"),
		newBooking("beta", "A12", "C3"),
	})
	require.NoError(t, err)

	require.Len(t, result.BoardingSequence, 3)
	assert.Equal(t, "alpha", result.BoardingSequence[0].BookingID)
	assert.Equal(t, "beta", result.BoardingSequence[1].BookingID)
	assert.Equal(t, "gamma", result.BoardingSequence[2].BookingID)
}

func TestSequence_EmptyBatch(t *testing.T) {
	s, _ := newSequencer()

	result, _, err := s.Sequence(context.Background(), nil)
	require.NoError(t, err)

	assert.NotNil(t, result.BoardingSequence)
	assert.Empty(t, result.BoardingSequence)
	assert.Equal(t, 0, result.TotalBookings)
	assert.Equal(t, 0, result.TotalPassengers)
}

func TestSequence_InvalidSeatFailsBatch(t *testing.T) {
	s, _ := newSequencer()

	result, _, err := s.Sequence(context.Background(), []domain.Booking{
		newBooking("ok", "A1"),
		newBooking("bad", "E5"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, seatmap.ErrInvalidSeatFormat)
	assert.Contains(t, err.Error(), "bad")
	assert.Nil(t, result)
}

func TestSequence_NoSeatsFailsBatch(t *testing.T) {
	s, _ := newSequencer()

	_, _, err := s.Sequence(context.Background(), []domain.Booking{
		newBooking("empty"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no seats")
}

func TestSequence_CacheReport(t *testing.T) {
	s, r := newSequencer()

	batch := []domain.Booking{
		newBooking("101", "A1", "B1"),
		newBooking("120", "A20", "C2"),
	}

	_, report, err := s.Sequence(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), report.CacheHits)
	assert.Equal(t, uint64(4), report.CacheMisses)

	// Same batch again resolves entirely from the cache
	_, report, err = s.Sequence(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), report.CacheHits)
	assert.Equal(t, uint64(4), report.CacheMisses)
	assert.Equal(t, 0.5, report.HitRate)
	assert.Equal(t, 4, r.Len())
}

func TestSequence_RepeatedSeatCountsPerOccurrence(t *testing.T) {
	s, _ := newSequencer()

	result, report, err := s.Sequence(context.Background(), []domain.Booking{
		newBooking("twins", "A3", "A3"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalPassengers)
	assert.Equal(t, 3.3, result.BoardingSequence[0].MaxDistance)
	assert.Equal(t, 3.3, result.BoardingSequence[0].MinDistance)
	// Second occurrence is a cache hit
	assert.Equal(t, uint64(1), report.CacheHits)
	assert.Equal(t, uint64(1), report.CacheMisses)
}

func TestSequence_InputUntouched(t *testing.T) {
	s, _ := newSequencer()

	batch := []domain.Booking{
		newBooking("101", "A1"),
		newBooking("120", "A20"),
		newBooking("110", "A10"),
	}

	_, _, err := s.Sequence(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, "101", batch[0].BookingID)
	assert.Equal(t, "120", batch[1].BookingID)
	assert.Equal(t, "110", batch[2].BookingID)
}

func TestSequence_DenseNumberingAndMonotoneDistance(t *testing.T) {
	s, _ := newSequencer()

	columns := []string{"A", "B", "C", "D"}
	batch := make([]domain.Booking, 0, 40)
	for i := 0; i < 40; i++ {
		seat := fmt.Sprintf("%s%d", columns[i%len(columns)], (i*7)%25+1)
		batch = append(batch, newBooking(fmt.Sprintf("bk-%02d", i), seat))
	}

	result, _, err := s.Sequence(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, result.BoardingSequence, 40)

	for i, entry := range result.BoardingSequence {
		assert.Equal(t, i+1, entry.Sequence)
		if i > 0 {
			prev := result.BoardingSequence[i-1]
			assert.GreaterOrEqual(t, prev.MaxDistance, entry.MaxDistance)
		}
	}
}

func TestSequence_Deterministic(t *testing.T) {
	s, _ := newSequencer()

	batch := []domain.Booking{
		newBooking("b2", "C7", "D7"),
		newBooking("b1", "A7"),
		newBooking("b3", "B7"),
	}

	first, _, err := s.Sequence(context.Background(), batch)
	require.NoError(t, err)
	second, _, err := s.Sequence(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, first.BoardingSequence, second.BoardingSequence)
}
