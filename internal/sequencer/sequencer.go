package sequencer

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/nathanyu/boarding-optimizer/internal/domain"
	"github.com/nathanyu/boarding-optimizer/internal/seatmap"
	"github.com/nathanyu/boarding-optimizer/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Report carries per-batch diagnostics: wall-clock time plus the resolver's
// cache counters as of the end of the batch. It is logged and exported as
// metrics on the server side and never serialized into a client response.
type Report struct {
	Elapsed     time.Duration
	CacheHits   uint64
	CacheMisses uint64
	HitRate     float64
}

// Sequencer turns booking batches into boarding sequences, farthest seat
// first. The priority of a booking is the largest distance among its seats,
// so a whole party boards when its deepest-seated member would.
type Sequencer struct {
	resolver *seatmap.Resolver
}

// NewSequencer creates a sequencer backed by the given distance resolver.
// Sharing one resolver across sequencers (and requests) is what makes the
// cache counters meaningful.
func NewSequencer(resolver *seatmap.Resolver) *Sequencer {
	return &Sequencer{resolver: resolver}
}

// Sequence resolves every seat of every booking, orders the batch by max
// distance descending (ties broken by ascending bookingID) and assigns dense
// 1-based sequence numbers. A booking's seats keep their input order in the
// output. One invalid seat label fails the whole batch; an empty batch
// succeeds with empty results. The input slice is left untouched.
func (s *Sequencer) Sequence(ctx context.Context, bookings []domain.Booking) (*domain.BoardingResult, Report, error) {
	start := time.Now()
	before := s.resolver.Stats()

	if telemetry.Tracer != nil {
		var span trace.Span
		ctx, span = telemetry.Tracer.Start(ctx, "sequencer.Sequence",
			trace.WithAttributes(attribute.Int("bookings", len(bookings))),
		)
		defer span.End()
	}

	pq := make(bookingHeap, 0, len(bookings))
	totalPassengers := 0
	for _, b := range bookings {
		band, err := s.resolveBand(b)
		if err != nil {
			telemetry.SequencesTotal.WithLabelValues("error").Inc()
			if span := trace.SpanFromContext(ctx); span.IsRecording() {
				span.RecordError(err)
			}
			return nil, Report{}, err
		}
		heap.Push(&pq, band)
		totalPassengers += len(b.Seats)
	}

	entries := make([]domain.SequencedEntry, 0, len(bookings))
	for seq := 1; pq.Len() > 0; seq++ {
		band := heap.Pop(&pq).(*bookingBand)
		entries = append(entries, domain.SequencedEntry{
			Sequence:    seq,
			BookingID:   band.booking.BookingID,
			Seats:       band.booking.Seats,
			MaxDistance: band.maxDistance,
			MinDistance: band.minDistance,
		})
	}

	after := s.resolver.Stats()
	report := Report{
		Elapsed:     time.Since(start),
		CacheHits:   after.Hits,
		CacheMisses: after.Misses,
		HitRate:     after.HitRate(),
	}

	telemetry.SequencesTotal.WithLabelValues("ok").Inc()
	telemetry.SequenceDuration.Observe(report.Elapsed.Seconds())
	telemetry.BatchBookings.Observe(float64(len(bookings)))
	telemetry.BatchPassengers.Observe(float64(totalPassengers))
	telemetry.SeatCacheHitsTotal.Add(float64(after.Hits - before.Hits))
	telemetry.SeatCacheMissesTotal.Add(float64(after.Misses - before.Misses))
	telemetry.SeatCacheEntries.Set(float64(s.resolver.Len()))

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("passengers", totalPassengers),
			attribute.Float64("cache_hit_rate", report.HitRate),
		)
	}

	return &domain.BoardingResult{
		BoardingSequence: entries,
		TotalBookings:    len(entries),
		TotalPassengers:  totalPassengers,
	}, report, nil
}

// resolveBand computes the min/max distance band for one booking.
func (s *Sequencer) resolveBand(b domain.Booking) (*bookingBand, error) {
	if len(b.Seats) == 0 {
		// Ingestion drops seatless bookings before they get here.
		return nil, fmt.Errorf("booking %q has no seats", b.BookingID)
	}

	band := &bookingBand{booking: b}
	for i, seat := range b.Seats {
		d, err := s.resolver.Resolve(seat)
		if err != nil {
			return nil, fmt.Errorf("booking %q: %w", b.BookingID, err)
		}
		if i == 0 || d > band.maxDistance {
			band.maxDistance = d
		}
		if i == 0 || d < band.minDistance {
			band.minDistance = d
		}
	}
	return band, nil
}
