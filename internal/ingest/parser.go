package ingest

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/nathanyu/boarding-optimizer/internal/domain"
	"github.com/nathanyu/boarding-optimizer/internal/seatmap"
)

var (
	// quotedCSV matches lines like `101, "A1, B1"` where the seat list is
	// one quoted CSV field.
	quotedCSV = regexp.MustCompile(`^([^,]+),\s*"([^"]+)"`)

	// fieldSep splits on any run of commas and whitespace, which covers the
	// tab-, space- and comma-separated shapes booking exports come in.
	fieldSep = regexp.MustCompile(`[\s,]+`)
)

// ParseBookingData turns raw booking text into a batch ready for sequencing.
// The first line is always treated as a header and skipped. Each remaining
// non-empty line is one booking: an ID followed by its seat labels.
//
// Malformed lines never fail the batch. Lines that cannot be split, repeated
// booking IDs (first occurrence wins) and seat labels that are not valid are
// dropped with a warning; a booking whose seats are all invalid is dropped
// entirely.
func ParseBookingData(data string) []domain.Booking {
	lines := strings.Split(strings.TrimSpace(data), "\n")

	bookings := make([]domain.Booking, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))

	for i, line := range lines {
		if i == 0 {
			continue // header row
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		bookingID, seatsField := splitLine(line)
		if bookingID == "" || seatsField == "" {
			continue
		}

		if _, dup := seen[bookingID]; dup {
			slog.Warn("duplicate booking id, keeping first occurrence", "bookingId", bookingID)
			continue
		}

		seats := splitSeats(seatsField)
		valid := make([]string, 0, len(seats))
		for _, s := range seats {
			if seatmap.ValidLabel(s) {
				valid = append(valid, s)
			}
		}
		if len(valid) != len(seats) {
			slog.Warn("dropped invalid seat labels",
				"bookingId", bookingID,
				"dropped", len(seats)-len(valid),
			)
		}
		if len(valid) == 0 {
			continue
		}

		seen[bookingID] = struct{}{}
		bookings = append(bookings, domain.Booking{BookingID: bookingID, Seats: valid})
	}

	return bookings
}

// splitLine separates a raw line into a booking ID and the seat list field.
// It accepts quoted CSV, plain CSV and whitespace-separated layouts.
func splitLine(line string) (bookingID, seatsField string) {
	if strings.Contains(line, `"`) {
		if m := quotedCSV.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}
		// Quotes present but not where expected: plain comma split, quotes
		// stripped from the remainder.
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return "", ""
		}
		rest := strings.ReplaceAll(strings.Join(parts[1:], ","), `"`, "")
		return strings.TrimSpace(parts[0]), strings.TrimSpace(rest)
	}

	parts := fieldSep.Split(line, -1)
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], ",")
}

// splitSeats splits a seat list field on commas and whitespace, dropping
// empty tokens.
func splitSeats(field string) []string {
	raw := fieldSep.Split(field, -1)
	seats := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			seats = append(seats, s)
		}
	}
	return seats
}
