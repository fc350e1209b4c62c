package analyzer

import (
	"sort"

	"github.com/nathanyu/boarding-optimizer/internal/domain"
)

// Analyze computes the efficiency summary for a produced boarding sequence.
// It is a pure function over the entries it is given: no caching, no side
// effects, and an empty sequence yields an all-zero report.
func Analyze(entries []domain.SequencedEntry) domain.EfficiencyReport {
	if len(entries) == 0 {
		return domain.EfficiencyReport{}
	}

	var sum float64
	for _, e := range entries {
		sum += e.MaxDistance
	}

	// Every pair where a later-boarding booking sits farther back than an
	// earlier one contributes its distance gap. Quadratic, fine at batch
	// sizes a single vehicle can hold.
	var blocking float64
	for i := 0; i < len(entries)-1; i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].MaxDistance < entries[j].MaxDistance {
				blocking += entries[j].MaxDistance - entries[i].MaxDistance
			}
		}
	}

	// Optimality counts positions already matching the ideal farthest-first
	// order. The stable sort keeps equal distances in their input order, so
	// a correctly sequenced batch always scores 100.
	ideal := make([]domain.SequencedEntry, len(entries))
	copy(ideal, entries)
	sort.SliceStable(ideal, func(i, j int) bool {
		return ideal[i].MaxDistance > ideal[j].MaxDistance
	})

	matched := 0
	for i := range entries {
		if entries[i].BookingID == ideal[i].BookingID {
			matched++
		}
	}

	return domain.EfficiencyReport{
		AverageDistance:   sum / float64(len(entries)),
		BlockingPotential: blocking,
		OptimalityScore:   float64(matched) / float64(len(entries)) * 100,
	}
}
