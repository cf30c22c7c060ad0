package pricing

import (
	"fmt"
	"sort"

	"github.com/marquee-live/storefront/internal/domain"
)

// lastMinuteFeature is appended to the feature list of last-minute tiers.
const lastMinuteFeature = "Last Chance to Get Tickets!"

// SelectTiers converts an unordered list of tier records for one ticket-type
// category into display-ready views, ordered by ascending price, with exactly
// one view marked current when any record is active.
//
// Rules:
//   - sort is stable: equal-priced tiers keep their original relative order
//     between calls, so listings do not reshuffle on refetch;
//   - the current tier is the lowest-priced active record; on a price tie the
//     first in sorted order wins; with no active record nothing is current;
//   - sold out means available quantity <= 0, regardless of the active flag;
//   - every non-current tier is disabled, modelling the staged-release policy
//     where only one tier is purchasable at a time. Advancing the release is
//     the inventory back-office's job, not this function's.
//
// The input slice is not mutated, and an empty input yields an empty result
// (callers substitute static fallback tiers).
func SelectTiers(records []domain.TierRecord, description string, features []string) []domain.TierView {
	if len(records) == 0 {
		return []domain.TierView{}
	}

	sorted := make([]domain.TierRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})

	currentIdx := -1
	for i, rec := range sorted {
		if rec.Active {
			currentIdx = i
			break
		}
	}

	views := make([]domain.TierView, len(sorted))
	for i, rec := range sorted {
		tierFeatures := make([]string, len(features))
		copy(tierFeatures, features)
		if rec.Category == domain.CategoryLastMinute {
			tierFeatures = append(tierFeatures, lastMinuteFeature)
		}

		isCurrent := i == currentIdx
		views[i] = domain.TierView{
			Title:       rec.Title,
			Description: description,
			Price:       FormatPrice(rec.Price),
			TicketsLeft: rec.AvailableQuantity,
			IsCurrent:   isCurrent,
			IsSoldOut:   rec.AvailableQuantity <= 0,
			IsDisabled:  !isCurrent,
			Features:    tierFeatures,
		}
	}
	return views
}

// FormatPrice renders an amount the way the storefront displays it.
// Single-currency domain, dollars only.
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", orZero(p))
}
