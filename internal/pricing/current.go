package pricing

import (
	"sort"

	"github.com/marquee-live/storefront/internal/domain"
)

// CurrentTier resolves the purchasable tier out of a record list using the
// same rule SelectTiers marks IsCurrent with: lowest-priced active record,
// first in stable sort order on a price tie. The second return is false when
// nothing is active.
func CurrentTier(records []domain.TierRecord) (domain.TierRecord, bool) {
	sorted := make([]domain.TierRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})
	for _, rec := range sorted {
		if rec.Active {
			return rec, true
		}
	}
	return domain.TierRecord{}, false
}
