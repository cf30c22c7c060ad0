package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee-live/storefront/internal/domain"
)

func tier(title string, price float64, qty int, active bool) domain.TierRecord {
	return domain.TierRecord{
		ID:                uuid.New(),
		EventID:           uuid.New(),
		Category:          domain.CategoryGeneral,
		Title:             title,
		Price:             price,
		AvailableQuantity: qty,
		Active:            active,
	}
}

func TestSelectTiersOrdersByPrice(t *testing.T) {
	records := []domain.TierRecord{
		tier("Late Bird", 89, 100, false),
		tier("Early Bird", 34, 0, false),
		tier("Regular", 59, 50, true),
	}

	views := SelectTiers(records, "General admission", []string{"Entry to all stages"})
	require.Len(t, views, 3)

	assert.Equal(t, "Early Bird", views[0].Title)
	assert.Equal(t, "Regular", views[1].Title)
	assert.Equal(t, "Late Bird", views[2].Title)
	assert.Equal(t, "$34.00", views[0].Price)
	assert.Equal(t, "$89.00", views[2].Price)
}

func TestSelectTiersCurrentIsLowestPricedActive(t *testing.T) {
	records := []domain.TierRecord{
		tier("Late Bird", 89, 100, true),
		tier("Early Bird", 34, 0, false),
		tier("Regular", 59, 50, true),
	}

	views := SelectTiers(records, "", nil)

	current := 0
	for _, v := range views {
		if v.IsCurrent {
			current++
			assert.Equal(t, "Regular", v.Title)
			assert.False(t, v.IsDisabled)
		} else {
			assert.True(t, v.IsDisabled)
		}
	}
	assert.Equal(t, 1, current, "exactly one current tier")
}

func TestSelectTiersNoActiveRecords(t *testing.T) {
	records := []domain.TierRecord{
		tier("A", 10, 5, false),
		tier("B", 20, 5, false),
	}
	views := SelectTiers(records, "", nil)
	for _, v := range views {
		assert.False(t, v.IsCurrent)
		assert.True(t, v.IsDisabled)
	}
}

func TestSelectTiersSoldOutIgnoresActiveFlag(t *testing.T) {
	records := []domain.TierRecord{
		tier("Empty active", 10, 0, true),
		tier("Negative stock", 20, -3, false),
		tier("In stock", 30, 1, false),
	}
	views := SelectTiers(records, "", nil)
	assert.True(t, views[0].IsSoldOut)
	assert.True(t, views[1].IsSoldOut)
	assert.False(t, views[2].IsSoldOut)
	// Sold out does not unseat a current tier; that advance happens in the
	// inventory back-office.
	assert.True(t, views[0].IsCurrent)
}

func TestSelectTiersStableOnEqualPrices(t *testing.T) {
	records := []domain.TierRecord{
		tier("First", 50, 10, true),
		tier("Second", 50, 10, true),
		tier("Third", 50, 10, true),
	}
	views := SelectTiers(records, "", nil)
	require.Len(t, views, 3)
	assert.Equal(t, "First", views[0].Title)
	assert.Equal(t, "Second", views[1].Title)
	assert.Equal(t, "Third", views[2].Title)
	// First in sorted order wins the tie.
	assert.True(t, views[0].IsCurrent)
	assert.False(t, views[1].IsCurrent)
	assert.False(t, views[2].IsCurrent)
}

func TestSelectTiersLastMinuteFeature(t *testing.T) {
	rec := tier("Door", 99, 5, true)
	rec.Category = domain.CategoryLastMinute

	views := SelectTiers([]domain.TierRecord{rec}, "", []string{"Entry"})
	require.Len(t, views, 1)
	assert.Equal(t, []string{"Entry", "Last Chance to Get Tickets!"}, views[0].Features)
}

func TestSelectTiersEmptyInput(t *testing.T) {
	views := SelectTiers(nil, "desc", nil)
	assert.Empty(t, views)
	assert.NotNil(t, views)
}

func TestSelectTiersIdempotentAndPure(t *testing.T) {
	records := []domain.TierRecord{
		tier("B", 20, 5, true),
		tier("A", 10, 5, false),
	}
	snapshot := make([]domain.TierRecord, len(records))
	copy(snapshot, records)

	first := SelectTiers(records, "d", []string{"f"})
	second := SelectTiers(records, "d", []string{"f"})

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, records, "input must not be mutated")
}
