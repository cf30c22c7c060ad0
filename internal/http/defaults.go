package http

import "github.com/marquee-live/storefront/internal/domain"

// Static per-category copy for tier listings. When an event has no inventory
// rows yet, the storefront falls back to these placeholder tiers instead of
// an empty page.
var categoryDescriptions = map[domain.TierCategory]string{
	domain.CategoryGeneral:    "General admission",
	domain.CategoryVIP:        "VIP experience",
	domain.CategoryGroup:      "Group package (4+)",
	domain.CategoryLastMinute: "Last-minute release",
}

var categoryFeatures = map[domain.TierCategory][]string{
	domain.CategoryGeneral:    {"Entry to all stages", "Access to food court"},
	domain.CategoryVIP:        {"Priority entry", "VIP lounge", "Meet & greet"},
	domain.CategoryGroup:      {"Entry to all stages", "Reserved group seating"},
	domain.CategoryLastMinute: {"Entry to all stages"},
}

var fallbackTiers = map[domain.TierCategory][]domain.TierView{
	domain.CategoryGeneral: {
		{Title: "General Admission", Description: "General admission", Price: "$59.00", IsDisabled: true, Features: categoryFeatures[domain.CategoryGeneral]},
	},
	domain.CategoryVIP: {
		{Title: "VIP", Description: "VIP experience", Price: "$149.00", IsDisabled: true, Features: categoryFeatures[domain.CategoryVIP]},
	},
	domain.CategoryGroup: {
		{Title: "Group of 4", Description: "Group package (4+)", Price: "$199.00", IsDisabled: true, Features: categoryFeatures[domain.CategoryGroup]},
	},
	domain.CategoryLastMinute: {
		{Title: "Door Release", Description: "Last-minute release", Price: "$99.00", IsDisabled: true, Features: categoryFeatures[domain.CategoryLastMinute]},
	},
}
