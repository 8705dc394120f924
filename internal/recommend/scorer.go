package recommend

import (
	"fmt"
	"sort"

	"github.com/staykit/staykit-core/internal/catalog"
	"github.com/staykit/staykit-core/internal/template"
)

// Scoring weights. The relative ordering of the factors is the contract
// (essential gap dominates priority alignment dominates budget fit
// dominates the cheapness nudge); the exact numbers are tunable.
const (
	weightEssentialGap    = 100.0
	weightRecommendedSlot = 40.0
	weightPriorityMatch   = 15.0
	weightBudgetFit       = 10.0
	weightBudgetOverrun   = -25.0

	// cheapnessFactor converts price into a small negative nudge so that
	// of two otherwise-equal candidates the cheaper ranks first. Kept
	// well below weightBudgetFit for realistic catalogue prices.
	cheapnessFactor = 0.001
)

// Label thresholds.
const (
	// recommendedScoreThreshold promotes a candidate to "recommended"
	// on score alone, without a matching template entry.
	recommendedScoreThreshold = 50.0

	// premiumPriceThreshold and premiumFeatureCount identify high-price,
	// high-feature products not required by the template.
	premiumPriceThreshold = 500.0
	premiumFeatureCount   = 3
)

// Recommend ranks catalogue products not yet selected for the given
// property profile.
//
// The candidate pool is the catalogue minus products already in
// rctx.Existing (by ID), restricted to products whose region is unset or
// equals rctx.Region. Each candidate is scored on, in descending
// importance: filling a category gap among the matched template's
// essential entries, overlap between its feature tags and the context
// priorities, fit within remaining budget headroom, and a small nudge
// favouring cheaper products.
//
// tmpl is the template matched for this profile and may be nil, in which
// case the template-gap factor simply never fires.
//
// Recommend is a pure function. The output ordering is deterministic:
// score descending, ties broken by product ID ascending. It never
// returns an error; an empty candidate pool yields an empty slice.
// Callers typically truncate the result (e.g., top 5).
func Recommend(rctx Context, tmpl *template.Template, products []catalog.Product) []Recommendation {
	selected := make(map[string]struct{}, len(rctx.Existing))
	for _, p := range rctx.Existing {
		selected[p.ID] = struct{}{}
	}

	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	essentialGaps, recommendedSlots := templateSlots(tmpl, byID, selected)
	headroom, hasBudget := budgetHeadroom(rctx)

	recommendations := []Recommendation{}
	for _, p := range products {
		if _, ok := selected[p.ID]; ok {
			continue
		}
		if p.Region != "" && p.Region != rctx.Region {
			continue
		}

		rec := scoreCandidate(p, rctx, essentialGaps, recommendedSlots, headroom, hasBudget)
		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Product.ID < recommendations[j].Product.ID
	})

	return recommendations
}

// templateSlots derives the category sets implied by the matched
// template: categories of essential entries the selection is still
// missing, and categories of recommended entries. A nil template yields
// empty sets.
func templateSlots(tmpl *template.Template, byID map[string]catalog.Product, selected map[string]struct{}) (essential, recommended map[catalog.Category]struct{}) {
	essential = map[catalog.Category]struct{}{}
	recommended = map[catalog.Category]struct{}{}
	if tmpl == nil {
		return essential, recommended
	}

	covered := map[catalog.Category]struct{}{}
	for id := range selected {
		if p, ok := byID[id]; ok {
			covered[p.Category] = struct{}{}
		}
	}

	for _, e := range tmpl.Products {
		p, ok := byID[e.ProductID]
		if !ok {
			// Entry references a product outside the supplied catalogue
			// slice; nothing to derive from it.
			continue
		}
		switch e.Priority {
		case template.PriorityEssential:
			if _, done := covered[p.Category]; !done {
				essential[p.Category] = struct{}{}
			}
		case template.PriorityRecommended:
			recommended[p.Category] = struct{}{}
		}
	}

	return essential, recommended
}

// budgetHeadroom computes the remaining budget after the existing
// selection, priced at one unit per room.
func budgetHeadroom(rctx Context) (float64, bool) {
	if rctx.Budget == nil {
		return 0, false
	}

	rooms := rctx.Rooms
	if rooms < 1 {
		rooms = 1
	}

	var current float64
	for _, p := range rctx.Existing {
		current += p.Price * float64(rooms)
	}

	return *rctx.Budget - current, true
}

// scoreCandidate scores a single candidate and assigns its category
// label and ordered reasons.
func scoreCandidate(p catalog.Product, rctx Context, essentialGaps, recommendedSlots map[catalog.Category]struct{}, headroom float64, hasBudget bool) Recommendation {
	var score float64
	var reasons []string

	_, fillsEssential := essentialGaps[p.Category]
	if fillsEssential {
		score += weightEssentialGap
		reasons = append(reasons, fmt.Sprintf("completes essential %s coverage", p.Category))
	}

	_, fillsRecommended := recommendedSlots[p.Category]
	if fillsRecommended {
		score += weightRecommendedSlot
		reasons = append(reasons, "recommended for this property profile")
	}

	for _, tag := range rctx.Priorities {
		if p.HasFeature(tag) {
			score += weightPriorityMatch
			reasons = append(reasons, fmt.Sprintf("matches %s priority", tag))
		}
	}

	if hasBudget {
		rooms := rctx.Rooms
		if rooms < 1 {
			rooms = 1
		}
		cost := p.Price * float64(rooms)
		if cost <= headroom {
			score += weightBudgetFit
			reasons = append(reasons, "fits remaining budget")
		} else {
			score += weightBudgetOverrun
			reasons = append(reasons, "exceeds remaining budget")
		}
	}

	score -= p.Price * cheapnessFactor

	category := labelCandidate(p, score, fillsEssential, fillsRecommended)
	if category == CategoryPremium {
		reasons = append(reasons, "premium upgrade beyond the base bundle")
	}

	return Recommendation{
		Product:  p,
		Category: category,
		Reasons:  reasons,
		Score:    score,
	}
}

// labelCandidate assigns the recommendation strength label.
func labelCandidate(p catalog.Product, score float64, fillsEssential, fillsRecommended bool) Category {
	switch {
	case fillsEssential:
		return CategoryEssential
	case fillsRecommended || score >= recommendedScoreThreshold:
		return CategoryRecommended
	case p.Price >= premiumPriceThreshold && len(p.Features) >= premiumFeatureCount:
		return CategoryPremium
	default:
		return CategoryOptional
	}
}
