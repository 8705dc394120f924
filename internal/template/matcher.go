package template

// Match selects the single best template for a property profile.
//
// Filtering proceeds in three stages:
//  1. Property type must match exactly (no fuzzy matching across types).
//  2. The room count must fall within the template's room range, bounds
//     inclusive.
//  3. If a budget is given, it must fall within the template's estimated
//     budget range. This stage is advisory: when it eliminates every
//     remaining candidate, it is dropped and the room-range matches
//     stand. When the room-range stage itself produced no candidates,
//     the result is nil regardless of budget.
//
// When several templates survive all stages, the first in registry
// declaration order wins; registry order is the catalogue authors'
// priority ordering, so no re-sorting happens here.
//
// Match is a pure function: it never mutates templates and returns a
// copy of the winning entry. A nil result means "no match" and is a
// valid outcome, not an error.
//
// Parameters:
//   - templates: Registry templates in declaration order
//   - propertyType: The property profile's type
//   - roomCount: Number of rooms being configured
//   - budget: Optional total budget; nil means no budget narrowing
//
// Returns:
//   - *Template: The best match, or nil when nothing fits
func Match(templates []Template, propertyType PropertyType, roomCount int, budget *float64) *Template {
	var roomMatches []Template
	for _, t := range templates {
		if t.PropertyType != propertyType {
			continue
		}
		if !t.RoomRange.Contains(roomCount) {
			continue
		}
		roomMatches = append(roomMatches, t)
	}

	if len(roomMatches) == 0 {
		return nil
	}

	if budget != nil {
		for _, t := range roomMatches {
			if t.EstimatedBudget.Contains(*budget) {
				match := t
				return &match
			}
		}
		// Budget narrowed everything away: treat it as advisory and fall
		// back to the room-range matches.
	}

	match := roomMatches[0]
	return &match
}
