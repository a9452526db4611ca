package suggest

import "sort"

// caseGroup assigns the ordering bucket a generator-name suggestion's text
// falls into: special keywords first, then lowercase, uppercase, Titlecase,
// and finally any other (alternating/mixed) styling.
func caseGroup(text string) int {
	if text == "number" || text == "special" {
		return 0
	}
	switch detectCaseShape(text) {
	case shapeLower:
		return 1
	case shapeUpper:
		return 2
	case shapeTitle:
		return 3
	default:
		return 4
	}
}

// SortSuggestions orders generator-name suggestions by case group then
// lexicographic text, leaving every other suggestion kind in its original
// emission order. The sort is stable, so running it twice on the same
// input yields identical results.
func SortSuggestions(suggestions []Suggestion) {
	type ranked struct {
		group int
		s     Suggestion
	}
	ranks := make([]ranked, len(suggestions))
	for i, s := range suggestions {
		g := -1
		if s.Kind == "generator" {
			g = caseGroup(s.Text)
		}
		ranks[i] = ranked{group: g, s: s}
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].group != ranks[j].group {
			return ranks[i].group < ranks[j].group
		}
		if ranks[i].group == -1 {
			return false
		}
		return ranks[i].s.Text < ranks[j].s.Text
	})

	for i, r := range ranks {
		suggestions[i] = r.s
	}
}
