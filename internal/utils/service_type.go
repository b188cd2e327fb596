package utils

import (
	"sort"
	"strings"
)

// Older facility records and some client forms use these spellings.
var serviceTypeAliases = map[string]string{
	"daycare":         "day_care",
	"day-care":        "day_care",
	"dayservice":      "day_care",
	"day_service":     "day_care",
	"shortstay":       "short_stay",
	"short-stay":      "short_stay",
	"homecare":        "home_care",
	"home-care":       "home_care",
	"home_help":       "home_care",
	"grouphome":       "group_home",
	"group-home":      "group_home",
	"employment":      "employment_support",
	"employment-type": "employment_support",
}

// NormalizeServiceType lowercases a service type and folds known aliases onto
// the canonical name. Spaces become underscores.
func NormalizeServiceType(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.Join(strings.Fields(name), "_")
	if canonical, ok := serviceTypeAliases[name]; ok {
		return canonical
	}
	return name
}

// NormalizeServiceTypes applies NormalizeServiceType to each entry and drops
// empties and duplicates, keeping first-seen order.
func NormalizeServiceTypes(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name := NormalizeServiceType(r)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// ServiceTypeSpellings returns the canonical name of raw followed by every
// alias that folds onto it, for matching rows stored before normalization.
func ServiceTypeSpellings(raw string) []string {
	canonical := NormalizeServiceType(raw)
	if canonical == "" {
		return nil
	}
	var aliases []string
	for alias, name := range serviceTypeAliases {
		if name == canonical {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return append([]string{canonical}, aliases...)
}
