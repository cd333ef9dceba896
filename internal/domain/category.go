package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Category is a shared tag that any game can be linked to.
// Names are unique and compared exactly; "RPG" and "rpg" are different
// categories.
type Category struct {
	ID   string
	Name string
}

// GameCategoryLink joins a game to a category. A pair exists at most once.
type GameCategoryLink struct {
	GameID     string
	CategoryID string
}

// NormalizeCategoryName returns the stored form of a category name:
// NFC-normalized with surrounding whitespace removed.
func NormalizeCategoryName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}

// NormalizeCategoryNames normalizes every name, drops empty ones and removes
// duplicates. First occurrence wins, so input order is kept.
// The result is never nil.
func NormalizeCategoryNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, raw := range names {
		name := NormalizeCategoryName(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
