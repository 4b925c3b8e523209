package model

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Members is the configured household: the people expenses are split
// between and attributed to.
type Members struct {
	Names          []string `json:"members"`
	DefaultSpender string   `json:"default_spender"`
}

// DefaultMembers is the household before any config has been saved.
func DefaultMembers() Members {
	return Members{Names: []string{"Me", "Partner"}, DefaultSpender: "Me"}
}

// Match resolves a spender string against the household, trimming
// whitespace and ignoring case. It returns the canonical name.
func (m Members) Match(who string) (string, bool) {
	w := strings.TrimSpace(who)
	for _, name := range m.Names {
		if strings.EqualFold(name, w) {
			return name, true
		}
	}
	return "", false
}

// Contains reports whether who matches a configured member.
func (m Members) Contains(who string) bool {
	_, ok := m.Match(who)
	return ok
}

// Add appends a member if not already present (case-insensitive).
func (m *Members) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" || m.Contains(name) {
		return
	}
	m.Names = append(m.Names, name)
}

// Suggest returns the member name closest to who by edit distance,
// for "did you mean" prompts on unmatched spenders. Distances above
// maxDist are not worth suggesting.
func (m Members) Suggest(who string, maxDist int) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(who))
	if w == "" {
		return "", false
	}
	best := ""
	bestDist := maxDist + 1
	for _, name := range m.Names {
		d := levenshtein.ComputeDistance(w, strings.ToLower(name))
		if d < bestDist {
			best = name
			bestDist = d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
