package tools

import (
	"strings"

	"github.com/Malekse21/Senior-Voice/internal/model"
)

// MatchContact resolves a spoken name fragment to a stored contact using
// a ranked, case-insensitive matcher applied uniformly across tools:
// exact nickname match beats substring nickname match (either direction)
// beats substring name match (either direction). Within a rank the first
// contact in stored order wins. Returns nil when nothing matches.
func MatchContact(contacts []model.Contact, query string) *model.Contact {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var bestRank int
	var best *model.Contact
	for i := range contacts {
		c := &contacts[i]
		name := strings.ToLower(c.Name)
		nick := strings.ToLower(c.Nickname)

		rank := 0
		switch {
		case nick != "" && nick == q:
			rank = 3
		case nick != "" && (strings.Contains(nick, q) || strings.Contains(q, nick)):
			rank = 2
		case name != "" && (strings.Contains(name, q) || strings.Contains(q, name)):
			rank = 1
		}
		if rank > bestRank {
			bestRank = rank
			best = c
		}
	}
	return best
}

// MatchMedication finds a stored medication whose name contains the query
// (case-insensitive) or vice versa. Returns nil when nothing matches.
func MatchMedication(meds []model.Medication, query string) *model.Medication {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	for i := range meds {
		name := strings.ToLower(meds[i].Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return &meds[i]
		}
	}
	return nil
}

// NormalizePhone converts a local number to international dialing form:
// non-digits are stripped (a leading "+" is honored then dropped) and a
// leading national "0" is replaced by the country prefix. Numbers already
// in international form pass through unchanged beyond digit-stripping.
func NormalizePhone(raw, countryPrefix string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	n := b.String()
	if strings.HasPrefix(n, "0") {
		n = countryPrefix + n[1:]
	}
	n = strings.TrimPrefix(n, "+")
	return n
}
