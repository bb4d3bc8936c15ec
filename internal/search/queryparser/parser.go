// Package queryparser turns a free-text influencer search phrase into a
// structured intent: search words, an inferred follower floor, platforms
// and a country. Parsing is pure and never fails.
package queryparser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParsedQuery is the structured intent extracted from search text.
type ParsedQuery struct {
	SearchWords       []string `json:"searchWords"`
	MinFollowers      *int     `json:"minFollowers,omitempty"`
	MaxFollowers      *int     `json:"maxFollowers,omitempty"`
	DetectedPlatforms []string `json:"detectedPlatforms"`
	DetectedCountry   string   `json:"detectedCountry,omitempty"`
}

// Intent kinds reported by ParsedQuery.Intents.
const (
	IntentFollowers = "followers"
	IntentPlatform  = "platform"
	IntentCountry   = "country"
	IntentKeywords  = "keywords"
)

// Intents lists which kinds of intent the query carries.
func (q ParsedQuery) Intents() []string {
	var out []string
	if q.MinFollowers != nil {
		out = append(out, IntentFollowers)
	}
	if len(q.DetectedPlatforms) > 0 {
		out = append(out, IntentPlatform)
	}
	if q.DetectedCountry != "" {
		out = append(out, IntentCountry)
	}
	if len(q.SearchWords) > 0 {
		out = append(out, IntentKeywords)
	}
	return out
}

// IsEmpty is true when nothing at all was extracted.
func (q ParsedQuery) IsEmpty() bool {
	return len(q.Intents()) == 0
}

const audienceWords = `(?:\s*(?:followers|follower|subscribers|subscriber|subs|sub)\b)?`

var (
	// "100k", "1.5m+", "250k subscribers"; no space allowed before the suffix
	// so "top 10 makeup" is not read as a count.
	suffixedCount = regexp.MustCompile(`(\d+(?:\.\d+)?)([km])\b\+?` + audienceWords)
	// "100,000+", "1,250,000 followers"
	groupedCount = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+)\+?` + audienceWords)

	// once a count is found every "follower(s)" word is noise
	followerWord = regexp.MustCompile(`\bfollowers?\b`)

	tokenSeparators = regexp.MustCompile(`[\s,;.]+`)
)

// Parse extracts a ParsedQuery from text. Stages run in order and each one
// removes what it matched: follower count, platforms, country, stop-words.
func Parse(text string) ParsedQuery {
	q := ParsedQuery{
		SearchWords:       []string{},
		DetectedPlatforms: []string{},
	}

	working := strings.ToLower(strings.TrimSpace(text))
	if working == "" {
		return q
	}

	working, q.MinFollowers = extractFollowerCount(working)

	tokens := tokenize(working)
	tokens, q.DetectedPlatforms = extractPlatforms(tokens)
	tokens, q.DetectedCountry = extractCountry(tokens)

	for _, t := range tokens {
		if len(t) <= 1 || IsStopWord(t) {
			continue
		}
		q.SearchWords = append(q.SearchWords, t)
	}
	return q
}

func extractFollowerCount(text string) (string, *int) {
	if loc := suffixedCount.FindStringSubmatchIndex(text); loc != nil {
		value, _ := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		multiplier := 1_000.0
		if text[loc[4]:loc[5]] == "m" {
			multiplier = 1_000_000.0
		}
		n := clampToInt(math.Round(value * multiplier))
		return dropFollowerWords(cut(text, loc[0], loc[1])), &n
	}

	if loc := groupedCount.FindStringSubmatchIndex(text); loc != nil {
		digits := strings.ReplaceAll(text[loc[2]:loc[3]], ",", "")
		n, err := strconv.Atoi(digits)
		if err != nil {
			n = math.MaxInt
		}
		return dropFollowerWords(cut(text, loc[0], loc[1])), &n
	}

	return text, nil
}

func dropFollowerWords(text string) string {
	return followerWord.ReplaceAllString(text, " ")
}

func clampToInt(v float64) int {
	if v >= math.MaxInt || math.IsInf(v, 1) {
		return math.MaxInt
	}
	return int(v)
}

func cut(text string, start, end int) string {
	return text[:start] + " " + text[end:]
}

func tokenize(text string) []string {
	parts := tokenSeparators.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, p)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func extractPlatforms(tokens []string) ([]string, []string) {
	remaining := tokens[:0:0]
	platforms := []string{}
	seen := make(map[string]struct{})

	for _, t := range tokens {
		if _, ok := platformSet[t]; !ok {
			remaining = append(remaining, t)
			continue
		}
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			platforms = append(platforms, t)
		}
	}
	return remaining, platforms
}

// extractCountry scans left to right. At each position a multi-word alias
// spelled by consecutive tokens is preferred over a single-word one, so
// "south korea" is consumed whole instead of leaving "south" behind.
// Only the first alias found is removed.
func extractCountry(tokens []string) ([]string, string) {
	for i := range tokens {
		for _, a := range multiWordAliases {
			if hasTokenPrefix(tokens[i:], a.words) {
				return removeRange(tokens, i, i+len(a.words)), a.country
			}
		}
		if country, ok := singleWordAliases[tokens[i]]; ok {
			return removeRange(tokens, i, i+1), country
		}
	}
	return tokens, ""
}

func hasTokenPrefix(tokens, words []string) bool {
	if len(tokens) < len(words) {
		return false
	}
	for j, w := range words {
		if tokens[j] != w {
			return false
		}
	}
	return true
}

func removeRange(tokens []string, from, to int) []string {
	out := make([]string, 0, len(tokens)-(to-from))
	out = append(out, tokens[:from]...)
	return append(out, tokens[to:]...)
}
