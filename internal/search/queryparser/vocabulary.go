// internal/search/queryparser/vocabulary.go
package queryparser

import "strings"

// Platforms is the fixed platform vocabulary recognized in search text.
var Platforms = []string{
	"instagram", "youtube", "tiktok", "facebook", "twitter",
	"linkedin", "pinterest", "snapchat", "twitch",
}

var platformSet = toSet(Platforms)

type countryAlias struct {
	alias   string
	words   []string
	country string
}

// countryAliases keeps declaration order: the first multi-word alias found wins.
var countryAliases = buildAliases([][2]string{
	{"usa", "United States"},
	{"us", "United States"},
	{"america", "United States"},
	{"united states", "United States"},
	{"uk", "United Kingdom"},
	{"britain", "United Kingdom"},
	{"england", "United Kingdom"},
	{"united kingdom", "United Kingdom"},
	{"canada", "Canada"},
	{"australia", "Australia"},
	{"germany", "Germany"},
	{"france", "France"},
	{"india", "India"},
	{"brazil", "Brazil"},
	{"china", "China"},
	{"japan", "Japan"},
	{"mexico", "Mexico"},
	{"south korea", "South Korea"},
	{"korea", "South Korea"},
	{"spain", "Spain"},
	{"italy", "Italy"},
	{"russia", "Russia"},
	{"indonesia", "Indonesia"},
	{"pakistan", "Pakistan"},
	{"nigeria", "Nigeria"},
	{"bangladesh", "Bangladesh"},
	{"philippines", "Philippines"},
	{"egypt", "Egypt"},
	{"turkey", "Turkey"},
	{"thailand", "Thailand"},
	{"vietnam", "Vietnam"},
	{"uae", "United Arab Emirates"},
	{"dubai", "United Arab Emirates"},
	{"saudi", "Saudi Arabia"},
	{"saudi arabia", "Saudi Arabia"},
})

var (
	singleWordAliases = map[string]string{}
	multiWordAliases  []countryAlias
)

func init() {
	for _, a := range countryAliases {
		if len(a.words) == 1 {
			singleWordAliases[a.alias] = a.country
			continue
		}
		multiWordAliases = append(multiWordAliases, a)
	}
}

var stopWords = toSet([]string{
	"a", "an", "the", "and", "or", "but", "with", "for", "in", "on", "at", "to", "of",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"do", "does", "did", "will", "would", "could", "should", "may", "might", "can", "shall",
	"not", "no", "from", "by", "about", "between", "through", "during", "before", "after",
	"above", "below", "up", "down", "out", "off", "over", "under", "again", "further",
	"then", "once", "here", "there", "when", "where", "why", "how", "all", "each", "every",
	"both", "few", "more", "most", "other", "some", "such", "than", "too", "very", "just",
	"also", "who", "whom", "which", "that", "this", "these", "those",
	"i", "me", "my", "we", "our", "you", "your", "he", "him", "his", "she", "her",
	"it", "its", "they", "them", "their", "what", "am",
	"want", "need", "looking", "find", "search", "show", "get", "give", "like", "plus",
})

// IsStopWord reports whether w is dropped from search words.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// IsPlatform reports whether name is a known platform identifier.
func IsPlatform(name string) bool {
	_, ok := platformSet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ResolveCountry maps an explicit location value through the alias table.
// Values that are not aliases are returned trimmed but otherwise unchanged.
func ResolveCountry(location string) string {
	key := strings.Join(strings.Fields(strings.ToLower(location)), " ")
	for _, a := range countryAliases {
		if a.alias == key {
			return a.country
		}
	}
	return strings.TrimSpace(location)
}

func buildAliases(pairs [][2]string) []countryAlias {
	out := make([]countryAlias, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, countryAlias{alias: p[0], words: strings.Fields(p[0]), country: p[1]})
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
