// internal/search/queryparser/parser_test.go
package queryparser

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		words     []string
		min       *int
		platforms []string
		country   string
	}{
		{
			name:      "empty input",
			input:     "",
			words:     []string{},
			platforms: []string{},
		},
		{
			name:      "whitespace only",
			input:     "   \t ",
			words:     []string{},
			platforms: []string{},
		},
		{
			name:      "follower count with trailing word",
			input:     "100k followers",
			words:     []string{},
			min:       intPtr(100000),
			platforms: []string{},
		},
		{
			name:      "decimal millions with subscribers",
			input:     "1.5M subscribers fitness",
			words:     []string{"fitness"},
			min:       intPtr(1500000),
			platforms: []string{},
		},
		{
			name:      "platform detection",
			input:     "youtube tech reviewer",
			words:     []string{"tech", "reviewer"},
			platforms: []string{"youtube"},
		},
		{
			name:      "multi-word country",
			input:     "south korea beauty",
			words:     []string{"beauty"},
			platforms: []string{},
			country:   "South Korea",
		},
		{
			name:      "single-word country with plus count",
			input:     "usa fashion blogger 50k+",
			words:     []string{"fashion", "blogger"},
			min:       intPtr(50000),
			platforms: []string{},
			country:   "United States",
		},
		{
			name:      "comma grouped fallback",
			input:     "gaming creators with 100,000+ followers",
			words:     []string{"gaming", "creators"},
			min:       intPtr(100000),
			platforms: []string{},
		},
		{
			name:      "follower word removed away from the count",
			input:     "fitness 100k+ with lots of followers",
			words:     []string{"fitness", "lots"},
			min:       intPtr(100000),
			platforms: []string{},
		},
		{
			name:      "follower word before the count",
			input:     "followers fitness 100k",
			words:     []string{"fitness"},
			min:       intPtr(100000),
			platforms: []string{},
		},
		{
			name:      "follower word kept without a count",
			input:     "follower growth coach",
			words:     []string{"follower", "growth", "coach"},
			platforms: []string{},
		},
		{
			name:      "only the first count is taken",
			input:     "10k travel 200k food",
			words:     []string{"travel", "200k", "food"},
			min:       intPtr(10000),
			platforms: []string{},
		},
		{
			name:      "suffixed form wins over grouped form",
			input:     "1,000 fans 5k",
			words:     []string{"000", "fans"},
			min:       intPtr(5000),
			platforms: []string{},
		},
		{
			name:      "number without suffix is a word",
			input:     "top 10 makeup artists",
			words:     []string{"top", "10", "makeup", "artists"},
			platforms: []string{},
		},
		{
			name:      "platforms deduplicated in detection order",
			input:     "TikTok, Instagram; tiktok dance",
			words:     []string{"dance"},
			platforms: []string{"tiktok", "instagram"},
		},
		{
			name:      "punctuation stripped from tokens",
			input:     "vegan-friendly chef!!",
			words:     []string{"veganfriendly", "chef"},
			platforms: []string{},
		},
		{
			name:      "stop words and single characters removed",
			input:     "I want to find a x fitness coach",
			words:     []string{"fitness", "coach"},
			platforms: []string{},
		},
		{
			name:      "first country wins, later alias stays a word",
			input:     "uk travel india",
			words:     []string{"travel", "india"},
			platforms: []string{},
			country:   "United Kingdom",
		},
		{
			name:      "united states consumed whole",
			input:     "united states tech",
			words:     []string{"tech"},
			platforms: []string{},
			country:   "United States",
		},
		{
			name:      "saudi arabia preferred over saudi",
			input:     "saudi arabia food",
			words:     []string{"food"},
			platforms: []string{},
			country:   "Saudi Arabia",
		},
		{
			name:      "everything at once",
			input:     "Looking for Instagram fitness influencers in Canada with 250K+ followers",
			words:     []string{"fitness", "influencers"},
			min:       intPtr(250000),
			platforms: []string{"instagram"},
			country:   "Canada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)

			assert.Equal(t, tt.words, got.SearchWords)
			assert.Equal(t, tt.platforms, got.DetectedPlatforms)
			assert.Equal(t, tt.country, got.DetectedCountry)
			assert.Nil(t, got.MaxFollowers)
			if tt.min == nil {
				assert.Nil(t, got.MinFollowers)
			} else {
				require.NotNil(t, got.MinFollowers)
				assert.Equal(t, *tt.min, *got.MinFollowers)
			}
		})
	}
}

func TestParse_EmptyQueryHasNoIntent(t *testing.T) {
	for _, in := range []string{"", "   ", "the a an", "!!!"} {
		q := Parse(in)
		assert.True(t, q.IsEmpty(), "input %q", in)
		assert.NotNil(t, q.SearchWords)
		assert.NotNil(t, q.DetectedPlatforms)
	}
}

func TestParse_NeverReturnsStopWords(t *testing.T) {
	var all []string
	for w := range stopWords {
		all = append(all, w)
	}
	inputs := []string{
		strings.Join(all, " "),
		"show me the best tiktok creators that do comedy in the usa",
		"what are some youtube gaming channels with more than 1m subs",
	}

	for _, in := range inputs {
		q := Parse(in)
		for _, w := range q.SearchWords {
			assert.False(t, IsStopWord(w), "stop word %q leaked from %q", w, in)
			assert.Greater(t, len(w), 1)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	in := "Instagram beauty 75.5k followers south korea"
	assert.Equal(t, Parse(in), Parse(in))
}

func TestParse_HugeCountsClamp(t *testing.T) {
	q := Parse("99999999999999999999999m")
	require.NotNil(t, q.MinFollowers)
	assert.Equal(t, math.MaxInt, *q.MinFollowers)
}

func TestParsedQuery_Intents(t *testing.T) {
	q := Parse("instagram fitness 10k usa")
	assert.Equal(t, []string{IntentFollowers, IntentPlatform, IntentCountry, IntentKeywords}, q.Intents())
	assert.False(t, q.IsEmpty())
}

func TestResolveCountry(t *testing.T) {
	assert.Equal(t, "United States", ResolveCountry("USA"))
	assert.Equal(t, "South Korea", ResolveCountry("  South   Korea "))
	assert.Equal(t, "United Arab Emirates", ResolveCountry("dubai"))
	assert.Equal(t, "Portugal", ResolveCountry(" Portugal "))
	assert.Equal(t, "", ResolveCountry(""))
}

func TestIsPlatform(t *testing.T) {
	assert.True(t, IsPlatform("YouTube"))
	assert.True(t, IsPlatform(" twitch "))
	assert.False(t, IsPlatform("myspace"))
}
