// internal/search/keywords/store.go
package keywords

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// Store resolves free-text terms to active keyword ids.
type Store interface {
	Match(ctx context.Context, terms []string) ([]string, error)
}

// Suggester lists display names of active keywords containing a prefix.
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]string, error)
}

const suggestQuery = `SELECT display_name FROM keywords
WHERE is_active = true AND (name ILIKE $1 OR display_name ILIKE $1)
ORDER BY display_name
LIMIT $2`

const matchQuery = `SELECT id FROM keywords
WHERE is_active = true AND (name ILIKE ANY($1) OR display_name ILIKE ANY($1))
ORDER BY name, id`

// PostgresStore reads the keyword catalogue from the keywords table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Match returns ids of active keywords whose name or display name contains
// any of terms, case-insensitively.
func (s *PostgresStore) Match(ctx context.Context, terms []string) ([]string, error) {
	terms = NormalizeTerms(terms)
	if len(terms) == 0 {
		return []string{}, nil
	}

	patterns := make([]string, len(terms))
	for i, t := range terms {
		patterns[i] = "%" + escapeLike(t) + "%"
	}

	rows, err := s.db.QueryContext(ctx, matchQuery, pq.Array(patterns))
	if err != nil {
		return nil, fmt.Errorf("query keywords: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan keyword id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keywords: %w", err)
	}
	return ids, nil
}

// Suggest returns up to limit display names of active keywords whose name or
// display name contains query, case-insensitively.
func (s *PostgresStore) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return []string{}, nil
	}

	rows, err := s.db.QueryContext(ctx, suggestQuery, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("query keyword suggestions: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan keyword name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keyword suggestions: %w", err)
	}
	return names, nil
}

// NormalizeTerms trims and lowercases terms, drops blanks and duplicates and
// sorts the result.
func NormalizeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SplitCSV splits the comma separated keyword filter into trimmed terms.
func SplitCSV(csv string) []string {
	out := []string{}
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
