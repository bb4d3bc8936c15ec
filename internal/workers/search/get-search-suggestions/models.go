// internal/workers/search/get-search-suggestions/models.go
package getsearchsuggestions

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Names      []string `json:"names"`
	Niches     []string `json:"niches"`
	Categories []string `json:"categories"`
	Keywords   []string `json:"keywords"`
}

func emptyOutput() *Output {
	return &Output{
		Names:      []string{},
		Niches:     []string{},
		Categories: []string{},
		Keywords:   []string{},
	}
}
