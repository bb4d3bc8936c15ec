// internal/common/database/health.go
package database

import (
	"context"
	"sort"
	"sync"
)

// Pinger is anything with a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// CheckAll pings every dependency concurrently and returns the failures by name.
func CheckAll(ctx context.Context, deps map[string]Pinger) map[string]error {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures = make(map[string]error)
	)
	for name, p := range deps {
		if p == nil {
			continue
		}
		wg.Add(1)
		go func(name string, p Pinger) {
			defer wg.Done()
			if err := p.Ping(ctx); err != nil {
				mu.Lock()
				failures[name] = err
				mu.Unlock()
			}
		}(name, p)
	}
	wg.Wait()
	return failures
}

// FailedNames returns the sorted names of failed dependencies.
func FailedNames(failures map[string]error) []string {
	names := make([]string, 0, len(failures))
	for n := range failures {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
