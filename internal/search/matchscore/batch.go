// internal/search/matchscore/batch.go
package matchscore

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultParallelThreshold is the batch size below which scoring stays on
// the calling goroutine.
const DefaultParallelThreshold = 256

// chunkSize is the number of profiles one pool task scores.
const chunkSize = 64

// BatchScorer scores many inputs, fanning large batches out over an ants pool.
type BatchScorer struct {
	pool      *ants.Pool
	threshold int
}

// NewBatchScorer creates a scorer backed by a pool of size goroutines.
// A threshold <= 0 uses DefaultParallelThreshold.
func NewBatchScorer(size, threshold int) (*BatchScorer, error) {
	if size <= 0 {
		size = 1
	}
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create scoring pool: %w", err)
	}
	return &BatchScorer{pool: pool, threshold: threshold}, nil
}

// ScoreAll returns one score per input in input order.
func (b *BatchScorer) ScoreAll(ctx context.Context, inputs []Input) ([]int, error) {
	scores := make([]int, len(inputs))
	if len(inputs) < b.threshold {
		for i := range inputs {
			scores[i] = Score(inputs[i])
		}
		return scores, nil
	}

	var wg sync.WaitGroup
	for start := 0; start < len(inputs); start += chunkSize {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		end := min(start+chunkSize, len(inputs))

		wg.Add(1)
		from, to := start, end
		err := b.pool.Submit(func() {
			defer wg.Done()
			for i := from; i < to; i++ {
				scores[i] = Score(inputs[i])
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit scoring task: %w", err)
		}
	}
	wg.Wait()
	return scores, nil
}

// Running reports the number of live pool goroutines, idle ones included.
func (b *BatchScorer) Running() int {
	return b.pool.Running()
}

func (b *BatchScorer) Release() {
	b.pool.Release()
}
