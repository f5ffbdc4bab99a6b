package orchestrator

import (
	"context"
	"sync"
)

// Result wraps one stage output with its original input index.
type Result[Out any] struct {
	Value Out
	Index int
}

// Stage defines a concurrent processing stage. Process must resolve every
// failure to a value itself; stages in this pipeline do not return errors.
type Stage[In, Out any] struct {
	Name        string
	Concurrency int
	Process     func(ctx context.Context, input In) Out
}

// RunStage executes the stage over all inputs with bounded concurrency.
// Results come back in input order regardless of completion order.
func RunStage[In, Out any](ctx context.Context, stage Stage[In, Out], inputs []In) []Result[Out] {
	if len(inputs) == 0 {
		return nil
	}

	concurrency := stage.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(inputs) {
		concurrency = len(inputs)
	}

	results := make([]Result[Out], len(inputs))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, in In) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = Result[Out]{Value: stage.Process(ctx, in), Index: idx}
		}(i, input)
	}

	wg.Wait()

	return results
}

// Values unwraps stage results back into an ordered slice.
func Values[Out any](results []Result[Out]) []Out {
	out := make([]Out, len(results))
	for i, r := range results {
		out[i] = r.Value
	}

	return out
}
